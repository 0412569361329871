package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageHandler(t *testing.T) {
	h := pageHandler("play.example.org", "2022")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ssh -t -p 2022 play.example.org") {
		t.Error("page lacks the ssh command")
	}
	if strings.Contains(body, "{{.") {
		t.Error("page has unfilled placeholders")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPageHandlerNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	pageHandler("h", "1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
