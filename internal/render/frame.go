package render

import (
	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
)

// Frame draws snap into cw: the changed canvas cells, the border when the
// terminal is larger than the canvas, then the overlay text. A non-empty
// notice replaces the overlay. The caller flushes cw.
func Frame(cw *draw.ChunkWriter, c *draw.Canvas, snap game.Snapshot, notice []Label) error {
	c.Clear()
	World(c, snap)

	if err := c.Render(cw); err != nil {
		return err
	}
	if err := c.RenderBorder(cw); err != nil {
		return err
	}

	if len(notice) == 0 {
		notice = Overlay(c, snap)
	}
	WriteLabels(cw, c, notice)
	return nil
}
