package game

import (
	"github.com/tomz197/avoider/internal/physics"
)

// Action is what a menu button does.
type Action int

const (
	ActionNone Action = iota
	ActionPlay
	ActionQuit
)

// Button is a clickable rectangle in view coordinates.
type Button struct {
	Label  string
	Action Action
	Rect   physics.Rect
}

// Button layout, centred horizontally in the view.
const (
	buttonWidth  = 160
	buttonHeight = 40
	playButtonY  = 240 // Centre line of the Play button
	quitButtonY  = 300
)

func centredButton(label string, action Action, centreY float64) Button {
	return Button{
		Label:  label,
		Action: action,
		Rect: physics.Rect{
			X:      ViewWidth/2 - buttonWidth/2,
			Y:      centreY - buttonHeight/2,
			Width:  buttonWidth,
			Height: buttonHeight,
		},
	}
}

// MenuButtons returns the buttons shown in a phase. Playing has none.
func MenuButtons(p Phase) []Button {
	switch p {
	case PhaseMainMenu:
		return []Button{
			centredButton("PLAY", ActionPlay, playButtonY),
			centredButton("QUIT", ActionQuit, quitButtonY),
		}
	case PhaseGameOver:
		return []Button{
			centredButton("PLAY AGAIN", ActionPlay, playButtonY),
			centredButton("QUIT", ActionQuit, quitButtonY),
		}
	}
	return nil
}

// ButtonAt returns the action of the first button containing (x, y).
func ButtonAt(buttons []Button, x, y float64) Action {
	for _, b := range buttons {
		if b.Rect.Contains(x, y) {
			return b.Action
		}
	}
	return ActionNone
}
