package terminal

import (
	"github.com/cbodonnell/snake/pkg/input"
	"github.com/gdamore/tcell/v2"
)

type Action int

const (
	ActionNone Action = iota
	ActionDirection
	ActionRestart
	ActionPause
	ActionQuit
)

// TranslateKey maps a terminal key press to an action.
// For ActionDirection the second value is the key identifier understood by input.Router.
func TranslateKey(key tcell.Key, r rune) (Action, string) {
	switch key {
	case tcell.KeyUp:
		return ActionDirection, input.KeyArrowUp
	case tcell.KeyDown:
		return ActionDirection, input.KeyArrowDown
	case tcell.KeyLeft:
		return ActionDirection, input.KeyArrowLeft
	case tcell.KeyRight:
		return ActionDirection, input.KeyArrowRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, ""
	case tcell.KeyRune:
		switch r {
		case 'r', 'R':
			return ActionRestart, ""
		case 'p', 'P', ' ':
			return ActionPause, ""
		case 'q', 'Q':
			return ActionQuit, ""
		}
	}
	return ActionNone, ""
}
