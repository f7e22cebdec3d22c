package terminal

import (
	"testing"

	"github.com/cbodonnell/snake/pkg/input"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name       string
		key        tcell.Key
		r          rune
		wantAction Action
		wantKey    string
	}{
		{"up", tcell.KeyUp, 0, ActionDirection, input.KeyArrowUp},
		{"down", tcell.KeyDown, 0, ActionDirection, input.KeyArrowDown},
		{"left", tcell.KeyLeft, 0, ActionDirection, input.KeyArrowLeft},
		{"right", tcell.KeyRight, 0, ActionDirection, input.KeyArrowRight},
		{"restart", tcell.KeyRune, 'r', ActionRestart, ""},
		{"pause", tcell.KeyRune, 'p', ActionPause, ""},
		{"pause with space", tcell.KeyRune, ' ', ActionPause, ""},
		{"quit", tcell.KeyRune, 'q', ActionQuit, ""},
		{"escape", tcell.KeyEscape, 0, ActionQuit, ""},
		{"other rune", tcell.KeyRune, 'x', ActionNone, ""},
		{"enter", tcell.KeyEnter, 0, ActionNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, key := TranslateKey(tt.key, tt.r)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
