package input

import (
	snakeinput "github.com/cbodonnell/snake/pkg/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// directionKeys maps ebiten keys to the key identifiers understood by the input router.
// WASD is bound alongside the arrows.
var directionKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyArrowUp, snakeinput.KeyArrowUp},
	{ebiten.KeyArrowDown, snakeinput.KeyArrowDown},
	{ebiten.KeyArrowLeft, snakeinput.KeyArrowLeft},
	{ebiten.KeyArrowRight, snakeinput.KeyArrowRight},
	{ebiten.KeyW, snakeinput.KeyArrowUp},
	{ebiten.KeyS, snakeinput.KeyArrowDown},
	{ebiten.KeyA, snakeinput.KeyArrowLeft},
	{ebiten.KeyD, snakeinput.KeyArrowRight},
}

// JustPressedDirectionKeys returns the key identifiers of the direction keys pressed this frame,
// in a stable order.
func JustPressedDirectionKeys() []string {
	var names []string
	for _, k := range directionKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			names = append(names, k.name)
		}
	}
	return names
}

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle keyboard, mouse, touch and gamepad inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightRight) {
				return true
			}
		} else {
			// The button 0/1 might not be A/B buttons.
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
				return true
			}
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton1) {
				return true
			}
		}
	}
	return false
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsPauseJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP)
}
