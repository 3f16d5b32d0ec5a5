package cliffside

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DirectionInput is the held state of the four scroll directions for one
// tick.
type DirectionInput struct {
	Up, Down, Left, Right bool
}

// Any reports whether at least one direction is held.
func (d DirectionInput) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// Input is everything the frame loop reads from the keyboard in one tick.
type Input struct {
	DirectionInput
	// Recenter is true on the tick the recenter key is pressed.
	Recenter bool
	// Screenshot is true on the tick the screenshot key is pressed.
	Screenshot bool
	// ToggleStats is true on the tick the stats overlay key is pressed.
	ToggleStats bool
}

// PollInput samples the keyboard. Arrow keys and WASD scroll, Home recenters,
// F12 captures a screenshot and F3 toggles the stats overlay.
func PollInput() Input {
	return Input{
		DirectionInput: DirectionInput{
			Up:    keyHeld(ebiten.KeyArrowUp, ebiten.KeyW),
			Down:  keyHeld(ebiten.KeyArrowDown, ebiten.KeyS),
			Left:  keyHeld(ebiten.KeyArrowLeft, ebiten.KeyA),
			Right: keyHeld(ebiten.KeyArrowRight, ebiten.KeyD),
		},
		Recenter:    inpututil.IsKeyJustPressed(ebiten.KeyHome),
		Screenshot:  inpututil.IsKeyJustPressed(ebiten.KeyF12),
		ToggleStats: inpututil.IsKeyJustPressed(ebiten.KeyF3),
	}
}

func keyHeld(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
