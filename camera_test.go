package cliffside

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestClampAxis(t *testing.T) {
	tests := []struct {
		name            string
		v, view, extent float64
		want            float64
	}{
		{"inside", 100, 800, 3200, 100},
		{"past left", -1000, 800, 3200, -400},
		{"half view left", -400, 800, 3200, -400},
		{"past right", 5000, 800, 3200, 2800},
		{"small world", 1000, 800, 320, 400},
		{"small world left", -1000, 800, 320, -400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampAxis(tt.v, tt.view, tt.extent); got != tt.want {
				t.Errorf("clampAxis(%v, %v, %v) = %v, want %v", tt.v, tt.view, tt.extent, got, tt.want)
			}
		})
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(800, 600)
	c.Move(DirectionInput{Right: true, Down: true})
	if c.X != DefaultCameraStep || c.Y != DefaultCameraStep {
		t.Errorf("after right+down: (%v, %v), want (%v, %v)", c.X, c.Y, DefaultCameraStep, DefaultCameraStep)
	}
	c.Move(DirectionInput{Left: true, Right: true})
	if c.X != DefaultCameraStep {
		t.Errorf("opposing input moved X to %v", c.X)
	}
	c.Step = 10
	c.Move(DirectionInput{Up: true, Left: true})
	if c.X != DefaultCameraStep-10 || c.Y != DefaultCameraStep-10 {
		t.Errorf("after up+left: (%v, %v)", c.X, c.Y)
	}
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollTo(300, 200, 0.5, ease.Linear)
	if !c.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollTo")
	}

	c.update(0.25)
	if !approxEqual(c.X, 150, 1e-3) || !approxEqual(c.Y, 100, 1e-3) {
		t.Errorf("halfway = (%v, %v), want (150, 100)", c.X, c.Y)
	}

	c.update(1)
	if c.X != 300 || c.Y != 200 {
		t.Errorf("finished at (%v, %v), want (300, 200)", c.X, c.Y)
	}
	if c.Scrolling() {
		t.Error("still scrolling after the tween finished")
	}
}

func TestCameraMoveCancelsScroll(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollTo(300, 200, 1, ease.Linear)
	c.Move(DirectionInput{Right: true})
	if c.Scrolling() {
		t.Error("manual input did not cancel the scroll")
	}
	c.update(1)
	if c.X != DefaultCameraStep {
		t.Errorf("X = %v after cancelled scroll, want %v", c.X, DefaultCameraStep)
	}
}

func TestCameraCenterOn(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterOn(1000, 1000, 0.1, ease.OutQuad)
	c.update(1)
	if c.X != 600 || c.Y != 700 {
		t.Errorf("CenterOn(1000,1000) = (%v, %v), want (600, 700)", c.X, c.Y)
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	c := NewCamera(800, 600)
	c.X, c.Y = 123, -45
	if b := c.VisibleBounds(); b != (Rect{123, -45, 800, 600}) {
		t.Errorf("VisibleBounds = %v", b)
	}
}
