package cliffside

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultCameraStep is the scroll distance in pixels per tick of held input.
const DefaultCameraStep = 5

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the scroll offset of the view into the world. X and Y are the
// world position of the viewport's top-left corner.
type Camera struct {
	X, Y float64
	// ViewW and ViewH are the viewport size in pixels.
	ViewW, ViewH float64
	// Step is the distance moved per tick for each held direction.
	Step float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera at the world origin.
func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{ViewW: viewW, ViewH: viewH, Step: DefaultCameraStep}
}

// clampAxis keeps v within [-view/2, max(0, extent-view) + view/2]. The view
// may overshoot each world edge by half a viewport, so a world smaller than
// the viewport can still be scrolled fully into view.
func clampAxis(v, view, extent float64) float64 {
	lo := -view / 2
	hi := math.Max(0, extent-view) + view/2
	return math.Max(lo, math.Min(v, hi))
}

// Clamp restricts the scroll offset for a world of the given pixel extent.
func (c *Camera) Clamp(worldW, worldH float64) {
	c.X = clampAxis(c.X, c.ViewW, worldW)
	c.Y = clampAxis(c.Y, c.ViewH, worldH)
}

// Move scrolls by Step for every held direction. Manual input cancels an
// active ScrollTo.
func (c *Camera) Move(in DirectionInput) {
	if !in.Any() {
		return
	}
	c.scrollTween = nil
	if in.Left {
		c.X -= c.Step
	}
	if in.Right {
		c.X += c.Step
	}
	if in.Up {
		c.Y -= c.Step
	}
	if in.Down {
		c.Y += c.Step
	}
}

// ScrollTo animates the scroll offset to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// CenterOn animates the camera so the world point (wx, wy) ends up in the
// middle of the viewport.
func (c *Camera) CenterOn(wx, wy float64, duration float32, easeFn ease.TweenFunc) {
	c.ScrollTo(wx-c.ViewW/2, wy-c.ViewH/2, duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// update advances the scroll animation by dt seconds.
func (c *Camera) update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// VisibleBounds returns the world rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.ViewW, Height: c.ViewH}
}
