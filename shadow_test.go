package cliffside

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestSelfShadowShaderCompiles(t *testing.T) {
	sh, err := ebiten.NewShader([]byte(selfShadowShaderSrc))
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	sh.Deallocate()

	s := NewShadowShaders(DefaultOptions().ShadowColor)
	if !s.Available() {
		t.Fatalf("ShadowShaders unavailable: %v", s.Err())
	}
}

func TestNewShadowUniforms(t *testing.T) {
	tests := []struct {
		clock    float64
		cos, sin float64
	}{
		{0, 1, 0},
		{180, 0, 1},
		{360, -1, 0},
		{540, 0, -1},
		{720, 1, 0},
		{900, 0, 1},
	}
	for _, tt := range tests {
		u := NewShadowUniforms(tt.clock)
		if !approxEqual(u.Cos, tt.cos, 1e-9) || !approxEqual(u.Sin, tt.sin, 1e-9) {
			t.Errorf("clock %v: (cos, sin) = (%v, %v), want (%v, %v)", tt.clock, u.Cos, u.Sin, tt.cos, tt.sin)
		}
		if u.Angle < 0 || u.Angle >= 2*math.Pi {
			t.Errorf("clock %v: angle %v outside [0, 2pi)", tt.clock, u.Angle)
		}
	}
}

func TestShadowProfiles(t *testing.T) {
	if ActorShadowProfile.MaxDistance() != 40 {
		t.Errorf("actor MaxDistance = %v, want 40", ActorShadowProfile.MaxDistance())
	}
	if TrunkShadowProfile.MaxDistance() != 122.5 {
		t.Errorf("trunk MaxDistance = %v, want 122.5", TrunkShadowProfile.MaxDistance())
	}
	if LeavesShadowProfile != TrunkShadowProfile {
		t.Error("leaves profile differs from trunk profile")
	}
}

func TestShadowSourceHorizontalLight(t *testing.T) {
	for _, clock := range []float64{0, 360, 720} {
		u := NewShadowUniforms(clock)
		if _, _, ok := ShadowSource(56, 90, ActorShadowProfile, u); ok {
			t.Errorf("clock %v: horizontal light produced a shadow source", clock)
		}
	}
}

func TestShadowSource(t *testing.T) {
	p := ShadowProfile{FrameW: 100, FrameH: 100, BaseY: 60}
	u := NewShadowUniforms(180) // straight down: cos 0, sin 1

	sx, sy, ok := ShadowSource(40, 70, p, u)
	if !ok || !approxEqual(sx, 40, epsilon) || !approxEqual(sy, 40, epsilon) {
		t.Errorf("ShadowSource(40,70) = (%v, %v, %v), want (40, 40, true)", sx, sy, ok)
	}

	// d = 30 reaches MaxDistance.
	if _, _, ok := ShadowSource(40, 90, p, u); ok {
		t.Error("ShadowSource beyond MaxDistance succeeded")
	}
}

// shadowFixture is a 10x10 frame with one opaque pixel at (2, 3).
func shadowFixture() (*image.NRGBA, ShadowProfile) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(2, 3, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	return img, ShadowProfile{FrameW: 10, FrameH: 10, BaseY: 6}
}

func TestProjectShadow(t *testing.T) {
	src, p := shadowFixture()
	u := NewShadowUniforms(180)
	out := ProjectShadow(src, src.Bounds(), p, u, DefaultShadowColor)

	want := shadowNRGBA(DefaultShadowColor)
	if got := out.NRGBAAt(2, 7); got != want {
		t.Errorf("pixel (2,7) = %v, want shadow %v", got, want)
	}
	if got := out.NRGBAAt(2, 3); got != src.NRGBAAt(2, 3) {
		t.Errorf("opaque pixel (2,3) = %v, want unchanged", got)
	}
	for _, pt := range []image.Point{{5, 7}, {2, 6}, {2, 0}} {
		if got := out.NRGBAAt(pt.X, pt.Y); got.A != 0 {
			t.Errorf("pixel %v = %v, want transparent", pt, got)
		}
	}
}

func TestProjectShadowKeepsOpaquePixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 4; y < 12; y++ {
		for x := 6; x < 10; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 90, A: 255})
		}
	}
	p := ShadowProfile{FrameW: 16, FrameH: 16, BaseY: 12}
	for clock := 0.0; clock < ShadowPeriod; clock += 15 {
		out := ProjectShadow(src, src.Bounds(), p, NewShadowUniforms(clock), DefaultShadowColor)
		for y := 4; y < 12; y++ {
			for x := 6; x < 10; x++ {
				if out.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
					t.Fatalf("clock %v: opaque pixel (%d,%d) changed", clock, x, y)
				}
			}
		}
	}
}

func TestProjectShadowSubFrame(t *testing.T) {
	frame, p := shadowFixture()
	atlas := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for y := range 10 {
		for x := range 10 {
			atlas.SetNRGBA(x+10, y, frame.NRGBAAt(x, y))
		}
	}
	// An opaque pixel in the neighboring frame must never be sampled.
	atlas.SetNRGBA(5, 3, color.NRGBA{A: 255})

	out := ProjectShadow(atlas, image.Rect(10, 0, 20, 10), p, NewShadowUniforms(180), DefaultShadowColor)
	if out.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if out.NRGBAAt(2, 7) != shadowNRGBA(DefaultShadowColor) {
		t.Error("shadow missing in sub-frame projection")
	}
}

func TestShadowShadersUniforms(t *testing.T) {
	s := NewShadowShaders(DefaultShadowColor)
	if s.instance(ShaderNone) != nil {
		t.Error("ShaderNone has an instance")
	}
	s.SetUniforms(NewShadowUniforms(180))

	inst := s.instance(ShaderActor)
	if inst == nil {
		t.Fatal("actor instance missing")
	}
	if got := inst.uniforms["SinTheta"].(float32); !approxEqual(float64(got), 1, 1e-6) {
		t.Errorf("SinTheta = %v, want 1", got)
	}
	if got := inst.uniforms["BaseY"].(float32); got != 80 {
		t.Errorf("BaseY = %v, want 80", got)
	}
	if got := s.instance(ShaderTrunk).uniforms["MaxDistance"].(float32); got != 122.5 {
		t.Errorf("trunk MaxDistance = %v, want 122.5", got)
	}
}
