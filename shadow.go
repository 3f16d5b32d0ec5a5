package cliffside

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// selfShadowShaderSrc fills transparent pixels of a sprite frame with a
// translucent shadow when the mirrored source position along the light ray
// is opaque. Coordinates are relative to the frame's sub-image origin.
const selfShadowShaderSrc = `//kage:unit pixels
package main

var FrameExtent vec2
var BaseY float
var MaxDistance float
var CosTheta float
var SinTheta float
var ShadowColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0.01 {
		return c
	}
	if abs(SinTheta) < 0.01 {
		return c
	}
	origin := imageSrc0Origin()
	p := src - origin
	d := (p.y - BaseY) / SinTheta
	if abs(d) >= MaxDistance {
		return c
	}
	s := vec2(p.x-d*CosTheta, BaseY-2*d)
	if s.x < 0 || s.y < 0 || s.x >= FrameExtent.x || s.y >= FrameExtent.y {
		return c
	}
	if imageSrc0At(origin+s).a > 0.01 {
		return ShadowColor
	}
	return c
}
`

// Shadow constants shared by the GPU shader and the CPU reference.
const (
	// ShadowPeriod is the number of clock units for one full light turn.
	ShadowPeriod = 720.0
	// ShadowClockRate is the default number of clock units per second.
	ShadowClockRate = 2.0
	// alphaThreshold separates opaque from transparent samples.
	alphaThreshold = 0.01
	// minSin disables shadows when the light is parallel to the ground.
	minSin = 0.01
)

// DefaultShadowColor is a near-black blue at 30% opacity.
var DefaultShadowColor = Color{R: 0, G: 0, B: 0.05, A: 0.3}

// ShadowProfile describes one sprite category's frame geometry.
type ShadowProfile struct {
	// FrameW and FrameH are the frame size in pixels.
	FrameW, FrameH float64
	// BaseY is the frame-local row of the sprite's feet line.
	BaseY float64
}

// MaxDistance returns the longest projected shadow, half of BaseY.
func (p ShadowProfile) MaxDistance() float64 { return p.BaseY / 2 }

// Category profiles.
var (
	ActorShadowProfile = ShadowProfile{FrameW: 112, FrameH: 112, BaseY: 80}
	TrunkShadowProfile = ShadowProfile{FrameW: 480, FrameH: 480, BaseY: 245}
	// Canopies share the trunk's frame geometry and feet line.
	LeavesShadowProfile = TrunkShadowProfile
)

// ShadowUniforms is the per-frame light state. It is computed once on the
// host and read by every shaded sprite in that frame.
type ShadowUniforms struct {
	Clock float64
	Angle float64
	Cos   float64
	Sin   float64
}

// NewShadowUniforms derives the light direction for clock.
func NewShadowUniforms(clock float64) ShadowUniforms {
	f := clock / ShadowPeriod
	f -= math.Floor(f)
	angle := f * 2 * math.Pi
	return ShadowUniforms{
		Clock: clock,
		Angle: angle,
		Cos:   math.Cos(angle),
		Sin:   math.Sin(angle),
	}
}

// ShadowSource returns the frame-local source position sampled for the
// transparent pixel at (px, py). The boolean is false when no shadow can
// reach that pixel for the current light angle.
func ShadowSource(px, py float64, p ShadowProfile, u ShadowUniforms) (sx, sy float64, ok bool) {
	if math.Abs(u.Sin) < minSin {
		return 0, 0, false
	}
	d := (py - p.BaseY) / u.Sin
	if math.Abs(d) >= p.MaxDistance() {
		return 0, 0, false
	}
	sx = px - d*u.Cos
	sy = p.BaseY - 2*d
	if sx < 0 || sy < 0 || sx >= p.FrameW || sy >= p.FrameH {
		return 0, 0, false
	}
	return sx, sy, true
}

// ProjectShadow is the CPU reference of the self-shadow shader. It returns a
// copy of frame from src with shadow pixels painted in shadow. Pixels are
// sampled at their centers, matching the rasterizer.
func ProjectShadow(src image.Image, frame image.Rectangle, p ShadowProfile, u ShadowUniforms, shadow Color) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, frame.Dx(), frame.Dy()))
	sc := color.NRGBAModel.Convert(shadowNRGBA(shadow)).(color.NRGBA)
	for y := 0; y < frame.Dy(); y++ {
		for x := 0; x < frame.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(frame.Min.X+x, frame.Min.Y+y)).(color.NRGBA)
			if opaque(c) {
				out.SetNRGBA(x, y, c)
				continue
			}
			sx, sy, ok := ShadowSource(float64(x)+0.5, float64(y)+0.5, p, u)
			if ok {
				sample := color.NRGBAModel.Convert(src.At(frame.Min.X+int(sx), frame.Min.Y+int(sy))).(color.NRGBA)
				if opaque(sample) {
					out.SetNRGBA(x, y, sc)
					continue
				}
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

func opaque(c color.NRGBA) bool {
	return float64(c.A)/255 > alphaThreshold
}

func shadowNRGBA(c Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// shadowInstance is one category's compiled shader binding with its own
// persistent uniforms map.
type shadowInstance struct {
	profile  ShadowProfile
	uniforms map[string]any
	extent   []float32
	color    []float32
}

func newShadowInstance(p ShadowProfile, shadow Color) *shadowInstance {
	pc := shadow.Premultiplied()
	inst := &shadowInstance{
		profile:  p,
		uniforms: make(map[string]any, 6),
		extent:   []float32{float32(p.FrameW), float32(p.FrameH)},
		color:    pc[:],
	}
	inst.uniforms["FrameExtent"] = inst.extent
	inst.uniforms["BaseY"] = float32(p.BaseY)
	inst.uniforms["MaxDistance"] = float32(p.MaxDistance())
	inst.uniforms["ShadowColor"] = inst.color
	return inst
}

// setLight stores the frame's light direction.
func (s *shadowInstance) setLight(u ShadowUniforms) {
	s.uniforms["CosTheta"] = float32(u.Cos)
	s.uniforms["SinTheta"] = float32(u.Sin)
}

// ShadowShaders owns the self-shadow shader and one instance per bound
// category. Compilation is lazy; if it fails the shaders stay unavailable
// for the rest of the session and sprites draw without shadows.
type ShadowShaders struct {
	shader    *ebiten.Shader
	compiled  bool
	err       error
	instances [4]*shadowInstance
}

// NewShadowShaders prepares the per-category instances. The shader itself
// is compiled on first use.
func NewShadowShaders(shadow Color) *ShadowShaders {
	s := &ShadowShaders{}
	s.instances[ShaderTrunk] = newShadowInstance(TrunkShadowProfile, shadow)
	s.instances[ShaderLeaves] = newShadowInstance(LeavesShadowProfile, shadow)
	s.instances[ShaderActor] = newShadowInstance(ActorShadowProfile, shadow)
	return s
}

// ensure compiles the shader once.
func (s *ShadowShaders) ensure() *ebiten.Shader {
	if !s.compiled {
		s.compiled = true
		sh, err := ebiten.NewShader([]byte(selfShadowShaderSrc))
		if err != nil {
			s.err = fmt.Errorf("cliffside: compile self-shadow shader: %w", err)
		} else {
			s.shader = sh
		}
	}
	return s.shader
}

// Available compiles the shader if needed and reports whether it can be used.
func (s *ShadowShaders) Available() bool {
	return s.ensure() != nil
}

// Err returns the compilation error, if any.
func (s *ShadowShaders) Err() error { return s.err }

// SetUniforms pushes the frame's light state into every instance.
func (s *ShadowShaders) SetUniforms(u ShadowUniforms) {
	for _, inst := range s.instances {
		if inst != nil {
			inst.setLight(u)
		}
	}
}

// instance returns the binding for b, or nil for ShaderNone.
func (s *ShadowShaders) instance(b ShaderBinding) *shadowInstance {
	if int(b) >= len(s.instances) {
		return nil
	}
	return s.instances[b]
}
