package cliffside

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups commands that share a source atlas and shader binding.
type batchKey struct {
	sheet  PoolID
	shader ShaderBinding
}

func commandBatchKey(cmd *DrawCommand) batchKey {
	sheet := cmd.Pool
	if sheet == PoolFoliage {
		sheet = PoolTrunk
	}
	return batchKey{sheet: sheet, shader: cmd.Shader}
}

// sheetFor returns the atlas a pool's entries are drawn from.
func (s *Sheets) sheetFor(id PoolID) *Sheet {
	if s == nil {
		return nil
	}
	switch id {
	case PoolGround:
		return s.Ground
	case PoolTrunk, PoolFoliage:
		return s.Trees
	case PoolActor:
		return s.Actors
	}
	return nil
}

// commandGeoM builds the transform for a command: move the origin to the
// anchor, rotate, then translate into screen space.
func commandGeoM(cmd *DrawCommand, w, h, camX, camY float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-cmd.OriginX*w, -cmd.OriginY*h)
	if cmd.Rotation != 0 {
		m.Rotate(cmd.Rotation)
	}
	m.Translate(cmd.X-camX, cmd.Y-camY)
	return m
}

// submitter draws sorted commands onto a target. It keeps its draw option
// structs between frames.
type submitter struct {
	op       ebiten.DrawImageOptions
	shaderOp ebiten.DrawRectShaderOptions
}

// submitBatches draws every command in order. Shader-bound commands use the
// self-shadow shader when it is available and fall back to a plain draw
// otherwise. It returns the number of draw calls issued.
func (s *submitter) submitBatches(target *ebiten.Image, commands []DrawCommand, sheets *Sheets, shaders *ShadowShaders, camX, camY float64) int {
	if len(commands) == 0 || sheets == nil {
		return 0
	}
	var shader *ebiten.Shader
	if shaders != nil && shaders.Available() {
		shader = shaders.ensure()
	}

	calls := 0
	for i := range commands {
		cmd := &commands[i]
		sheet := sheets.sheetFor(cmd.Pool)
		if sheet == nil {
			continue
		}
		img, _ := sheet.Frame(cmd.Frame)
		b := img.Bounds()
		w, h := float64(b.Dx()), float64(b.Dy())
		geo := commandGeoM(cmd, w, h, camX, camY)

		if shader != nil && cmd.Shader != ShaderNone {
			if inst := shaders.instance(cmd.Shader); inst != nil {
				s.shaderOp.GeoM = geo
				s.shaderOp.Images[0] = img
				s.shaderOp.Uniforms = inst.uniforms
				target.DrawRectShader(b.Dx(), b.Dy(), shader, &s.shaderOp)
				calls++
				continue
			}
		}

		s.op.GeoM = geo
		s.op.ColorScale.Reset()
		target.DrawImage(img, &s.op)
		calls++
	}
	return calls
}
