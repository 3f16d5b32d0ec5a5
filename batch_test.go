package cliffside

import (
	"math"
	"testing"
)

func TestCommandBatchKey(t *testing.T) {
	trunk := DrawCommand{Pool: PoolTrunk, Shader: ShaderTrunk}
	foliage := DrawCommand{Pool: PoolFoliage, Shader: ShaderTrunk}
	if commandBatchKey(&trunk) != commandBatchKey(&foliage) {
		t.Error("trunk and foliage with the same shader use different batch keys")
	}
	ground := DrawCommand{Pool: PoolGround}
	if commandBatchKey(&ground) == commandBatchKey(&trunk) {
		t.Error("ground shares a batch key with trunks")
	}
}

func TestCountBatches(t *testing.T) {
	tests := []struct {
		name  string
		pools []PoolID
		want  int
	}{
		{"empty", nil, 0},
		{"single", []PoolID{PoolGround}, 1},
		{"contiguous", []PoolID{PoolGround, PoolGround, PoolGround}, 1},
		{"alternating", []PoolID{PoolGround, PoolActor, PoolGround}, 3},
		{"tree pair", []PoolID{PoolTrunk, PoolFoliage, PoolGround}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := make([]DrawCommand, len(tt.pools))
			for i, id := range tt.pools {
				cmds[i] = DrawCommand{Pool: id}
			}
			if got := countBatches(cmds); got != tt.want {
				t.Errorf("countBatches = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommandGeoM(t *testing.T) {
	cmd := DrawCommand{X: 100, Y: 50, OriginX: 0.5, OriginY: 0.5}
	m := commandGeoM(&cmd, 480, 480, 20, 10)
	// The frame center lands on the anchor in screen space.
	x, y := m.Apply(240, 240)
	if !approxEqual(x, 80, 1e-9) || !approxEqual(y, 40, 1e-9) {
		t.Errorf("center maps to (%v, %v), want (80, 40)", x, y)
	}

	cmd.Rotation = math.Pi / 2
	m = commandGeoM(&cmd, 480, 480, 20, 10)
	x, y = m.Apply(240, 240)
	if !approxEqual(x, 80, 1e-9) || !approxEqual(y, 40, 1e-9) {
		t.Errorf("rotated center maps to (%v, %v), want (80, 40)", x, y)
	}
	// The top-left corner swings around the anchor.
	x, y = m.Apply(0, 0)
	if !approxEqual(x, 80+240, 1e-6) || !approxEqual(y, 40-240, 1e-6) {
		t.Errorf("rotated corner maps to (%v, %v), want (320, -200)", x, y)
	}
}

func TestSheetForNil(t *testing.T) {
	var s *Sheets
	if s.sheetFor(PoolGround) != nil {
		t.Error("nil Sheets returned a sheet")
	}
	s = &Sheets{Ground: &Sheet{Name: "g"}, Trees: &Sheet{Name: "t"}, Actors: &Sheet{Name: "a"}}
	if s.sheetFor(PoolFoliage) != s.Trees || s.sheetFor(PoolActor) != s.Actors {
		t.Error("sheetFor picked the wrong atlas")
	}
}
