package cliffside

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Phase is the frame orchestrator's current step.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCulling
	PhaseRepopulating
	PhaseShaderBinding
	PhaseDepthSorting
	PhaseSubmitted
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCulling:
		return "culling"
	case PhaseRepopulating:
		return "repopulating"
	case PhaseShaderBinding:
		return "shader-binding"
	case PhaseDepthSorting:
		return "depth-sorting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Options configures a World. Zero fields take their DefaultOptions value.
// A negative CullBuffer scans only the visible tiles; a negative
// DecorativeCap disables trees; a negative ActorMargin shrinks
// the actor area; a negative SwayAmplitude sways the other way.
type Options struct {
	TileSize   int
	CullBuffer int
	// ViewW and ViewH are the viewport size in pixels.
	ViewW, ViewH float64
	Pools        PoolCapacities
	// DecorativeCap is the maximum number of trees rebuilt per frame.
	DecorativeCap int
	// ActorMargin extends the camera rectangle when selecting actors.
	ActorMargin float64
	// SwayAmplitude is the peak tree rotation in radians.
	SwayAmplitude float64
	// ShadowClockRate is the number of shadow clock units per second.
	ShadowClockRate float64
	ShadowColor     Color
	// DisableShadows draws trees and actors without the self-shadow shader.
	DisableShadows  bool
	CameraStep      float64
	// RecenterDuration is the length of the recenter scroll in seconds.
	RecenterDuration float32
	ScreenshotDir    string
	ShowStats        bool
	Debug            bool
	Logger           *zap.Logger
}

// DefaultOptions returns the standard 1280x720 configuration.
func DefaultOptions() Options {
	return Options{
		TileSize:         DefaultTileSize,
		CullBuffer:       DefaultCullBuffer,
		ViewW:            1280,
		ViewH:            720,
		Pools:            DefaultPoolCapacities(),
		DecorativeCap:    500,
		ActorMargin:      ActorCellSize,
		SwayAmplitude:    3 * math.Pi / 180,
		ShadowClockRate:  ShadowClockRate,
		ShadowColor:      DefaultShadowColor,
		CameraStep:       DefaultCameraStep,
		RecenterDuration: 0.75,
		ScreenshotDir:    "screenshots",
	}
}

// FrameContext is the explicit per-frame state threaded through the
// orchestrator: clocks, camera snapshot, visible range and light.
type FrameContext struct {
	// Frame counts completed BuildFrame calls.
	Frame uint64
	// Time is the animation clock in seconds.
	Time float64
	// Dt is the last Update step in seconds.
	Dt float64
	// CameraX and CameraY snapshot the scroll offset for the frame.
	CameraX, CameraY float64
	// View is the world rectangle under the viewport.
	View  Rect
	Cull  CullRect
	Light ShadowUniforms
}

// ShadowClock returns the shadow clock for the context's animation time.
func (c FrameContext) ShadowClock(rate float64) float64 { return c.Time * rate }

// World renders a Grid with its trees and actors through fixed pools. It is
// driven from a single goroutine: Update from ebiten.Game.Update and Draw
// from ebiten.Game.Draw.
type World struct {
	grid    *Grid
	actors  []ActorPlacement
	sheets  *Sheets
	opts    Options
	camera  *Camera
	pools   *PoolSet
	shaders *ShadowShaders

	ctx    FrameContext
	phase  Phase
	sorter commandSorter
	submit submitter
	faces  []CliffFace
	trees  int
	mark   time.Time

	stats      FrameStats
	overlay    *StatsOverlay
	log        *zap.Logger
	exhaustLog *rate.Limiter
	shaderLog  bool

	screenshotQueue []string
}

// NewWorld creates a world over grid. sheets may be nil, in which case
// frames are built but nothing is drawn.
func NewWorld(grid *Grid, actors []ActorPlacement, sheets *Sheets, opts Options) *World {
	def := DefaultOptions()
	if opts.TileSize <= 0 {
		opts.TileSize = def.TileSize
	}
	if opts.CullBuffer == 0 {
		opts.CullBuffer = def.CullBuffer
	} else if opts.CullBuffer < 0 {
		opts.CullBuffer = 0
	}
	if opts.ViewW <= 0 || opts.ViewH <= 0 {
		opts.ViewW, opts.ViewH = def.ViewW, def.ViewH
	}
	if opts.CameraStep <= 0 {
		opts.CameraStep = def.CameraStep
	}
	if opts.ShadowClockRate <= 0 {
		opts.ShadowClockRate = def.ShadowClockRate
	}
	opts.Pools = opts.Pools.withDefaults(def.Pools)
	if opts.DecorativeCap == 0 {
		opts.DecorativeCap = def.DecorativeCap
	}
	if opts.ActorMargin == 0 {
		opts.ActorMargin = def.ActorMargin
	}
	if opts.SwayAmplitude == 0 {
		opts.SwayAmplitude = def.SwayAmplitude
	}
	if opts.ShadowColor == (Color{}) {
		opts.ShadowColor = def.ShadowColor
	}
	if opts.RecenterDuration <= 0 {
		opts.RecenterDuration = def.RecenterDuration
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = def.ScreenshotDir
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cam := NewCamera(opts.ViewW, opts.ViewH)
	cam.Step = opts.CameraStep

	w := &World{
		grid:       grid,
		actors:     actors,
		sheets:     sheets,
		opts:       opts,
		camera:     cam,
		pools:      NewPoolSet(opts.Pools),
		shaders:    NewShadowShaders(opts.ShadowColor),
		overlay:    NewStatsOverlay(60),
		log:        log,
		exhaustLog: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
	w.overlay.Visible = opts.ShowStats
	return w
}

// Grid returns the world grid.
func (w *World) Grid() *Grid { return w.grid }

// Camera returns the world camera.
func (w *World) Camera() *Camera { return w.camera }

// Pools returns the sprite pools.
func (w *World) Pools() *PoolSet { return w.pools }

// Context returns a copy of the current frame context.
func (w *World) Context() FrameContext { return w.ctx }

// Phase returns the orchestrator's current phase.
func (w *World) Phase() Phase { return w.phase }

// Commands returns the sorted draw commands of the last built frame. The
// slice is reused by the next frame.
func (w *World) Commands() []DrawCommand { return w.sorter.commands }

// Stats returns the statistics of the last built frame.
func (w *World) Stats() FrameStats { return w.stats }

// Overlay returns the stats overlay.
func (w *World) Overlay() *StatsOverlay { return w.overlay }

// PixelSize returns the world extent in pixels.
func (w *World) PixelSize() (float64, float64) {
	return w.grid.PixelSize(w.opts.TileSize)
}

// Update advances the clocks by dt seconds and applies input to the camera.
func (w *World) Update(in Input, dt float64) {
	w.ctx.Dt = dt
	w.ctx.Time += dt

	if in.Recenter {
		w.Recenter()
	}
	if in.ToggleStats {
		w.overlay.Visible = !w.overlay.Visible
	}
	if in.Screenshot {
		w.Screenshot("frame")
	}

	w.camera.Move(in.DirectionInput)
	w.camera.update(float32(dt))
	ww, wh := w.PixelSize()
	w.camera.Clamp(ww, wh)
}

// Recenter scrolls the camera to the middle of the world.
func (w *World) Recenter() {
	ww, wh := w.PixelSize()
	w.camera.CenterOn(ww/2, wh/2, w.opts.RecenterDuration, ease.OutQuad)
}

// enter switches phase. In debug mode the time spent in the phase being
// left is added to the frame stats.
func (w *World) enter(p Phase) {
	if w.opts.Debug {
		now := time.Now()
		w.stats.PhaseTimes[w.phase] += now.Sub(w.mark)
		w.mark = now
	}
	w.phase = p
}

// BuildFrame runs culling, repopulation, shader binding and depth sorting.
// On return Commands holds the frame's draw list in submission order and the
// phase stays PhaseDepthSorting until Draw submits it.
func (w *World) BuildFrame() {
	w.stats = FrameStats{Frame: w.ctx.Frame}
	if w.opts.Debug {
		w.mark = time.Now()
	}

	w.enter(PhaseCulling)
	w.cull()

	w.enter(PhaseRepopulating)
	w.repopulate()

	w.enter(PhaseShaderBinding)
	w.bindShaders()

	w.enter(PhaseDepthSorting)
	w.sortCommands()

	w.ctx.Frame++
	w.collectStats()
}

// cull snapshots the camera and computes the visible tile range.
func (w *World) cull() {
	w.ctx.View = w.camera.VisibleBounds()
	w.ctx.CameraX, w.ctx.CameraY = w.ctx.View.X, w.ctx.View.Y
	w.ctx.Cull = ComputeCullRect(
		w.ctx.View.X, w.ctx.View.Y, w.ctx.View.Width, w.ctx.View.Height,
		w.opts.TileSize, w.opts.CullBuffer, w.grid.Rows(), w.grid.Cols())
}

// repopulate releases every pool and re-acquires entries for the ground,
// cliff faces and trees of every visible cell in row-major order.
func (w *World) repopulate() {
	w.pools.ReleaseAll()
	w.trees = 0

	ts := w.opts.TileSize
	fts := float64(ts)
	r := w.ctx.Cull
	for row := r.StartRow; row < r.EndRow; row++ {
		for col := r.StartCol; col < r.EndCol; col++ {
			cell := w.grid.At(row, col)
			if cell.Tile() <= MaxGroundTile {
				w.placeGround(cell, row, col, fts)
			}

			if w.trees >= w.opts.DecorativeCap || !cell.IsTree() {
				continue
			}
			w.trees++
			sway := w.opts.SwayAmplitude * math.Sin(2*w.ctx.Time+0.5*float64(col))
			cx := float64(col*ts) + fts/2
			cy := float64(row*ts) + fts/2
			if e, ok := w.pools.Acquire(PoolTrunk); ok {
				placeDecal(e, cx, cy, TrunkFrame, float64(row*10+1), sway)
			}
			if e, ok := w.pools.Acquire(PoolFoliage); ok {
				placeDecal(e, cx, cy, FoliageFrame, float64(row*10+2), sway)
			}
		}
	}
}

// placeGround acquires the ground tile and its cliff faces for one cell.
func (w *World) placeGround(cell Cell, row, col int, ts float64) {
	x := float64(col) * ts
	if e, ok := w.pools.Acquire(PoolGround); ok {
		e.X = x
		e.Y = float64(row)*ts + float64(cell.Elevation)
		e.Variant = ResolveGroundVariant(w.grid, row, col)
		if cell.Elevation != 0 {
			e.Depth = float64(row*10 + 3)
		}
	}
	if cell.Elevation == 0 {
		return
	}
	// Never resolve more faces than the ground pool can still hold.
	pool := w.pools.Get(PoolGround)
	free := pool.FreeCount()
	pool.Drop(CliffFaceCount(cell.Elevation, w.opts.TileSize) - free)
	w.faces = ResolveCliffFaces(w.grid, row, col, w.opts.TileSize, free, w.faces[:0])
	for _, f := range w.faces {
		e, ok := pool.Acquire()
		if !ok {
			return
		}
		e.X = x
		e.Y = float64(row+f.RowOffset) * ts
		e.Variant = f.Variant
		e.Depth = float64(row*10) + 2.5
	}
}

func placeDecal(e *Entry, x, y float64, frame int, depth, rotation float64) {
	e.X, e.Y = x, y
	e.OriginX, e.OriginY = 0.5, 0.5
	e.Variant = frame
	e.Depth = depth
	e.Rotation = rotation
}

// bindShaders snapshots the light, binds tree shaders and acquires entries
// for actors near the viewport.
func (w *World) bindShaders() {
	w.ctx.Light = NewShadowUniforms(w.ctx.ShadowClock(w.opts.ShadowClockRate))
	w.shaders.SetUniforms(w.ctx.Light)

	trunk, leaves, actor := ShaderNone, ShaderNone, ShaderNone
	if !w.opts.DisableShadows {
		trunk, leaves, actor = ShaderTrunk, ShaderLeaves, ShaderActor
	}
	w.pools.Get(PoolTrunk).Each(func(e *Entry) { e.Shader = trunk })
	w.pools.Get(PoolFoliage).Each(func(e *Entry) { e.Shader = leaves })

	area := w.ctx.View.Expand(w.opts.ActorMargin)
	ts := float64(w.opts.TileSize)
	for i := range w.actors {
		a := &w.actors[i]
		if !area.Contains(a.X, a.Y) {
			continue
		}
		e, ok := w.pools.Acquire(PoolActor)
		if !ok {
			continue
		}
		e.X, e.Y = a.X, a.Y
		e.OriginX, e.OriginY = 0.5, 0.5
		e.Variant = a.Frame
		e.Depth = (a.Y/ts)*10 + 1.5
		e.Shader = actor
	}
}

// sortCommands emits one command per active entry and sorts them.
func (w *World) sortCommands() {
	cmds := w.sorter.commands[:0]
	order := 0
	for id := PoolGround; id < poolCount; id++ {
		w.pools.Get(id).Each(func(e *Entry) {
			cmds = append(cmds, commandFromEntry(id, e, order))
			order++
		})
	}
	w.sorter.commands = cmds
	w.sorter.mergeSort()
}

// Draw builds the frame and submits it to screen.
func (w *World) Draw(screen *ebiten.Image) {
	w.BuildFrame()

	if !w.opts.DisableShadows && !w.shaderLog && !w.shaders.Available() {
		w.shaderLog = true
		w.log.Warn("self-shadow shader unavailable, drawing without shadows", zap.Error(w.shaders.Err()))
	}

	w.enter(PhaseSubmitted)
	shaders := w.shaders
	if w.opts.DisableShadows {
		shaders = nil
	}
	w.stats.DrawCalls = w.submit.submitBatches(screen, w.sorter.commands, w.sheets, shaders, w.ctx.CameraX, w.ctx.CameraY)
	w.enter(PhaseIdle)

	w.overlay.Record(ebiten.ActualFPS(), w.stats)
	w.overlay.Draw(screen)
	w.flushScreenshots(screen)
	w.debugLog()
}
