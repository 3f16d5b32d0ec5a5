package cliffside

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats holds per-frame counts. PhaseTimes is only populated when
// Options.Debug is set.
type FrameStats struct {
	Frame      uint64
	Cull       CullRect
	Commands   int
	Batches    int
	DrawCalls  int
	Trees      int
	Pools      [poolCount]PoolUsage
	PhaseTimes [phaseCount]time.Duration
}

// Dropped returns the total failed acquisitions across all pools.
func (s FrameStats) Dropped() int {
	n := 0
	for _, p := range s.Pools {
		n += p.Dropped
	}
	return n
}

// collectStats fills the counters of the frame that was just built.
func (w *World) collectStats() {
	w.stats.Cull = w.ctx.Cull
	w.stats.Commands = len(w.sorter.commands)
	w.stats.Batches = countBatches(w.sorter.commands)
	w.stats.Trees = w.trees
	w.stats.Pools = w.pools.Usage()

	for _, u := range w.stats.Pools {
		if u.Dropped == 0 || !w.exhaustLog.Allow() {
			continue
		}
		w.log.Warn("pool exhausted",
			zap.Stringer("pool", u.ID),
			zap.Int("capacity", u.Capacity),
			zap.Int("dropped", u.Dropped),
			zap.Uint64("frame", w.stats.Frame))
	}
}

// debugLog writes timing and count stats at debug level.
func (w *World) debugLog() {
	if !w.opts.Debug {
		return
	}
	s := &w.stats
	var total time.Duration
	for _, d := range s.PhaseTimes {
		total += d
	}
	w.log.Debug("frame",
		zap.Uint64("frame", s.Frame),
		zap.Duration("cull", s.PhaseTimes[PhaseCulling]),
		zap.Duration("repopulate", s.PhaseTimes[PhaseRepopulating]),
		zap.Duration("bind", s.PhaseTimes[PhaseShaderBinding]),
		zap.Duration("sort", s.PhaseTimes[PhaseDepthSorting]),
		zap.Duration("submit", s.PhaseTimes[PhaseSubmitted]),
		zap.Duration("total", total),
		zap.Int("commands", s.Commands),
		zap.Int("batches", s.Batches),
		zap.Int("drawCalls", s.DrawCalls),
		zap.Int("cells", s.Cull.Cells()),
		zap.Int("trees", s.Trees),
		zap.Int("dropped", s.Dropped()))
}

// countBatches counts contiguous groups of commands sharing the same
// batchKey. This reports how many draw calls a true batching implementation
// would produce.
func countBatches(commands []DrawCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}
