package cliffside

// PoolID identifies one of the sprite pools owned by a World.
type PoolID uint8

const (
	PoolGround  PoolID = iota // ground tiles and cliff faces
	PoolTrunk                 // tree trunks
	PoolFoliage               // tree canopies
	PoolActor                 // actor sprites
	poolCount
)

func (id PoolID) String() string {
	switch id {
	case PoolGround:
		return "ground"
	case PoolTrunk:
		return "trunk"
	case PoolFoliage:
		return "foliage"
	case PoolActor:
		return "actor"
	default:
		return "unknown"
	}
}

// EntryState is the lifecycle state of a pool entry.
type EntryState uint8

const (
	EntryFree EntryState = iota
	EntryActive
)

// ShaderBinding selects the shadow shader instance an entry renders with.
type ShaderBinding uint8

const (
	ShaderNone ShaderBinding = iota
	ShaderTrunk
	ShaderLeaves
	ShaderActor
)

// Off-screen anchor that released entries are parked at.
const (
	OffscreenX = -100000
	OffscreenY = -100000
)

// Entry is a reusable drawable slot. Entries are owned by their Pool and
// borrowed by the frame orchestrator for a single frame.
type Entry struct {
	State EntryState
	// X and Y are the world-space anchor position.
	X, Y float64
	// OriginX and OriginY are the anchor as a fraction of the frame size
	// (0,0 is the top-left corner, 0.5,0.5 is the center).
	OriginX, OriginY float64
	// Variant is the atlas frame index.
	Variant int
	// Depth orders draw submission only.
	Depth float64
	// Rotation in radians around the origin.
	Rotation float64
	Shader   ShaderBinding
	Visible  bool

	index int
}

// Index returns the entry's fixed slot index within its pool.
func (e *Entry) Index() int { return e.index }

// reset returns the entry to its released state.
func (e *Entry) reset() {
	e.State = EntryFree
	e.X, e.Y = OffscreenX, OffscreenY
	e.OriginX, e.OriginY = 0, 0
	e.Variant = 0
	e.Depth = 0
	e.Rotation = 0
	e.Shader = ShaderNone
	e.Visible = false
}

// Pool is a fixed-capacity arena of preallocated entries. Free entries are
// tracked by a stack of indices so Acquire and ReleaseAll never allocate.
type Pool struct {
	id      PoolID
	entries []Entry
	free    []int
	active  []int
	dropped int
}

// NewPool creates a pool with capacity preallocated entries. A negative
// capacity is treated as zero.
func NewPool(id PoolID, capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool{
		id:      id,
		entries: make([]Entry, capacity),
		free:    make([]int, capacity),
		active:  make([]int, 0, capacity),
	}
	for i := range p.entries {
		p.entries[i].index = i
		p.entries[i].reset()
		// Stack top is the end of the slice; lowest index pops first.
		p.free[i] = capacity - 1 - i
	}
	return p
}

// ID returns the pool identifier.
func (p *Pool) ID() PoolID { return p.id }

// Capacity returns the fixed number of entries.
func (p *Pool) Capacity() int { return len(p.entries) }

// ActiveCount returns the number of entries currently Active.
func (p *Pool) ActiveCount() int { return len(p.active) }

// FreeCount returns the number of entries available to Acquire.
func (p *Pool) FreeCount() int { return len(p.free) }

// Dropped returns how many Acquire calls failed since the last ReleaseAll.
func (p *Pool) Dropped() int { return p.dropped }

// Acquire pops a free entry, marks it Active and returns it. The boolean is
// false when the pool is exhausted; the caller skips that element.
func (p *Pool) Acquire() (*Entry, bool) {
	n := len(p.free)
	if n == 0 {
		p.dropped++
		return nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	p.active = append(p.active, idx)

	e := &p.entries[idx]
	e.State = EntryActive
	e.Visible = true
	return e, true
}

// Drop records n acquisitions that were skipped without calling Acquire.
func (p *Pool) Drop(n int) {
	if n > 0 {
		p.dropped += n
	}
}

// ReleaseAll returns every Active entry to the free stack, parks it at the
// off-screen anchor, clears its shader binding and hides it.
func (p *Pool) ReleaseAll() {
	// Push in reverse acquisition order so the next frame pops the same
	// indices in the same order.
	for i := len(p.active) - 1; i >= 0; i-- {
		idx := p.active[i]
		p.entries[idx].reset()
		p.free = append(p.free, idx)
	}
	p.active = p.active[:0]
	p.dropped = 0
}

// Each calls fn for every Active entry in acquisition order.
func (p *Pool) Each(fn func(e *Entry)) {
	for _, idx := range p.active {
		fn(&p.entries[idx])
	}
}

// PoolCapacities sizes the pools of a PoolSet.
type PoolCapacities struct {
	Ground  int
	Trunk   int
	Foliage int
	Actor   int
}

// DefaultPoolCapacities returns capacities sized for a 1280x720 viewport
// with a five-tile cull buffer.
func DefaultPoolCapacities() PoolCapacities {
	return PoolCapacities{
		Ground:  5000,
		Trunk:   500,
		Foliage: 500,
		Actor:   500,
	}
}

// withDefaults replaces zero capacities with those of def.
func (c PoolCapacities) withDefaults(def PoolCapacities) PoolCapacities {
	if c.Ground == 0 {
		c.Ground = def.Ground
	}
	if c.Trunk == 0 {
		c.Trunk = def.Trunk
	}
	if c.Foliage == 0 {
		c.Foliage = def.Foliage
	}
	if c.Actor == 0 {
		c.Actor = def.Actor
	}
	return c
}

// PoolSet groups one pool per PoolID.
type PoolSet struct {
	pools [poolCount]*Pool
}

// NewPoolSet preallocates every pool.
func NewPoolSet(c PoolCapacities) *PoolSet {
	s := &PoolSet{}
	s.pools[PoolGround] = NewPool(PoolGround, c.Ground)
	s.pools[PoolTrunk] = NewPool(PoolTrunk, c.Trunk)
	s.pools[PoolFoliage] = NewPool(PoolFoliage, c.Foliage)
	s.pools[PoolActor] = NewPool(PoolActor, c.Actor)
	return s
}

// Get returns the pool for id.
func (s *PoolSet) Get(id PoolID) *Pool { return s.pools[id] }

// Acquire acquires from the pool for id.
func (s *PoolSet) Acquire(id PoolID) (*Entry, bool) { return s.pools[id].Acquire() }

// ReleaseAll releases every pool.
func (s *PoolSet) ReleaseAll() {
	for _, p := range s.pools {
		p.ReleaseAll()
	}
}

// PoolUsage is a snapshot of one pool's occupancy.
type PoolUsage struct {
	ID       PoolID
	Active   int
	Capacity int
	Dropped  int
}

// Usage reports every pool's occupancy.
func (s *PoolSet) Usage() [poolCount]PoolUsage {
	var out [poolCount]PoolUsage
	for i, p := range s.pools {
		out[i] = PoolUsage{ID: p.id, Active: p.ActiveCount(), Capacity: p.Capacity(), Dropped: p.dropped}
	}
	return out
}
