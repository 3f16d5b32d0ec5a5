package cliffside

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var overlayBackground = Color{A: 0.5}

// StatsOverlay shows the frame rate averaged over a window of frames plus
// pool occupancy. It redraws its text at most every refresh frames.
type StatsOverlay struct {
	Visible bool

	samples []float64
	next    int
	filled  int
	sum     float64

	stats   FrameStats
	refresh int
	tick    int
	text    string
	img     *ebiten.Image
}

// NewStatsOverlay creates an overlay averaging over window frames.
func NewStatsOverlay(window int) *StatsOverlay {
	window = max(window, 1)
	return &StatsOverlay{
		samples: make([]float64, window),
		refresh: 30,
	}
}

// Record adds one frame's FPS sample and stats.
func (o *StatsOverlay) Record(fps float64, stats FrameStats) {
	o.sum -= o.samples[o.next]
	o.samples[o.next] = fps
	o.sum += fps
	o.next = (o.next + 1) % len(o.samples)
	if o.filled < len(o.samples) {
		o.filled++
	}
	o.stats = stats

	if o.tick%o.refresh == 0 {
		o.text = o.format()
	}
	o.tick++
}

// AverageFPS returns the mean of the recorded samples.
func (o *StatsOverlay) AverageFPS() float64 {
	if o.filled == 0 {
		return 0
	}
	return o.sum / float64(o.filled)
}

// Text returns the current overlay text.
func (o *StatsOverlay) Text() string { return o.text }

func (o *StatsOverlay) format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\n", o.AverageFPS())
	fmt.Fprintf(&b, "Sprites: %s\n", humanize.Comma(int64(o.stats.Commands)))
	for _, u := range o.stats.Pools {
		fmt.Fprintf(&b, "%-8s %s/%s", u.ID.String()+":", humanize.Comma(int64(u.Active)), humanize.Comma(int64(u.Capacity)))
		if u.Dropped > 0 {
			fmt.Fprintf(&b, " (-%s)", humanize.Comma(int64(u.Dropped)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Draw renders the overlay in the top-left corner of screen.
func (o *StatsOverlay) Draw(screen *ebiten.Image) {
	if !o.Visible || o.text == "" {
		return
	}
	if o.img == nil {
		// Enough for six lines of debug font.
		o.img = ebiten.NewImage(200, 6*16+4)
	}
	o.img.Clear()
	o.img.Fill(overlayBackground.toRGBA())
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
