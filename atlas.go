package cliffside

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrMissingAtlas is returned when a required atlas image is absent,
// undecodable or smaller than one cell.
var ErrMissingAtlas = errors.New("cliffside: missing atlas")

// Atlas cell sizes.
const (
	GroundCellSize = 32
	TreeCellSize   = 480
	ActorCellSize  = 112
)

// Tree atlas frames.
const (
	TrunkFrame   = 0
	FoliageFrame = 1
)

// TextureRegion is a pixel sub-rectangle of an atlas image.
type TextureRegion struct {
	X, Y          int
	Width, Height int
}

// Rect returns the region as an image.Rectangle.
func (r TextureRegion) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// SheetLayout is a uniform grid of cells over an atlas image. Frames are
// numbered row-major from the top-left cell.
type SheetLayout struct {
	Width, Height int
	CellW, CellH  int
}

// Cols returns the number of cell columns.
func (l SheetLayout) Cols() int {
	if l.CellW <= 0 {
		return 0
	}
	return l.Width / l.CellW
}

// Rows returns the number of cell rows.
func (l SheetLayout) Rows() int {
	if l.CellH <= 0 {
		return 0
	}
	return l.Height / l.CellH
}

// FrameCount returns the number of whole cells.
func (l SheetLayout) FrameCount() int { return l.Cols() * l.Rows() }

// Region returns the pixel rectangle of frame. The boolean is false when the
// frame does not exist.
func (l SheetLayout) Region(frame int) (TextureRegion, bool) {
	if frame < 0 || frame >= l.FrameCount() {
		return TextureRegion{}, false
	}
	cols := l.Cols()
	return TextureRegion{
		X:      (frame % cols) * l.CellW,
		Y:      (frame / cols) * l.CellH,
		Width:  l.CellW,
		Height: l.CellH,
	}, true
}

// Sheet is a grid atlas backed by an ebiten image. Frame sub-images are
// created on first use and cached.
type Sheet struct {
	Name   string
	Image  *ebiten.Image
	Layout SheetLayout
	frames []*ebiten.Image
}

// NewSheet wraps img as a grid of cellW x cellH frames.
func NewSheet(name string, img *ebiten.Image, cellW, cellH int) (*Sheet, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingAtlas, name)
	}
	b := img.Bounds()
	layout := SheetLayout{Width: b.Dx(), Height: b.Dy(), CellW: cellW, CellH: cellH}
	if layout.FrameCount() == 0 {
		return nil, fmt.Errorf("%w: %s is %dx%d, smaller than one %dx%d cell",
			ErrMissingAtlas, name, b.Dx(), b.Dy(), cellW, cellH)
	}
	return &Sheet{
		Name:   name,
		Image:  img,
		Layout: layout,
		frames: make([]*ebiten.Image, layout.FrameCount()),
	}, nil
}

// Frame returns the sub-image for frame, or a 1x1 magenta placeholder when
// the frame does not exist. The boolean reports whether the frame exists.
func (s *Sheet) Frame(frame int) (*ebiten.Image, bool) {
	if frame < 0 || frame >= len(s.frames) {
		return ensureMagentaImage(), false
	}
	if img := s.frames[frame]; img != nil {
		return img, true
	}
	r, _ := s.Layout.Region(frame)
	img := s.Image.SubImage(r.Rect()).(*ebiten.Image)
	s.frames[frame] = img
	return img, true
}

// Sheets holds the three atlases the renderer draws from.
type Sheets struct {
	Ground *Sheet
	Trees  *Sheet
	Actors *Sheet
}

// magenta placeholder singleton (single-threaded renderer, no sync.Once)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
