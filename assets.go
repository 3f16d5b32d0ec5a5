package cliffside

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// AtlasPaths names the three atlas images on disk.
type AtlasPaths struct {
	Ground string
	Trees  string
	Actors string
}

// decodeWorkers bounds concurrent atlas decodes.
const decodeWorkers = 3

// decodeImage opens and decodes one image file. PNG, JPEG, BMP and WebP are
// registered.
func decodeImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no path configured", ErrMissingAtlas)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAtlas, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrMissingAtlas, path, err)
	}
	return img, nil
}

// DecodeAtlases decodes the three atlas files in parallel. Any failure is
// fatal; the first error in ground, trees, actors order is returned.
func DecodeAtlases(paths AtlasPaths) (ground, trees, actors image.Image, err error) {
	jobs := [3]string{paths.Ground, paths.Trees, paths.Actors}
	var (
		imgs [3]image.Image
		errs [3]error
		mu   sync.Mutex
	)
	swg := sizedwaitgroup.New(decodeWorkers)
	for i, p := range jobs {
		swg.Add()
		go func(i int, p string) {
			defer swg.Done()
			img, err := decodeImage(p)
			mu.Lock()
			imgs[i], errs[i] = img, err
			mu.Unlock()
		}(i, p)
	}
	swg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, nil, nil, e
		}
	}
	return imgs[0], imgs[1], imgs[2], nil
}

// LoadSheets decodes the atlases and uploads them as grid sheets with the
// fixed cell sizes of each category.
func LoadSheets(paths AtlasPaths) (*Sheets, error) {
	g, t, a, err := DecodeAtlases(paths)
	if err != nil {
		return nil, fmt.Errorf("cliffside: load atlases: %w", err)
	}
	ground, err := NewSheet("ground", ebiten.NewImageFromImage(g), GroundCellSize, GroundCellSize)
	if err != nil {
		return nil, err
	}
	trees, err := NewSheet("trees", ebiten.NewImageFromImage(t), TreeCellSize, TreeCellSize)
	if err != nil {
		return nil, err
	}
	actors, err := NewSheet("actors", ebiten.NewImageFromImage(a), ActorCellSize, ActorCellSize)
	if err != nil {
		return nil, err
	}
	return &Sheets{Ground: ground, Trees: trees, Actors: actors}, nil
}
