package cliffside

import "math/rand/v2"

// ActorPlacement is a fixed actor position and atlas frame, generated once
// per session.
type ActorPlacement struct {
	X, Y  float64
	Frame int
}

// ActorConfig controls actor placement.
type ActorConfig struct {
	// Count is the number of actors to try to place.
	Count int
	// Attempts bounds the rejection sampling per actor.
	Attempts int
	// Frames is the number of frames in the actor atlas.
	Frames int
}

// DefaultActorConfig places 500 actors with 100 attempts each over a 6x6
// frame atlas.
func DefaultActorConfig() ActorConfig {
	return ActorConfig{Count: 500, Attempts: 100, Frames: 36}
}

// canHostActor reports whether an actor may stand on c: any ground tile
// except a tree, plus the first tile index past the ground range.
func canHostActor(c Cell) bool {
	t := c.Tile()
	return t <= MaxGroundTile+1 && t != TreeTile
}

// PlaceActors rejection-samples actor positions on whole-pixel world
// coordinates. Actors that exhaust their attempts are omitted.
func PlaceActors(g *Grid, tileSize int, cfg ActorConfig, rng *rand.Rand) []ActorPlacement {
	if cfg.Count <= 0 || tileSize <= 0 {
		return nil
	}
	w, h := g.PixelSize(tileSize)
	frames := max(cfg.Frames, 1)
	out := make([]ActorPlacement, 0, cfg.Count)
	for range cfg.Count {
		for range cfg.Attempts {
			x := float64(rng.IntN(int(w) + 1))
			y := float64(rng.IntN(int(h) + 1))
			row, col := int(y)/tileSize, int(x)/tileSize
			if !g.InBounds(row, col) || !canHostActor(g.At(row, col)) {
				continue
			}
			out = append(out, ActorPlacement{X: x, Y: y, Frame: rng.IntN(frames)})
			break
		}
	}
	return out
}
