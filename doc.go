// Package cliffside renders a large elevated tile world for [Ebitengine].
//
// A [World] owns a read-only [Grid], a [Camera] and a fixed set of sprite
// pools. Every frame it rebuilds the visible part of the world from scratch:
//
//  1. Culling computes the tile range under the viewport plus a buffer.
//  2. Repopulating releases every pool entry and re-acquires entries for
//     ground tiles, cliff faces and trees in row-major order.
//  3. ShaderBinding snapshots the light direction and places actors.
//  4. DepthSorting orders the draw list by anchor Y, then depth key.
//  5. Draw submits the list to the screen.
//
// Pools never grow. When one is exhausted the remaining elements of that
// kind are skipped for the frame.
//
// # Autotiling
//
// [ResolveGroundVariant] picks a ground frame from the elevations of the up,
// right and left neighbors. [ResolveCliffFaces] returns the stack of face
// decals that fill the gap below a raised tile. Both are pure functions of
// the grid.
//
// # Shadows
//
// Trees and actors are drawn through a Kage shader that paints a translucent
// self-shadow into their transparent pixels. The light turns once every
// [ShadowPeriod] clock units. [ProjectShadow] is the same computation on the
// CPU.
//
// # Quick start
//
//	grid, err := cliffside.LoadGrid("world.json")
//	// ...
//	sheets, err := cliffside.LoadSheets(cliffside.AtlasPaths{...})
//	// ...
//	actors := cliffside.PlaceActors(grid, cliffside.DefaultTileSize,
//		cliffside.DefaultActorConfig(), rand.New(rand.NewPCG(1, 2)))
//	world := cliffside.NewWorld(grid, actors, sheets, cliffside.DefaultOptions())
//
//	func (g *Game) Update() error {
//		g.world.Update(cliffside.PollInput(), 1/float64(ebiten.TPS()))
//		return nil
//	}
//	func (g *Game) Draw(screen *ebiten.Image) { g.world.Draw(screen) }
//
// [Ebitengine]: https://ebitengine.org
package cliffside
