// Package mapedit is the core of an interactive 2D map editor built on
// [Ebitengine].
//
// A [Map] is a fixed-size canvas holding a stack of [Layer] values, each an
// ordered list of [PlacedTexture] instances of the [Texture] assets supplied
// by a [Project]. The [Editor] tracks the open maps, converts pointer input
// into placement, drag and pan gestures, zooms with the wheel, and asks a
// [Canvas] to redraw. [CanvasRenderer] is the GPU-backed Canvas; it drives
// any [GPUContext], and [EbitenContext] is the Ebitengine implementation.
//
// # Quick start
//
//	cfg := mapedit.DefaultConfig()
//	host := mapedit.NewHost(mapedit.Rect{Width: 800, Height: 600})
//	bg, _ := cfg.BackgroundColor()
//	canvas := mapedit.NewCanvasRenderer(host, host.GPU(), bg)
//	editor, err := mapedit.NewEditor(canvas, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	project := mapedit.NewStaticProject(loader, 1)
//	level := cfg.NewMap(project, "Level1", "maps/Level1.json")
//	level.Open(ctx, editor)
//
// Then, from the game loop:
//
//	func (g *Game) Update() error {
//		g.host.PollInput(g.editor)
//		g.editor.Update(1 / float32(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) { g.host.Draw(screen) }
//
// # Coordinates
//
// Scene space has its origin at the canvas center with Y pointing up. At
// zoom 1 and pixel ratio 1 one scene unit is one client pixel. A placed
// texture's position is its center before the map offset is applied; the
// offset pans the whole map.
//
// # Project loading
//
// Opening a map whose project is not loaded starts [Project.Load] on a
// background goroutine. The map is open immediately but only becomes active
// when [Editor.Update] (or [Editor.Wait]) applies the result on the
// editor's goroutine.
//
// # Persistence
//
// [Map.Sync] writes {"name", "size"} JSON to the map's path. Offsets, layers
// and placed textures are not persisted.
//
// [Ebitengine]: https://ebitengine.org
package mapedit
