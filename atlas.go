package mapedit

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// atlasFrame is one named sub-rectangle of an atlas page.
type atlasFrame struct {
	name          string
	page          int
	x, y          int
	width, height int
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseAtlasFrames parses TexturePacker JSON in either the single-page hash
// format ("frames") or the multi-page array format ("textures"). Frames are
// returned sorted by name so the palette order is stable.
func parseAtlasFrames(jsonData []byte) ([]atlasFrame, error) {
	var shape struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &shape); err != nil {
		return nil, fmt.Errorf("mapedit: failed to parse atlas JSON: %w", err)
	}

	var pages []jsonTexturePage
	switch {
	case shape.Textures != nil:
		if err := json.Unmarshal(shape.Textures, &pages); err != nil {
			return nil, fmt.Errorf("mapedit: failed to parse atlas textures array: %w", err)
		}
	case shape.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(shape.Frames, &frames); err != nil {
			return nil, fmt.Errorf("mapedit: failed to parse atlas frames: %w", err)
		}
		pages = []jsonTexturePage{{Frames: frames}}
	default:
		return nil, fmt.Errorf("mapedit: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	var out []atlasFrame
	for i, page := range pages {
		for name, f := range page.Frames {
			if f.Rotated {
				// Placed textures are never rotated, so a rotated region
				// cannot be sampled as-is.
				return nil, fmt.Errorf("mapedit: atlas frame %q is rotated", name)
			}
			if f.Frame.W <= 0 || f.Frame.H <= 0 {
				return nil, fmt.Errorf("mapedit: atlas frame %q has empty size", name)
			}
			out = append(out, atlasFrame{
				name: name, page: i,
				x: f.Frame.X, y: f.Frame.Y,
				width: f.Frame.W, height: f.Frame.H,
			})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].name < out[b].name })
	return out, nil
}

// LoadAtlasTextures turns a TexturePacker atlas into palette textures, one
// per frame, each backed by a sub-image of its page.
func LoadAtlasTextures(jsonData []byte, pages []*ebiten.Image) ([]*Texture, error) {
	frames, err := parseAtlasFrames(jsonData)
	if err != nil {
		return nil, err
	}
	textures := make([]*Texture, 0, len(frames))
	for _, f := range frames {
		if f.page >= len(pages) || pages[f.page] == nil {
			return nil, fmt.Errorf("mapedit: atlas frame %q references missing page %d", f.name, f.page)
		}
		rect := image.Rect(f.x, f.y, f.x+f.width, f.y+f.height)
		textures = append(textures, &Texture{
			Name:   f.name,
			Canvas: TextureCanvas{Width: f.width, Height: f.height},
			Image:  pages[f.page].SubImage(rect).(*ebiten.Image),
		})
	}
	return textures, nil
}

// AtlasLoader returns a LoadFunc for NewStaticProject that reads its palette
// from an atlas.
func AtlasLoader(jsonData []byte, pages []*ebiten.Image) LoadFunc {
	return func(ctx context.Context) ([]*Texture, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return LoadAtlasTextures(jsonData, pages)
	}
}
