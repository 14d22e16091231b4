/*
Package stitch composites many decoded map items into one image in
shared world coordinates.

Maps of different zoom levels may be mixed: the canvas always uses one
pixel per world block, and a source pixel of a map at scale s is
replicated over its 2^s×2^s block square. Later items in the input
overwrite earlier ones where they overlap, so callers control layering
purely through slice order.
*/
package stitch

import (
	"image"

	"github.com/osaukko/minecraft-map-tool/mapitem"
	"github.com/osaukko/minecraft-map-tool/palette"
)

// Options select and clip the maps that take part in a stitch.
type Options struct {
	// Dimension keeps only maps answering to this name (see
	// mapitem.Dimension.Matches). Empty keeps every dimension.
	Dimension string

	// Zoom keeps only maps with this scale when in 0..4. Negative
	// keeps every zoom level.
	Zoom int

	// Rect, when set, is the world area to render instead of the
	// union of the selected maps' bounds. Maps entirely outside it
	// are dropped.
	Rect *mapitem.Rect
}

// AllZooms is a ready-made Options.Zoom value for no zoom filtering.
const AllZooms = -1

// Project is a planned stitch: the maps that survived filtering, in
// draw order, and the world rectangle the canvas will cover.
type Project struct {
	Items []*mapitem.MapItem
	Rect  mapitem.Rect
}

// Plan filters items against opts and determines the target rectangle.
// Items must already be in draw order (earliest first); Plan preserves
// their order. An empty result is not an error: Render then produces an
// empty canvas.
func Plan(items []*mapitem.MapItem, opts Options) (*Project, error) {
	if opts.Rect != nil {
		if err := opts.Rect.Validate(); err != nil {
			return nil, err
		}
	}

	project := &Project{}
	var have bool
	for _, item := range items {
		if !item.Data.Dimension.Matches(opts.Dimension) {
			continue
		}
		if opts.Zoom >= 0 && int(item.Data.Scale) != opts.Zoom {
			continue
		}
		bounds, err := item.Data.Bounds()
		if err != nil {
			return nil, err
		}
		if opts.Rect != nil {
			if !bounds.Intersects(*opts.Rect) {
				continue
			}
		} else if have {
			project.Rect = project.Rect.Union(bounds)
		} else {
			project.Rect = bounds
			have = true
		}
		project.Items = append(project.Items, item)
	}

	if opts.Rect != nil {
		project.Rect = *opts.Rect
	} else if !have {
		// Nothing matched and no explicit area: an empty rectangle
		// renders to an empty canvas.
		project.Rect = mapitem.Rect{Left: 0, Top: 0, Right: -1, Bottom: -1}
	}
	return project, nil
}

// Render composites the planned maps into a fresh canvas, one pixel per
// world block, fully transparent where no map has content. Unset source
// pixels (index 0) never overwrite content drawn by an earlier map.
func (p *Project) Render() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, p.Rect.Dx(), p.Rect.Dy()))

	for _, item := range p.Items {
		p.paint(canvas, item)
	}
	return canvas
}

func (p *Project) paint(canvas *image.RGBA, item *mapitem.MapItem) {
	// Bounds were validated during Plan.
	bounds, err := item.Data.Bounds()
	if err != nil {
		return
	}

	bpp := item.Data.BlocksPerPixel()
	width, height := p.Rect.Dx(), p.Rect.Dy()

	for py := 0; py < mapitem.Height; py++ {
		for px := 0; px < mapitem.Width; px++ {
			index := item.Data.Colors[py*mapitem.Width+px]
			if index == 0 {
				continue
			}
			c := palette.Resolve(index)

			// The pixel covers a bpp×bpp block square; every block is
			// one canvas pixel.
			baseX := int(bounds.Left) - int(p.Rect.Left) + px*bpp
			baseY := int(bounds.Top) - int(p.Rect.Top) + py*bpp
			for dy := 0; dy < bpp; dy++ {
				y := baseY + dy
				if y < 0 || y >= height {
					continue
				}
				for dx := 0; dx < bpp; dx++ {
					x := baseX + dx
					if x < 0 || x >= width {
						continue
					}
					canvas.SetRGBA(x, y, c)
				}
			}
		}
	}
}

// Stitch is Plan followed by Render.
func Stitch(items []*mapitem.MapItem, opts Options) (*image.RGBA, error) {
	project, err := Plan(items, opts)
	if err != nil {
		return nil, err
	}
	return project.Render(), nil
}
