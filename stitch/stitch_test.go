package stitch

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaukko/minecraft-map-tool/mapitem"
	"github.com/osaukko/minecraft-map-tool/palette"
)

// solidMap builds a map filled with one palette index.
func solidMap(dimension mapitem.Dimension, scale int8, x, z int32, index byte) *mapitem.MapItem {
	colors := make([]byte, mapitem.ColorsLen)
	for i := range colors {
		colors[i] = index
	}
	return &mapitem.MapItem{
		Data: mapitem.MapData{
			Scale:     scale,
			Dimension: dimension,
			XCenter:   x,
			ZCenter:   z,
			Colors:    colors,
		},
	}
}

func TestPlanUnionBounds(t *testing.T) {
	items := []*mapitem.MapItem{
		solidMap(mapitem.Overworld, 0, 0, 0, 4),
		solidMap(mapitem.Overworld, 0, 128, 0, 8),
	}

	project, err := Plan(items, Options{Zoom: AllZooms})
	require.NoError(t, err)
	assert.Len(t, project.Items, 2)
	assert.Equal(t, mapitem.Rect{Left: -64, Top: -64, Right: 191, Bottom: 63}, project.Rect)
}

func TestPlanFilters(t *testing.T) {
	items := []*mapitem.MapItem{
		solidMap(mapitem.Overworld, 0, 0, 0, 4),
		solidMap(mapitem.Nether, 0, 0, 0, 4),
		solidMap(mapitem.Overworld, 2, 0, 0, 4),
	}

	project, err := Plan(items, Options{Dimension: "overworld", Zoom: 0})
	require.NoError(t, err)
	require.Len(t, project.Items, 1)
	assert.Equal(t, items[0], project.Items[0])

	project, err = Plan(items, Options{Dimension: "overworld", Zoom: AllZooms})
	require.NoError(t, err)
	assert.Len(t, project.Items, 2)
}

func TestPlanExplicitRect(t *testing.T) {
	items := []*mapitem.MapItem{
		solidMap(mapitem.Overworld, 0, 0, 0, 4),
		solidMap(mapitem.Overworld, 0, 10240, 10240, 4),
	}
	rect := mapitem.Rect{Left: -64, Top: -64, Right: 63, Bottom: 63}

	project, err := Plan(items, Options{Zoom: AllZooms, Rect: &rect})
	require.NoError(t, err)
	require.Len(t, project.Items, 1, "far away map must be excluded")
	assert.Equal(t, rect, project.Rect)
}

func TestPlanRejectsCrossedRect(t *testing.T) {
	rect := mapitem.Rect{Left: 10, Top: 0, Right: -10, Bottom: 0}
	_, err := Plan(nil, Options{Zoom: AllZooms, Rect: &rect})

	var config *mapitem.ConfigError
	require.ErrorAs(t, err, &config)
}

func TestStitchEmptyInput(t *testing.T) {
	canvas, err := Stitch(nil, Options{Zoom: AllZooms})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 0, 0), canvas.Bounds())
}

func TestStitchIdempotent(t *testing.T) {
	items := []*mapitem.MapItem{
		solidMap(mapitem.Overworld, 0, 0, 0, 4),
		solidMap(mapitem.Overworld, 1, 64, 64, 8),
	}

	first, err := Stitch(items, Options{Zoom: AllZooms})
	require.NoError(t, err)
	second, err := Stitch(items, Options{Zoom: AllZooms})
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first.Pix, second.Pix))
}

func TestStitchDisjointOrderIndependent(t *testing.T) {
	a := solidMap(mapitem.Overworld, 0, 0, 0, 4)
	b := solidMap(mapitem.Overworld, 0, 1024, 0, 8)
	rect := mapitem.Rect{Left: -64, Top: -64, Right: 1087, Bottom: 63}
	opts := Options{Zoom: AllZooms, Rect: &rect}

	ab, err := Stitch([]*mapitem.MapItem{a, b}, opts)
	require.NoError(t, err)
	ba, err := Stitch([]*mapitem.MapItem{b, a}, opts)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(ab.Pix, ba.Pix))
}

func TestStitchLaterWins(t *testing.T) {
	a := solidMap(mapitem.Overworld, 0, 0, 0, 4)
	b := solidMap(mapitem.Overworld, 0, 0, 0, 8)

	canvas, err := Stitch([]*mapitem.MapItem{a, b}, Options{Zoom: AllZooms})
	require.NoError(t, err)

	want := palette.Resolve(8)
	assert.Equal(t, 128, canvas.Bounds().Dx())
	for _, p := range []image.Point{{0, 0}, {64, 64}, {127, 127}} {
		assert.Equal(t, want, canvas.RGBAAt(p.X, p.Y), "pixel %v", p)
	}
}

func TestStitchPartialOverlap(t *testing.T) {
	a := solidMap(mapitem.Overworld, 0, 0, 0, 4)    // covers -64..63
	b := solidMap(mapitem.Overworld, 0, 128, 0, 8)  // covers 64..191

	canvas, err := Stitch([]*mapitem.MapItem{a, b}, Options{Zoom: AllZooms})
	require.NoError(t, err)

	// Canvas spans world x -64..191; a's region is untouched by b.
	assert.Equal(t, palette.Resolve(4), canvas.RGBAAt(0, 0))
	assert.Equal(t, palette.Resolve(8), canvas.RGBAAt(200, 0))
}

func TestStitchTransparencyPreserved(t *testing.T) {
	base := solidMap(mapitem.Overworld, 0, 0, 0, 4)
	hole := solidMap(mapitem.Overworld, 0, 0, 0, 8)
	hole.Data.Colors[0] = 0 // world block (-64, -64)

	canvas, err := Stitch([]*mapitem.MapItem{base, hole}, Options{Zoom: AllZooms})
	require.NoError(t, err)

	assert.Equal(t, palette.Resolve(4), canvas.RGBAAt(0, 0),
		"unset pixel must not erase the map below")
	assert.Equal(t, palette.Resolve(8), canvas.RGBAAt(1, 0))
}

func TestStitchZoomReplication(t *testing.T) {
	item := solidMap(mapitem.Overworld, 1, 0, 0, 4)
	item.Data.Colors[0] = 8 // top-left source pixel

	canvas, err := Stitch([]*mapitem.MapItem{item}, Options{Zoom: AllZooms})
	require.NoError(t, err)
	require.Equal(t, 256, canvas.Bounds().Dx())

	// One scale-1 pixel covers a 2×2 block square.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, palette.Resolve(8), canvas.RGBAAt(x, y))
		}
	}
	assert.Equal(t, palette.Resolve(4), canvas.RGBAAt(2, 0))
	assert.Equal(t, palette.Resolve(4), canvas.RGBAAt(0, 2))
}

func TestStitchClipsToExplicitRect(t *testing.T) {
	item := solidMap(mapitem.Overworld, 0, 0, 0, 4) // covers -64..63
	rect := mapitem.Rect{Left: 0, Top: 0, Right: 9, Bottom: 9}

	canvas, err := Stitch([]*mapitem.MapItem{item}, Options{Zoom: AllZooms, Rect: &rect})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), canvas.Bounds())
	assert.Equal(t, palette.Resolve(4), canvas.RGBAAt(9, 9))
}
