package render

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaukko/minecraft-map-tool/mapitem"
	"github.com/osaukko/minecraft-map-tool/palette"
)

func testItem() *mapitem.MapItem {
	colors := make([]byte, mapitem.ColorsLen)
	colors[0] = 34            // top-left
	colors[mapitem.Width+1] = 8 // (1, 1)
	return &mapitem.MapItem{Data: mapitem.MapData{Colors: colors, Dimension: mapitem.Overworld}}
}

func TestImage(t *testing.T) {
	img := Image(testItem())

	assert.Equal(t, mapitem.Width, img.Bounds().Dx())
	assert.Equal(t, mapitem.Height, img.Bounds().Dy())
	assert.Equal(t, palette.Resolve(34), img.RGBAAt(0, 0))
	assert.Equal(t, palette.Resolve(8), img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2), "unset pixels stay transparent")
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, Image(testItem())))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, mapitem.Width, decoded.Bounds().Dx())
}

func TestEncodeGIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGIF(&buf, Image(testItem())))

	decoded, err := gif.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, mapitem.Width, decoded.Bounds().Dx())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := Image(testItem())

	require.NoError(t, WriteFile(filepath.Join(dir, "map.png"), img))
	require.NoError(t, WriteFile(filepath.Join(dir, "map.gif"), img))
	assert.Error(t, WriteFile(filepath.Join(dir, "map.bmp"), img))
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Terminal(&buf, Image(testItem())))

	out := buf.String()
	assert.Equal(t, mapitem.Height/2, strings.Count(out, "\n"))
	assert.Contains(t, out, "▀")
	assert.Contains(t, out, "▄")
}
