/*
Package render turns decoded map items into images and pushes finished
pixel buffers out to files or the terminal.
*/
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/osaukko/minecraft-map-tool/mapitem"
	"github.com/osaukko/minecraft-map-tool/palette"
)

// Image renders one map's 128×128 pixel grid, index 0 transparent.
func Image(item *mapitem.MapItem) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, mapitem.Width, mapitem.Height))
	for y := 0; y < mapitem.Height; y++ {
		for x := 0; x < mapitem.Width; x++ {
			index := item.Data.Colors[y*mapitem.Width+x]
			if index == 0 {
				continue
			}
			img.SetRGBA(x, y, palette.Resolve(index))
		}
	}
	return img
}

// EncodePNG writes m to w in PNG format.
func EncodePNG(w io.Writer, m image.Image) error {
	return png.Encode(w, m)
}

// EncodeGIF writes m to w in GIF format, reducing it to a 256-color
// palette first.
func EncodeGIF(w io.Writer, m image.Image) error {
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	pm := image.NewPaletted(m.Bounds(), q.Quantize(make(color.Palette, 0, 256), m))
	draw.Draw(pm, pm.Bounds(), m, m.Bounds().Min, draw.Src)
	return gif.Encode(w, pm, nil)
}

// WriteFile writes m to file, choosing the format from the extension.
// ".png" and ".gif" are supported; anything else is an error so a typo
// does not silently produce a mislabeled PNG.
func WriteFile(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		err = EncodePNG(f, m)
	case ".gif":
		err = EncodeGIF(f, m)
	default:
		err = fmt.Errorf("unsupported image format %q", filepath.Ext(file))
	}
	if err != nil {
		return err
	}
	return f.Close()
}
