package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/muesli/termenv"
)

// Terminal draws m into the terminal using half-block characters, two
// image rows per text line. Transparent pixels show the terminal
// background. Colors are degraded automatically to whatever profile the
// output supports.
func Terminal(w io.Writer, m image.Image) error {
	output := termenv.NewOutput(w)
	bounds := m.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top, topSet := hexColor(m.At(x, y))
			bottom, bottomSet := "", false
			if y+1 < bounds.Max.Y {
				bottom, bottomSet = hexColor(m.At(x, y+1))
			}

			var cell string
			switch {
			case topSet && bottomSet:
				cell = output.String("▀").
					Foreground(output.Color(top)).
					Background(output.Color(bottom)).
					String()
			case topSet:
				cell = output.String("▀").Foreground(output.Color(top)).String()
			case bottomSet:
				cell = output.String("▄").Foreground(output.Color(bottom)).String()
			default:
				cell = " "
			}
			if _, err := io.WriteString(w, cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// hexColor flattens a pixel to "#rrggbb", reporting false for
// transparent pixels.
func hexColor(c color.Color) (string, bool) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	if rgba.A == 0 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B), true
}
