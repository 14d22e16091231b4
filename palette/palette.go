/*
Package palette resolves map color indices to RGBA colors.

Each pixel of a map item stores a single byte. The upper six bits pick a
base color from the game's fixed table and the lower two bits pick one of
four shading multipliers. Index 0 is always fully transparent.
*/
package palette

import "image/color"

// Shading multipliers for the four variants of each base color, applied
// to every RGB channel as n/255.
var multipliers = [4]uint32{180, 220, 255, 135}

// Sentinel is returned for indices whose base color is not in the table.
// It usually means the map was written by a newer game version with an
// extended palette; a visibly wrong color beats aborting the render.
var Sentinel = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// Base colors as of snapshot 21w10a (data version 2699), from the map
// item format documentation. Id 0 is the unset/transparent marker and
// deliberately absent.
var baseColors = map[byte][3]uint8{
	1:  {127, 178, 56},
	2:  {247, 233, 163},
	3:  {199, 199, 199},
	4:  {255, 0, 0},
	5:  {160, 160, 255},
	6:  {167, 167, 167},
	7:  {0, 124, 0},
	8:  {255, 255, 255},
	9:  {164, 168, 184},
	10: {151, 109, 77},
	11: {112, 112, 112},
	12: {64, 64, 255},
	13: {143, 119, 72},
	14: {255, 252, 245},
	15: {216, 127, 51},
	16: {178, 76, 216},
	17: {102, 153, 216},
	18: {229, 229, 51},
	19: {127, 204, 25},
	20: {242, 127, 165},
	21: {76, 76, 76},
	22: {153, 153, 153},
	23: {76, 127, 153},
	24: {127, 63, 178},
	25: {51, 76, 178},
	26: {102, 76, 51},
	27: {102, 127, 51},
	28: {153, 51, 51},
	29: {25, 25, 25},
	30: {250, 238, 77},
	31: {92, 219, 213},
	32: {74, 128, 255},
	33: {0, 217, 58},
	34: {129, 86, 49},
	35: {112, 2, 0},
	36: {209, 177, 161},
	37: {159, 82, 36},
	38: {149, 87, 108},
	39: {112, 108, 138},
	40: {186, 133, 36},
	41: {103, 117, 53},
	42: {160, 77, 78},
	43: {57, 41, 35},
	44: {135, 107, 98},
	45: {87, 92, 92},
	46: {122, 73, 88},
	47: {76, 62, 92},
	48: {76, 50, 35},
	49: {76, 82, 42},
	50: {142, 60, 46},
	51: {37, 22, 16},
	52: {189, 48, 49},
	53: {148, 63, 97},
	54: {92, 25, 29},
	55: {22, 126, 134},
	56: {58, 142, 140},
	57: {86, 44, 62},
	58: {20, 180, 133},
	59: {100, 100, 100},
	60: {216, 175, 147},
	61: {127, 167, 150},
}

var table = generate()

func generate() (t [256]color.RGBA) {
	for i := 1; i < 256; i++ {
		base, ok := baseColors[byte(i>>2)]
		if !ok {
			t[i] = Sentinel
			continue
		}
		m := multipliers[i&0b11]
		t[i] = color.RGBA{
			R: shade(base[0], m),
			G: shade(base[1], m),
			B: shade(base[2], m),
			A: 0xff,
		}
	}
	return t
}

// shade scales one channel by m/255, rounding to nearest.
func shade(c uint8, m uint32) uint8 {
	return uint8((uint32(c)*m + 127) / 255)
}

// Resolve maps a stored color index to its RGBA color. It is total:
// index 0 is transparent, indices with an unknown base color resolve to
// Sentinel, everything else to its shaded base color.
func Resolve(index byte) color.RGBA {
	return table[index]
}

// Colors returns the full 256-entry palette as a color.Palette, index
// aligned with the stored color bytes.
func Colors() color.Palette {
	p := make(color.Palette, len(table))
	for i, c := range table {
		p[i] = c
	}
	return p
}
