package mapitem

import (
	"strconv"
	"strings"
)

// Dimension is the world space a map belongs to, stored as the game's
// resource location ("minecraft:overworld"). Identifiers this tool does
// not know are preserved verbatim so maps from newer game versions still
// list and stitch.
type Dimension string

const (
	Overworld Dimension = "minecraft:overworld"
	Nether    Dimension = "minecraft:the_nether"
	End       Dimension = "minecraft:the_end"
)

// LegacyDimension resolves the numeric dimension id used before game
// version 1.16. Values other than the three known ids are preserved as
// their decimal string.
func LegacyDimension(id int32) Dimension {
	switch id {
	case 0:
		return Overworld
	case -1:
		return Nether
	case 1:
		return End
	}
	return Dimension(strconv.FormatInt(int64(id), 10))
}

// Pretty returns a display form: the part after the namespace with its
// first letter upper-cased, so "minecraft:the_nether" becomes
// "The_nether" and unknown plain values pass through unchanged.
func (d Dimension) Pretty() string {
	s := string(d)
	i := strings.IndexByte(s, ':')
	if i < 0 || i+1 == len(s) {
		return s
	}
	return strings.ToUpper(s[i+1:i+2]) + s[i+2:]
}

// Matches reports whether the dimension answers to name, which may be a
// full resource location, the bare path, or the pretty form, compared
// case-insensitively.
func (d Dimension) Matches(name string) bool {
	if name == "" {
		return true
	}
	s := string(d)
	if strings.EqualFold(s, name) {
		return true
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return strings.EqualFold(s[i+1:], name)
	}
	return false
}
