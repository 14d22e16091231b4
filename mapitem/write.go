package mapitem

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/osaukko/minecraft-map-tool/nbt"
)

// Tree builds the tag tree the game would save for this item. It is the
// inverse of FromTree and exists for the test-map generator.
func (m *MapItem) Tree() nbt.Compound {
	banners := nbt.List{Elem: nbt.TagEnd}
	if len(m.Data.Banners) > 0 {
		banners.Elem = nbt.TagCompound
		for _, b := range m.Data.Banners {
			c := nbt.Compound{
				"Color": nbt.String(b.Color),
				"Pos": nbt.Compound{
					"X": nbt.Int(b.Pos.X),
					"Y": nbt.Int(b.Pos.Y),
					"Z": nbt.Int(b.Pos.Z),
				},
			}
			if b.Name != "" {
				c["Name"] = nbt.String(b.Name)
			}
			banners.Items = append(banners.Items, c)
		}
	}

	frames := nbt.List{Elem: nbt.TagEnd}
	if len(m.Data.Frames) > 0 {
		frames.Elem = nbt.TagCompound
		for _, f := range m.Data.Frames {
			frames.Items = append(frames.Items, nbt.Compound{
				"EntityId": nbt.Int(f.EntityID),
				"Rotation": nbt.Int(f.Rotation),
				"Pos": nbt.Compound{
					"X": nbt.Int(f.Pos.X),
					"Y": nbt.Int(f.Pos.Y),
					"Z": nbt.Int(f.Pos.Z),
				},
			})
		}
	}

	return nbt.Compound{
		"DataVersion": nbt.Int(m.DataVersion),
		"data": nbt.Compound{
			"scale":             nbt.Byte(m.Data.Scale),
			"dimension":         nbt.String(m.Data.Dimension),
			"trackingPosition":  boolByte(m.Data.TrackingPosition),
			"unlimitedTracking": boolByte(m.Data.UnlimitedTracking),
			"locked":            boolByte(m.Data.Locked),
			"xCenter":           nbt.Int(m.Data.XCenter),
			"zCenter":           nbt.Int(m.Data.ZCenter),
			"colors":            nbt.ByteArray(m.Data.Colors),
			"banners":           banners,
			"frames":            frames,
		},
	}
}

// Encode writes the item as an uncompressed tag stream.
func (m *MapItem) Encode(w io.Writer) error {
	return nbt.Encode(w, m.Tree())
}

// WriteFile writes the item as a gzip-compressed map_#.dat file.
func (m *MapItem) WriteFile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := m.Encode(gz); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return f.Close()
}

func boolByte(b bool) nbt.Byte {
	if b {
		return 1
	}
	return 0
}
