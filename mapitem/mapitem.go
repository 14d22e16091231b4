/*
Package mapitem decodes Minecraft map item save files (map_#.dat) into
typed records and models the world area each map covers.

A map item stores a 128×128 grid of palette indices together with its
zoom scale, dimension and center block coordinates. The package performs
all schema interpretation of the generic tag tree in one place; callers
get either a fully populated MapItem or an error naming the offending
field.
*/
package mapitem

import (
	"encoding/json"
	"fmt"

	"github.com/osaukko/minecraft-map-tool/nbt"
)

const (
	// Width and Height of a map's pixel grid. The game never writes
	// any other size.
	Width  = 128
	Height = 128

	// ColorsLen is the required length of the colors byte array.
	ColorsLen = Width * Height

	// MaxScale is the largest zoom step a map can have.
	MaxScale = 4
)

// SchemaError reports a tag tree that parses but does not match the map
// item schema.
type SchemaError struct {
	Path     string
	Expected string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("map schema: %s: expected %s", e.Path, e.Expected)
}

// Pos is a block position in the world.
type Pos struct {
	X, Y, Z int32
}

// Banner is a banner marker recorded on a map.
type Banner struct {
	// Name is the raw JSON text component, empty for unnamed banners.
	Name  string
	Color string
	Pos   Pos
}

// DisplayName extracts the plain text from the banner's JSON name.
// Unnamed banners yield "[nameless]"; unparseable JSON is passed through
// as-is so the information is not lost.
func (b Banner) DisplayName() string {
	if b.Name == "" {
		return "[nameless]"
	}
	var name struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(b.Name), &name); err != nil {
		return b.Name
	}
	return name.Text
}

// Frame is an item frame marker recorded on a map.
type Frame struct {
	EntityID int32
	Rotation int32
	Pos      Pos
}

// MapData is the payload of a map item.
type MapData struct {
	Scale             int8
	Dimension         Dimension
	TrackingPosition  bool
	UnlimitedTracking bool
	Locked            bool
	XCenter           int32
	ZCenter           int32
	Colors            []byte
	Banners           []Banner
	Frames            []Frame
}

// ScaleDescription returns the zoom as a ratio, "1:1" through "1:16".
func (d *MapData) ScaleDescription() string {
	return fmt.Sprintf("1:%d", 1<<d.Scale)
}

// MapItem is one decoded map_#.dat file.
type MapItem struct {
	// File is the source path; empty when the item was not read from
	// disk.
	File string

	// DataVersion records the game version that wrote the map.
	DataVersion int32

	Data MapData
}

// FromTree interprets a decoded tag tree as a map item. The tree shape
// is validated here and nowhere else; a mismatch is reported as a
// SchemaError naming the bad path.
func FromTree(root nbt.Compound) (*MapItem, error) {
	version, err := intAt(root, "DataVersion")
	if err != nil {
		return nil, err
	}

	data, ok := root["data"].(nbt.Compound)
	if !ok {
		return nil, &SchemaError{Path: "data", Expected: "Compound"}
	}

	scale, err := byteAt(data, "data", "scale")
	if err != nil {
		return nil, err
	}
	if scale < 0 || scale > MaxScale {
		return nil, &SchemaError{Path: "data.scale", Expected: "value in 0..4"}
	}

	dimension, err := dimensionAt(data, "data", "dimension")
	if err != nil {
		return nil, err
	}

	xCenter, err := intAt(data, "data", "xCenter")
	if err != nil {
		return nil, err
	}
	zCenter, err := intAt(data, "data", "zCenter")
	if err != nil {
		return nil, err
	}

	colors, ok := data["colors"].(nbt.ByteArray)
	if !ok {
		return nil, &SchemaError{Path: "data.colors", Expected: "ByteArray"}
	}
	if len(colors) != ColorsLen {
		return nil, &SchemaError{
			Path:     "data.colors",
			Expected: fmt.Sprintf("%d bytes, have %d", ColorsLen, len(colors)),
		}
	}

	trackingPosition, err := boolAt(data, "data", "trackingPosition")
	if err != nil {
		return nil, err
	}
	unlimitedTracking, err := boolAt(data, "data", "unlimitedTracking")
	if err != nil {
		return nil, err
	}
	locked, err := boolAt(data, "data", "locked")
	if err != nil {
		return nil, err
	}

	banners, err := bannersAt(data)
	if err != nil {
		return nil, err
	}
	frames, err := framesAt(data)
	if err != nil {
		return nil, err
	}

	return &MapItem{
		DataVersion: version,
		Data: MapData{
			Scale:             scale,
			Dimension:         dimension,
			TrackingPosition:  trackingPosition,
			UnlimitedTracking: unlimitedTracking,
			Locked:            locked,
			XCenter:           xCenter,
			ZCenter:           zCenter,
			Colors:            []byte(colors),
			Banners:           banners,
			Frames:            frames,
		},
	}, nil
}

func path(parts ...string) string {
	p := parts[0]
	for _, part := range parts[1:] {
		p += "." + part
	}
	return p
}

func byteAt(c nbt.Compound, parts ...string) (int8, error) {
	v, ok := c[parts[len(parts)-1]].(nbt.Byte)
	if !ok {
		return 0, &SchemaError{Path: path(parts...), Expected: "Byte"}
	}
	return int8(v), nil
}

func intAt(c nbt.Compound, parts ...string) (int32, error) {
	v, ok := c[parts[len(parts)-1]].(nbt.Int)
	if !ok {
		return 0, &SchemaError{Path: path(parts...), Expected: "Int"}
	}
	return int32(v), nil
}

// Tracking flags default to false when absent; old maps predate them.
// A flag that is present but not a Byte is still a schema mismatch.
func boolAt(c nbt.Compound, parts ...string) (bool, error) {
	tag, ok := c[parts[len(parts)-1]]
	if !ok {
		return false, nil
	}
	v, ok := tag.(nbt.Byte)
	if !ok {
		return false, &SchemaError{Path: path(parts...), Expected: "Byte"}
	}
	return v != 0, nil
}

func dimensionAt(c nbt.Compound, parts ...string) (Dimension, error) {
	switch v := c[parts[len(parts)-1]].(type) {
	case nbt.String:
		return Dimension(v), nil
	case nbt.Byte:
		return LegacyDimension(int32(v)), nil
	case nbt.Int:
		return LegacyDimension(int32(v)), nil
	}
	return "", &SchemaError{Path: path(parts...), Expected: "String, Byte or Int"}
}

func posAt(c nbt.Compound, where string) (Pos, error) {
	pos, ok := c["Pos"].(nbt.Compound)
	if !ok {
		return Pos{}, &SchemaError{Path: where + ".Pos", Expected: "Compound"}
	}
	x, err := intAt(pos, where, "Pos", "X")
	if err != nil {
		return Pos{}, err
	}
	y, err := intAt(pos, where, "Pos", "Y")
	if err != nil {
		return Pos{}, err
	}
	z, err := intAt(pos, where, "Pos", "Z")
	if err != nil {
		return Pos{}, err
	}
	return Pos{X: x, Y: y, Z: z}, nil
}

func bannersAt(data nbt.Compound) ([]Banner, error) {
	list, ok := data["banners"].(nbt.List)
	if !ok {
		// Optional; absence means no markers.
		return []Banner{}, nil
	}
	banners := make([]Banner, 0, len(list.Items))
	for i, item := range list.Items {
		where := fmt.Sprintf("data.banners[%d]", i)
		c, ok := item.(nbt.Compound)
		if !ok {
			return nil, &SchemaError{Path: where, Expected: "Compound"}
		}
		color, ok := c["Color"].(nbt.String)
		if !ok {
			return nil, &SchemaError{Path: where + ".Color", Expected: "String"}
		}
		pos, err := posAt(c, where)
		if err != nil {
			return nil, err
		}
		name, _ := c["Name"].(nbt.String)
		banners = append(banners, Banner{
			Name:  string(name),
			Color: string(color),
			Pos:   pos,
		})
	}
	return banners, nil
}

func framesAt(data nbt.Compound) ([]Frame, error) {
	list, ok := data["frames"].(nbt.List)
	if !ok {
		return []Frame{}, nil
	}
	frames := make([]Frame, 0, len(list.Items))
	for i, item := range list.Items {
		where := fmt.Sprintf("data.frames[%d]", i)
		c, ok := item.(nbt.Compound)
		if !ok {
			return nil, &SchemaError{Path: where, Expected: "Compound"}
		}
		entityID, err := intAt(c, where, "EntityId")
		if err != nil {
			return nil, err
		}
		rotation, err := intAt(c, where, "Rotation")
		if err != nil {
			return nil, err
		}
		pos, err := posAt(c, where)
		if err != nil {
			return nil, err
		}
		frames = append(frames, Frame{
			EntityID: entityID,
			Rotation: rotation,
			Pos:      pos,
		})
	}
	return frames, nil
}
