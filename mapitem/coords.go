package mapitem

import (
	"fmt"
	"math"
)

// ConfigError reports an impossible coordinate configuration, such as a
// rectangle whose left edge lies right of its right edge or map bounds
// that leave the representable world range.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Rect is an axis-aligned box in world block coordinates, edges
// inclusive. Top is the smaller Z.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Dx returns the width in blocks.
func (r Rect) Dx() int {
	return int(r.Right) - int(r.Left) + 1
}

// Dy returns the height in blocks.
func (r Rect) Dy() int {
	return int(r.Bottom) - int(r.Top) + 1
}

// Intersects reports whether the two rectangles share any block.
func (r Rect) Intersects(o Rect) bool {
	return r.Left <= o.Right && r.Top <= o.Bottom && r.Right >= o.Left && r.Bottom >= o.Top
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Validate rejects rectangles with crossed edges.
func (r Rect) Validate() error {
	if r.Left > r.Right {
		return &ConfigError{Reason: fmt.Sprintf("left %d is right of right %d", r.Left, r.Right)}
	}
	if r.Top > r.Bottom {
		return &ConfigError{Reason: fmt.Sprintf("top %d is below bottom %d", r.Top, r.Bottom)}
	}
	return nil
}

// BlocksPerPixel returns how many world blocks one map pixel spans along
// each axis: 2^scale.
func (d *MapData) BlocksPerPixel() int {
	return 1 << d.Scale
}

// BlockSpan returns the width of the world area the map covers in
// blocks: 128·2^scale.
func (d *MapData) BlockSpan() int {
	return Width << d.Scale
}

// Bounds returns the world rectangle covered by the map's pixel grid.
// The arithmetic is done in 64 bits and checked against the 32-bit world
// coordinate range; a center close enough to the edge to overflow is a
// ConfigError rather than a silent wrap.
func (d *MapData) Bounds() (Rect, error) {
	span := int64(Width) << d.Scale
	left := int64(d.XCenter) - span/2
	top := int64(d.ZCenter) - span/2
	right := left + span - 1
	bottom := top + span - 1

	if left < math.MinInt32 || top < math.MinInt32 || right > math.MaxInt32 || bottom > math.MaxInt32 {
		return Rect{}, &ConfigError{
			Reason: fmt.Sprintf("map bounds overflow world coordinates: center (%d, %d) scale %d",
				d.XCenter, d.ZCenter, d.Scale),
		}
	}
	return Rect{
		Left:   int32(left),
		Top:    int32(top),
		Right:  int32(right),
		Bottom: int32(bottom),
	}, nil
}
