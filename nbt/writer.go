package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
)

type encoder struct {
	w   io.Writer
	tmp [8]byte
}

func (e *encoder) writeByte(b byte) error {
	e.tmp[0] = b
	_, err := e.w.Write(e.tmp[:1])
	return err
}

func (e *encoder) writeInt16(v int16) error {
	binary.BigEndian.PutUint16(e.tmp[:2], uint16(v))
	_, err := e.w.Write(e.tmp[:2])
	return err
}

func (e *encoder) writeInt32(v int32) error {
	binary.BigEndian.PutUint32(e.tmp[:4], uint32(v))
	_, err := e.w.Write(e.tmp[:4])
	return err
}

func (e *encoder) writeInt64(v int64) error {
	binary.BigEndian.PutUint64(e.tmp[:8], uint64(v))
	_, err := e.w.Write(e.tmp[:8])
	return err
}

func (e *encoder) writeString(s string) error {
	if len(s) > math.MaxInt16 {
		return fmt.Errorf("nbt: string longer than %d bytes", math.MaxInt16)
	}
	if err := e.writeInt16(int16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) writePayload(tag Tag) error {
	switch t := tag.(type) {
	case Byte:
		return e.writeByte(byte(t))
	case Short:
		return e.writeInt16(int16(t))
	case Int:
		return e.writeInt32(int32(t))
	case Long:
		return e.writeInt64(int64(t))
	case Float:
		return e.writeInt32(int32(math.Float32bits(float32(t))))
	case Double:
		return e.writeInt64(int64(math.Float64bits(float64(t))))
	case ByteArray:
		if err := e.writeInt32(int32(len(t))); err != nil {
			return err
		}
		_, err := e.w.Write(t)
		return err
	case String:
		return e.writeString(string(t))
	case List:
		if err := e.writeByte(byte(t.Elem)); err != nil {
			return err
		}
		if err := e.writeInt32(int32(len(t.Items))); err != nil {
			return err
		}
		for _, item := range t.Items {
			if item.ID() != t.Elem {
				return fmt.Errorf("nbt: %s element in list of %s", item.ID(), t.Elem)
			}
			if err := e.writePayload(item); err != nil {
				return err
			}
		}
		return nil
	case Compound:
		return e.writeCompound(t)
	case IntArray:
		if err := e.writeInt32(int32(len(t))); err != nil {
			return err
		}
		for _, v := range t {
			if err := e.writeInt32(v); err != nil {
				return err
			}
		}
		return nil
	case LongArray:
		if err := e.writeInt32(int32(len(t))); err != nil {
			return err
		}
		for _, v := range t {
			if err := e.writeInt64(v); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("nbt: cannot encode %T", tag)
}

func (e *encoder) writeCompound(c Compound) error {
	// Sorted names keep the output stable across runs.
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tag := c[name]
		if err := e.writeByte(byte(tag.ID())); err != nil {
			return err
		}
		if err := e.writeString(name); err != nil {
			return err
		}
		if err := e.writePayload(tag); err != nil {
			return err
		}
	}
	return e.writeByte(byte(TagEnd))
}

// Encode writes root to w as an uncompressed tag stream with an empty
// root name. Compound children are emitted in sorted name order so the
// same tree always encodes to the same bytes.
func Encode(w io.Writer, root Compound) error {
	e := &encoder{w: w}
	if err := e.writeByte(byte(TagCompound)); err != nil {
		return err
	}
	if err := e.writeString(""); err != nil {
		return err
	}
	return e.writeCompound(root)
}
