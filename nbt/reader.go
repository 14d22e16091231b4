package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Keeps a hostile length prefix from allocating gigabytes up front; the
// slice still grows to the real count if the stream delivers it.
const maxPrealloc = 1 << 16

type decoder struct {
	r      io.Reader
	offset int64
	tmp    [8]byte
}

func (d *decoder) fail(err error) error {
	var m *MalformedTagError
	if errors.As(err, &m) {
		return err
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &MalformedTagError{Offset: d.offset, Err: err}
}

func (d *decoder) readFull(b []byte) error {
	n, err := io.ReadFull(d.r, b)
	d.offset += int64(n)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (d *decoder) readID() (TagID, error) {
	if err := d.readFull(d.tmp[:1]); err != nil {
		return TagEnd, err
	}
	return TagID(d.tmp[0]), nil
}

func (d *decoder) readInt16() (int16, error) {
	if err := d.readFull(d.tmp[:2]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(d.tmp[:2])), nil
}

func (d *decoder) readInt32() (int32, error) {
	if err := d.readFull(d.tmp[:4]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(d.tmp[:4])), nil
}

func (d *decoder) readInt64() (int64, error) {
	if err := d.readFull(d.tmp[:8]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(d.tmp[:8])), nil
}

func (d *decoder) readString() (string, error) {
	length, err := d.readInt16()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", fmt.Errorf("negative string length %d", length)
	}
	b := make([]byte, length)
	if err := d.readFull(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) readCount() (int, error) {
	count, err := d.readInt32()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, fmt.Errorf("negative element count %d", count)
	}
	return int(count), nil
}

func (d *decoder) readPayload(id TagID) (Tag, error) {
	switch id {
	case TagByte:
		if err := d.readFull(d.tmp[:1]); err != nil {
			return nil, err
		}
		return Byte(d.tmp[0]), nil
	case TagShort:
		v, err := d.readInt16()
		if err != nil {
			return nil, err
		}
		return Short(v), nil
	case TagInt:
		v, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case TagLong:
		v, err := d.readInt64()
		if err != nil {
			return nil, err
		}
		return Long(v), nil
	case TagFloat:
		v, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return Float(math32(v)), nil
	case TagDouble:
		v, err := d.readInt64()
		if err != nil {
			return nil, err
		}
		return Double(math64(v)), nil
	case TagByteArray:
		count, err := d.readCount()
		if err != nil {
			return nil, err
		}
		b := make([]byte, count)
		if err := d.readFull(b); err != nil {
			return nil, err
		}
		return ByteArray(b), nil
	case TagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagList:
		return d.readList()
	case TagCompound:
		return d.readCompound()
	case TagIntArray:
		count, err := d.readCount()
		if err != nil {
			return nil, err
		}
		a := make(IntArray, 0, min(count, maxPrealloc))
		for i := 0; i < count; i++ {
			v, err := d.readInt32()
			if err != nil {
				return nil, err
			}
			a = append(a, v)
		}
		return a, nil
	case TagLongArray:
		count, err := d.readCount()
		if err != nil {
			return nil, err
		}
		a := make(LongArray, 0, min(count, maxPrealloc))
		for i := 0; i < count; i++ {
			v, err := d.readInt64()
			if err != nil {
				return nil, err
			}
			a = append(a, v)
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown tag type %d", byte(id))
}

func (d *decoder) readList() (Tag, error) {
	elem, err := d.readID()
	if err != nil {
		return nil, err
	}
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && count > 0 {
		return nil, fmt.Errorf("list of %d End elements", count)
	}
	list := List{Elem: elem, Items: make([]Tag, 0, min(count, maxPrealloc))}
	for i := 0; i < count; i++ {
		item, err := d.readPayload(elem)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

func (d *decoder) readCompound() (Tag, error) {
	c := Compound{}
	for {
		id, err := d.readID()
		if err != nil {
			return nil, err
		}
		if id == TagEnd {
			return c, nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		tag, err := d.readPayload(id)
		if err != nil {
			return nil, err
		}
		c[name] = tag
	}
}

// Decode reads a complete tag tree from r, which must carry an
// uncompressed stream whose root tag is a compound. The root's name is
// discarded; map files always use an empty one.
func Decode(r io.Reader) (Compound, error) {
	d := &decoder{r: r}

	id, err := d.readID()
	if err != nil {
		return nil, d.fail(err)
	}
	if id != TagCompound {
		return nil, d.fail(fmt.Errorf("root tag is %s, want Compound", id))
	}
	if _, err := d.readString(); err != nil {
		return nil, d.fail(err)
	}

	root, err := d.readCompound()
	if err != nil {
		return nil, d.fail(err)
	}
	return root.(Compound), nil
}

func math32(v int32) float32 { return math.Float32frombits(uint32(v)) }
func math64(v int64) float64 { return math.Float64frombits(uint64(v)) }
