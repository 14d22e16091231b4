/*
Package nbt implements a decoder and encoder for the Named Binary Tag
format used by Minecraft save files.

A stream is a tree of named, typed values. Every node starts with a
one-byte type id followed by a length-prefixed name, except inside lists
and arrays where names are omitted. All multi-byte values are big-endian.
The decoder makes a single forward pass and performs no semantic
validation; any compound shape is legal at this layer.
*/
package nbt

import "fmt"

// TagID identifies the payload type of a tag.
type TagID byte

const (
	TagEnd TagID = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

func (id TagID) String() string {
	switch id {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	}
	return fmt.Sprintf("Unknown(%d)", byte(id))
}

// Tag is a single node in the tree. The concrete type is one of Byte,
// Short, Int, Long, Float, Double, ByteArray, String, List, Compound,
// IntArray or LongArray.
type Tag interface {
	ID() TagID
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

// List holds the elements of a list tag. All elements share one type;
// an empty list may carry TagEnd as its element type.
type List struct {
	Elem  TagID
	Items []Tag
}

// Compound maps unique names to child tags.
type Compound map[string]Tag

func (Byte) ID() TagID      { return TagByte }
func (Short) ID() TagID     { return TagShort }
func (Int) ID() TagID       { return TagInt }
func (Long) ID() TagID      { return TagLong }
func (Float) ID() TagID     { return TagFloat }
func (Double) ID() TagID    { return TagDouble }
func (ByteArray) ID() TagID { return TagByteArray }
func (String) ID() TagID    { return TagString }
func (List) ID() TagID      { return TagList }
func (Compound) ID() TagID  { return TagCompound }
func (IntArray) ID() TagID  { return TagIntArray }
func (LongArray) ID() TagID { return TagLongArray }

// MalformedTagError reports a stream that does not parse as a tag tree.
// Offset is the absolute byte position where decoding failed.
type MalformedTagError struct {
	Offset int64
	Err    error
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("nbt: malformed tag at offset %d: %v", e.Offset, e.Err)
}

func (e *MalformedTagError) Unwrap() error {
	return e.Err
}
