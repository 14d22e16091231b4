package mapitem

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/osaukko/minecraft-map-tool/nbt"
)

// Decode reads a map item from an uncompressed tag stream.
func Decode(r io.Reader) (*MapItem, error) {
	root, err := nbt.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromTree(root)
}

// ReadFile reads and decodes one gzip-compressed map_#.dat file.
func ReadFile(file string) (*MapItem, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	defer gz.Close()

	item, err := Decode(gz)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	item.File = file
	return item, nil
}
