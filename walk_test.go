package maptool

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaukko/minecraft-map-tool/mapitem"
)

func writeTestMap(t *testing.T, file string, scale int8) {
	t.Helper()
	item := &mapitem.MapItem{
		DataVersion: 2730,
		Data: mapitem.MapData{
			Scale:     scale,
			Dimension: mapitem.Overworld,
			Colors:    make([]byte, mapitem.ColorsLen),
			Banners:   []mapitem.Banner{},
			Frames:    []mapitem.Frame{},
		},
	}
	require.NoError(t, item.WriteFile(file))
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"map_9.dat", "map_10.dat", true},
		{"map_10.dat", "map_9.dat", false},
		{"map_2.dat", "map_2.dat", false},
		{"map_2.dat", "map_20.dat", true},
		{"a", "b", true},
		{"map_1.dat", "map_1.dat.bak", true},
		{"map_09.dat", "map_9.dat", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, naturalLess(tt.a, tt.b), "%q < %q", tt.a, tt.b)
	}
}

func TestFindMapFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nether")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	for _, name := range []string{"map_10.dat", "map_2.dat", "map_1.dat"} {
		writeTestMap(t, filepath.Join(dir, name), 0)
	}
	writeTestMap(t, filepath.Join(sub, "map_3.dat"), 0)
	writeTestMap(t, filepath.Join(dir, ".git", "map_4.dat"), 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idcounts.dat"), []byte{0}, 0o644))

	files, err := FindMapFiles(dir, false, SortByName)
	require.NoError(t, err)
	require.Len(t, files, 3, "subdirectories and non-map files are skipped")
	assert.Equal(t, "map_1.dat", filepath.Base(files[0].Path))
	assert.Equal(t, "map_2.dat", filepath.Base(files[1].Path))
	assert.Equal(t, "map_10.dat", filepath.Base(files[2].Path))

	files, err = FindMapFiles(dir, true, SortByName)
	require.NoError(t, err)
	assert.Len(t, files, 4, "recursive includes subdirectories but never hidden ones")
}

func TestFindMapFilesByTime(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"map_1.dat", "map_2.dat"} {
		writeTestMap(t, filepath.Join(dir, name), 0)
	}
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "map_2.dat"), old, old))

	files, err := FindMapFiles(dir, false, SortByTime)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "map_2.dat", filepath.Base(files[0].Path), "oldest first")
}

func TestReadMapsIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeTestMap(t, filepath.Join(dir, "map_1.dat"), 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map_2.dat"), []byte("not gzip"), 0o644))

	m := New(nil, log.New(io.Discard, "", 0))
	results, err := m.ReadMaps(dir, false, SortByName)
	require.NoError(t, err, "a bad file must not fail the batch")
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, int8(2), results[0].Item.Data.Scale)
	assert.Error(t, results[1].Err)

	items, broken := Items(results), 0
	for _, r := range results {
		if r.Err != nil {
			broken++
		}
	}
	assert.Len(t, items, 1)
	assert.Equal(t, 1, broken)
}

func TestCommonBase(t *testing.T) {
	assert.Equal(t, "", CommonBase(nil))

	results := []ReadResult{
		{MapFile: MapFile{Path: filepath.Join("world", "data", "map_1.dat")}},
		{MapFile: MapFile{Path: filepath.Join("world", "data", "map_2.dat")}},
	}
	assert.Equal(t, filepath.Join("world", "data"), CommonBase(results))

	results = append(results, ReadResult{
		MapFile: MapFile{Path: filepath.Join("world", "other", "map_3.dat")},
	})
	assert.Equal(t, "world", CommonBase(results))
}

func TestVersionName(t *testing.T) {
	assert.Equal(t, "1.17.1", VersionName(2730))
	assert.Equal(t, "21w10a", VersionName(2699))
	assert.Equal(t, "Unknown", VersionName(1))
	assert.GreaterOrEqual(t, LatestKnownVersion(), int32(3955))
}
