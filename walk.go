package maptool

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/osaukko/minecraft-map-tool/mapitem"
)

// SortOrder decides the order map files are processed in, which is also
// the draw order when stitching: later files overwrite earlier ones.
type SortOrder int

const (
	// SortByName orders by natural filename comparison, so map_9
	// comes before map_10.
	SortByName SortOrder = iota

	// SortByTime orders by file modification time, oldest first, so
	// the newest map wins overlaps. Ties fall back to name order to
	// keep the result deterministic.
	SortByTime
)

// map_0.dat, map_12.dat, ...
var mapFilePattern = regexp.MustCompile(`^map_-?\d+\.dat$`)

// MapFile is a discovered map file and the timestamp used for time
// ordering.
type MapFile struct {
	Path    string
	ModTime time.Time
}

// FindMapFiles returns the map files under dir, optionally recursing
// into subdirectories, sorted by order. Hidden files and directories are
// skipped.
func FindMapFiles(dir string, recursive bool, order SortOrder) ([]MapFile, error) {
	var files []MapFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Name()[0] == '.' && path != dir {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || !mapFilePattern.MatchString(info.Name()) {
			return nil
		}
		files = append(files, MapFile{Path: path, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch order {
	case SortByTime:
		sort.SliceStable(files, func(i, j int) bool {
			if files[i].ModTime.Equal(files[j].ModTime) {
				return naturalLess(files[i].Path, files[j].Path)
			}
			return files[i].ModTime.Before(files[j].ModTime)
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return naturalLess(files[i].Path, files[j].Path)
		})
	}
	return files, nil
}

// naturalLess compares paths so embedded numbers sort by value:
// "map_9.dat" < "map_10.dat".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, arest := leadingInt(a)
			bn, brest := leadingInt(b)
			if an != bn {
				return an < bn
			}
			a, b = arest, brest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func leadingInt(s string) (uint64, string) {
	var n uint64
	i := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		n = n*10 + uint64(s[i]-'0')
	}
	return n, s[i:]
}

// ReadResult is the outcome of decoding one file. A batch never aborts
// on a single bad file; failures travel alongside successes so callers
// can report them.
type ReadResult struct {
	MapFile
	Item *mapitem.MapItem
	Err  error
}

// ReadMaps discovers and decodes the map files under dir in the given
// order. Decode failures are logged and recorded per file, never fatal
// for the batch.
func (m *MapTool) ReadMaps(dir string, recursive bool, order SortOrder) ([]ReadResult, error) {
	files, err := FindMapFiles(dir, recursive, order)
	if err != nil {
		return nil, err
	}

	results := make([]ReadResult, 0, len(files))
	for _, file := range files {
		item, err := mapitem.ReadFile(file.Path)
		if err != nil {
			m.logger.Printf("skipping %s: %v\n", file.Path, err)
		}
		results = append(results, ReadResult{MapFile: file, Item: item, Err: err})
	}
	return results, nil
}

// Items returns the successfully decoded items in their original order.
func Items(results []ReadResult) []*mapitem.MapItem {
	items := make([]*mapitem.MapItem, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			items = append(items, r.Item)
		}
	}
	return items
}

// CommonBase returns the longest directory prefix shared by every
// result, for compact listings.
func CommonBase(results []ReadResult) string {
	if len(results) == 0 {
		return ""
	}
	base := filepath.Dir(results[0].Path)
	for _, r := range results[1:] {
		dir := filepath.Dir(r.Path)
		for base != dir && base != "." && base != string(filepath.Separator) {
			if len(dir) > len(base) {
				dir = filepath.Dir(dir)
			} else {
				base = filepath.Dir(base)
			}
		}
	}
	return base
}
