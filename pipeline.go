package maptool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osaukko/minecraft-map-tool/mapitem"
)

type scanFile struct {
	path    string
	modTime time.Time
}

func (m *MapTool) findFiles(ctx context.Context, base string) (<-chan scanFile, <-chan error, error) {
	out := make(chan scanFile)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && path != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !mapFilePattern.MatchString(info.Name()) {
				return nil
			}

			select {
			case out <- scanFile{path: path, modTime: info.ModTime()}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *MapTool) indexWorker(ctx context.Context, in <-chan scanFile) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			current, err := m.db.UpToDate(file.path, file.modTime)
			if err != nil {
				errc <- err
				return
			}
			if current {
				continue
			}

			item, err := mapitem.ReadFile(file.path)
			if err != nil {
				// One undecodable file must not stop the scan.
				m.logger.Printf("skipping %s: %v\n", file.path, err)
				continue
			}

			if err := m.db.Upsert(item, file.modTime); err != nil {
				errc <- err
				return
			}
			m.logger.Printf("indexed %s\n", file.path)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and refreshes the map index. Files are decoded by a
// pool of workers; since every row is keyed by path, completion order
// does not affect the resulting index.
func (m *MapTool) Scan(path string) error {
	if m.db == nil {
		return errors.New("no map index open")
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := m.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := m.indexWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
