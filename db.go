package maptool

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/osaukko/minecraft-map-tool/mapitem"
)

// MapDB is a sqlite index of scanned map files so listings and area
// queries do not have to re-decode every file. The source files remain
// authoritative; rows are refreshed whenever a file's mtime changes.
type MapDB struct {
	db *sql.DB
}

func NewMapDB(file string) (*MapDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS map (
		path TEXT PRIMARY KEY NOT NULL,
		mtime INTEGER NOT NULL,
		data_version INTEGER NOT NULL,
		scale INTEGER NOT NULL,
		dimension TEXT NOT NULL,
		locked INTEGER NOT NULL,
		x_center INTEGER NOT NULL,
		z_center INTEGER NOT NULL,
		min_x INTEGER NOT NULL,
		min_z INTEGER NOT NULL,
		max_x INTEGER NOT NULL,
		max_z INTEGER NOT NULL)`); err != nil {
		return nil, err
	}

	return &MapDB{
		db: db,
	}, nil
}

func (db *MapDB) Close() error {
	return db.db.Close()
}

// UpToDate reports whether the index already has this file at this
// modification time, so scans can skip unchanged files.
func (db *MapDB) UpToDate(path string, modTime time.Time) (bool, error) {
	var mtime int64
	switch err := db.db.QueryRow("SELECT mtime FROM map WHERE path = ?", path).Scan(&mtime); err {
	case sql.ErrNoRows:
		return false, nil
	case nil:
		return mtime == modTime.Unix(), nil
	default:
		return false, err
	}
}

// Upsert inserts or refreshes the index row for one decoded map file.
func (db *MapDB) Upsert(item *mapitem.MapItem, modTime time.Time) error {
	bounds, err := item.Data.Bounds()
	if err != nil {
		return err
	}
	_, err = db.db.Exec(`INSERT OR REPLACE INTO map
		(path, mtime, data_version, scale, dimension, locked, x_center, z_center, min_x, min_z, max_x, max_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.File, modTime.Unix(), item.DataVersion, item.Data.Scale,
		string(item.Data.Dimension), item.Data.Locked,
		item.Data.XCenter, item.Data.ZCenter,
		bounds.Left, bounds.Top, bounds.Right, bounds.Bottom)
	return err
}

// IndexEntry is one indexed map file's metadata.
type IndexEntry struct {
	Path        string
	DataVersion int32
	Scale       int8
	Dimension   mapitem.Dimension
	Locked      bool
	XCenter     int32
	ZCenter     int32
	Bounds      mapitem.Rect
}

// All returns every indexed map ordered by path.
func (db *MapDB) All() ([]IndexEntry, error) {
	rows, err := db.db.Query(`SELECT path, data_version, scale, dimension, locked,
		x_center, z_center, min_x, min_z, max_x, max_z FROM map ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []IndexEntry
	for rows.Next() {
		var e IndexEntry
		var dimension string
		if err := rows.Scan(&e.Path, &e.DataVersion, &e.Scale, &dimension, &e.Locked,
			&e.XCenter, &e.ZCenter,
			&e.Bounds.Left, &e.Bounds.Top, &e.Bounds.Right, &e.Bounds.Bottom); err != nil {
			return nil, err
		}
		e.Dimension = mapitem.Dimension(dimension)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InArea returns the indexed maps whose bounds intersect rect, filtered
// by dimension name when given, ordered by path.
func (db *MapDB) InArea(dimension string, rect mapitem.Rect) ([]IndexEntry, error) {
	if err := rect.Validate(); err != nil {
		return nil, err
	}
	entries, err := db.All()
	if err != nil {
		return nil, err
	}
	matches := entries[:0]
	for _, e := range entries {
		if !e.Dimension.Matches(dimension) || !e.Bounds.Intersects(rect) {
			continue
		}
		matches = append(matches, e)
	}
	return matches, nil
}
