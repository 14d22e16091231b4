/*
Package maptool reads Minecraft map item save files and turns them into
listings, images and stitched world maps.
*/
package maptool

import "log"

type MapTool struct {
	db     *MapDB
	logger *log.Logger
}

func New(db *MapDB, logger *log.Logger) *MapTool {
	return &MapTool{
		db:     db,
		logger: logger,
	}
}
