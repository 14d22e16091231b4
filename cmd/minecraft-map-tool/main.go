package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	maptool "github.com/osaukko/minecraft-map-tool"
	"github.com/osaukko/minecraft-map-tool/mapitem"
	"github.com/osaukko/minecraft-map-tool/render"
	"github.com/osaukko/minecraft-map-tool/stitch"
)

const defaultDB = "maps.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func sortOrder(c *cli.Context) (maptool.SortOrder, error) {
	switch c.String("sort") {
	case "name":
		return maptool.SortByName, nil
	case "time":
		return maptool.SortByTime, nil
	}
	return 0, fmt.Errorf("unknown sort order %q, want \"name\" or \"time\"", c.String("sort"))
}

func main() {
	app := cli.NewApp()

	app.Name = "minecraft-map-tool"
	app.Usage = "Inspect Minecraft map files and turn them into images"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MAP_TOOL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to the map index database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "list",
			Usage:     "List maps and their information",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "recursive",
					Aliases: []string{"r"},
					Usage:   "search map files recursively in subdirectories",
				},
				&cli.StringFlag{
					Name:    "sort",
					Aliases: []string{"s"},
					Value:   "name",
					Usage:   "file order, \"name\" or \"time\"",
				},
				&cli.BoolFlag{
					Name:  "indexed",
					Usage: "list from the map index database instead of decoding files",
				},
				&cli.StringFlag{
					Name:    "dimension",
					Aliases: []string{"d"},
					Usage:   "with --indexed, only list maps from this dimension",
				},
				&cli.IntFlag{Name: "left", Usage: "with --indexed, west edge of the area to list"},
				&cli.IntFlag{Name: "top", Usage: "with --indexed, north edge of the area to list"},
				&cli.IntFlag{Name: "right", Usage: "with --indexed, east edge of the area to list"},
				&cli.IntFlag{Name: "bottom", Usage: "with --indexed, south edge of the area to list"},
			},
			Action: listAction,
		},
		{
			Name:      "info",
			Usage:     "Show detailed information about one map file",
			ArgsUsage: "FILE",
			Action:    infoAction,
		},
		{
			Name:      "image",
			Usage:     "Create an image from one map file",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write the image to `FILE` (.png or .gif)",
				},
				&cli.BoolFlag{
					Name:  "show",
					Usage: "show the map in the terminal",
				},
			},
			Action: imageAction,
		},
		{
			Name:      "images",
			Usage:     "Create an image from every map file in a directory",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output-dir",
					Aliases: []string{"o"},
					Value:   ".",
					Usage:   "directory the images are written to",
				},
				&cli.BoolFlag{
					Name:    "recursive",
					Aliases: []string{"r"},
					Usage:   "search map files recursively in subdirectories",
				},
			},
			Action: imagesAction,
		},
		{
			Name:      "stitch",
			Usage:     "Combine many maps into one image in world coordinates",
			ArgsUsage: "DIRECTORY OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dimension",
					Aliases: []string{"d"},
					Value:   "overworld",
					Usage:   "only draw maps from this dimension, empty for all",
				},
				&cli.IntFlag{
					Name:    "zoom",
					Aliases: []string{"z"},
					Value:   stitch.AllZooms,
					Usage:   "only draw maps with this zoom level (0-4), negative for all",
				},
				&cli.StringFlag{
					Name:    "sort",
					Aliases: []string{"s"},
					Value:   "time",
					Usage:   "draw order, \"name\" or \"time\" (later files win overlaps)",
				},
				&cli.BoolFlag{
					Name:    "recursive",
					Aliases: []string{"r"},
					Usage:   "search map files recursively in subdirectories",
				},
				&cli.IntFlag{Name: "left", Usage: "left edge (smaller X)"},
				&cli.IntFlag{Name: "top", Usage: "top edge (smaller Z)"},
				&cli.IntFlag{Name: "right", Usage: "right edge (larger X)"},
				&cli.IntFlag{Name: "bottom", Usage: "bottom edge (larger Z)"},
			},
			Action: stitchAction,
		},
		{
			Name:      "dump",
			Usage:     "Print the raw tag tree of a map file",
			ArgsUsage: "FILE",
			Action:    dumpAction,
		},
		{
			Name:      "scan",
			Usage:     "Scan a directory and refresh the map index database",
			ArgsUsage: "DIRECTORY",
			Action:    scanAction,
		},
		{
			Name:      "testmap",
			Usage:     "Write a synthetic map file showing every palette color",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "data-version",
					Usage: "data version to stamp, defaults to the latest known",
				},
			},
			Action: testmapAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func listAction(c *cli.Context) error {
	if c.Bool("indexed") {
		return listIndexed(c)
	}

	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	order, err := sortOrder(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	m := maptool.New(nil, newLogger(c))
	results, err := m.ReadMaps(c.Args().First(), c.Bool("recursive"), order)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(results) == 0 {
		fmt.Println("Nothing to list")
		return nil
	}

	printListTable(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "could not read %s: %v\n", r.Path, r.Err)
		}
	}
	return nil
}

// listIndexed lists from the sqlite index, optionally narrowed to an
// area so large worlds do not have to be listed wholesale. Unset edges
// extend to the world limit.
func listIndexed(c *cli.Context) error {
	db, err := maptool.NewMapDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	var entries []maptool.IndexEntry
	if explicitEdges(c) || c.IsSet("dimension") {
		rect := mapitem.Rect{
			Left: math.MinInt32, Top: math.MinInt32,
			Right: math.MaxInt32, Bottom: math.MaxInt32,
		}
		applyEdgeFlags(c, &rect)
		entries, err = db.InArea(c.String("dimension"), rect)
	} else {
		entries, err = db.All()
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing to list")
		return nil
	}
	printIndexTable(entries)
	return nil
}

func infoAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	item, err := mapitem.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	printInfo(item)
	return nil
}

func imageAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	if c.String("output") == "" && !c.Bool("show") {
		return cli.Exit("nothing to do: pass --output and/or --show", 1)
	}

	item, err := mapitem.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	img := render.Image(item)

	if c.Bool("show") {
		if err := render.Terminal(os.Stdout, img); err != nil {
			return cli.Exit(err, 1)
		}
	}
	if output := c.String("output"); output != "" {
		if err := render.WriteFile(output, img); err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Printf("Image written to %s\n", output)
	}
	return nil
}

func imagesAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m := maptool.New(nil, newLogger(c))
	results, err := m.ReadMaps(c.Args().First(), c.Bool("recursive"), maptool.SortByName)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(results) == 0 {
		return cli.Exit("no map files found", 1)
	}

	outputDir := c.String("output-dir")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return cli.Exit(err, 1)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "could not read %s: %v\n", r.Path, r.Err)
			failed++
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		output := filepath.Join(outputDir, fmt.Sprintf("%s_%d_%d_%d_%s.png",
			r.Item.Data.Dimension.Pretty(), r.Item.Data.Scale,
			r.Item.Data.XCenter, r.Item.Data.ZCenter, stem))

		if err := render.WriteFile(output, render.Image(r.Item)); err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Printf("%s -> %s\n", r.Path, output)
	}

	if failed == len(results) {
		return cli.Exit("could not read any map file", 1)
	}
	return nil
}

func scanAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := maptool.NewMapDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	m := maptool.New(db, newLogger(c))
	if err := m.Scan(c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func testmapAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	version := int32(c.Int("data-version"))
	if version == 0 {
		version = maptool.LatestKnownVersion()
	}

	item := testMapItem(version)
	if err := item.WriteFile(c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("Test map written to %s\n", c.Args().First())
	return nil
}

// testMapItem fills a map with every palette index, laid out as a 16×16
// grid of 8×8 pixel squares.
func testMapItem(dataVersion int32) *mapitem.MapItem {
	colors := make([]byte, 0, mapitem.ColorsLen)
	var color byte
	for row := 0; row < 16; row++ {
		line := make([]byte, 0, mapitem.Width)
		for square := 0; square < 16; square++ {
			for i := 0; i < 8; i++ {
				line = append(line, color)
			}
			color++
		}
		for i := 0; i < 8; i++ {
			colors = append(colors, line...)
		}
	}

	return &mapitem.MapItem{
		DataVersion: dataVersion,
		Data: mapitem.MapData{
			Scale:            0,
			Dimension:        mapitem.Overworld,
			TrackingPosition: true,
			Locked:           true,
			Colors:           colors,
		},
	}
}
