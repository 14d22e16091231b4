package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	maptool "github.com/osaukko/minecraft-map-tool"
	"github.com/osaukko/minecraft-map-tool/mapitem"
	"github.com/osaukko/minecraft-map-tool/render"
	"github.com/osaukko/minecraft-map-tool/stitch"
)

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

func stitchAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	dir, output := c.Args().Get(0), c.Args().Get(1)

	order, err := sortOrder(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	m := maptool.New(nil, newLogger(c))
	results, err := m.ReadMaps(dir, c.Bool("recursive"), order)
	if err != nil {
		return cli.Exit(err, 1)
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "could not read %s: %v\n", r.Path, r.Err)
		}
	}
	items := maptool.Items(results)
	fmt.Printf("Found %d map files.\n", len(items))

	opts := stitch.Options{
		Dimension: c.String("dimension"),
		Zoom:      c.Int("zoom"),
	}

	// First plan without an explicit area to learn what the maps cover.
	project, err := stitch.Plan(items, opts)
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("After filtering we have %d map files.\n", len(project.Items))
	printArea("Map area", project.Rect)

	// Individual edges may be overridden before rendering.
	rect := project.Rect
	applyEdgeFlags(c, &rect)

	if rect != project.Rect {
		printArea("Map area for image", rect)
		warnUnalignedEdges(c, rect, opts.Zoom)
		opts.Rect = &rect
		if project, err = stitch.Plan(items, opts); err != nil {
			return cli.Exit(err, 1)
		}
	}

	canvas := project.Render()
	fmt.Printf("Making image with size: %d×%d\n", canvas.Bounds().Dx(), canvas.Bounds().Dy())

	if err := render.WriteFile(output, canvas); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("Image written to %s\n", output)
	return nil
}

func explicitEdges(c *cli.Context) bool {
	return c.IsSet("left") || c.IsSet("top") || c.IsSet("right") || c.IsSet("bottom")
}

// applyEdgeFlags overwrites the edges of rect that were given on the
// command line.
func applyEdgeFlags(c *cli.Context, rect *mapitem.Rect) {
	for _, edge := range []struct {
		name  string
		value *int32
	}{
		{"left", &rect.Left},
		{"top", &rect.Top},
		{"right", &rect.Right},
		{"bottom", &rect.Bottom},
	} {
		if c.IsSet(edge.name) {
			*edge.value = int32(c.Int(edge.name))
		}
	}
}

func printArea(title string, rect mapitem.Rect) {
	fmt.Println(title)
	fmt.Printf("  Upper Left  : %d %d\n", rect.Left, rect.Top)
	fmt.Printf("  Lower Right : %d %d\n", rect.Right, rect.Bottom)
	fmt.Printf("  Size        : %d×%d\n", rect.Dx(), rect.Dy())
}

// warnUnalignedEdges points out coordinates that do not sit on a map
// pixel boundary for the selected zoom; the result is still rendered,
// but edge maps will be cropped mid-pixel.
func warnUnalignedEdges(c *cli.Context, rect mapitem.Rect, zoom int) {
	if zoom < 1 {
		return
	}
	factor := int32(1) << zoom

	check := func(name string, value, expected int32) {
		if mod(value, factor) == expected {
			return
		}
		fmt.Fprintf(os.Stderr, "%s the %s coordinate %d is not on a zoom %d pixel boundary\n",
			warningStyle.Render("Warning:"), name, value, zoom)
	}
	check("left", rect.Left, 0)
	check("top", rect.Top, 0)
	check("right", rect.Right, factor-1)
	check("bottom", rect.Bottom, factor-1)
}

func mod(v, m int32) int32 {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
