package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	maptool "github.com/osaukko/minecraft-map-tool"
	"github.com/osaukko/minecraft-map-tool/mapitem"
)

var listHeaders = []string{"File", "Zoom", "Dimension", "Locked", "Center", "Left", "Top", "Right", "Bottom"}

func newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	if len(headers) > 0 {
		t.Headers(headers...)
	}
	return t
}

func yesOrNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func printListTable(results []maptool.ReadResult) {
	base := maptool.CommonBase(results)
	t := newTable(listHeaders...)

	for _, r := range results {
		file, err := filepath.Rel(base, r.Path)
		if err != nil {
			file = r.Path
		}
		if r.Err != nil {
			t.Row(file, "?", "?", "?", "?", "?", "?", "?", "?")
			continue
		}

		d := &r.Item.Data
		bounds, err := d.Bounds()
		if err != nil {
			t.Row(file, "?", "?", "?", "?", "?", "?", "?", "?")
			continue
		}
		t.Row(file,
			strconv.Itoa(int(d.Scale)),
			d.Dimension.Pretty(),
			yesOrNo(d.Locked),
			fmt.Sprintf("%d, %d", d.XCenter, d.ZCenter),
			strconv.Itoa(int(bounds.Left)),
			strconv.Itoa(int(bounds.Top)),
			strconv.Itoa(int(bounds.Right)),
			strconv.Itoa(int(bounds.Bottom)))
	}
	fmt.Println(t.Render())
}

func printIndexTable(entries []maptool.IndexEntry) {
	t := newTable(listHeaders...)
	for _, e := range entries {
		t.Row(e.Path,
			strconv.Itoa(int(e.Scale)),
			e.Dimension.Pretty(),
			yesOrNo(e.Locked),
			fmt.Sprintf("%d, %d", e.XCenter, e.ZCenter),
			strconv.Itoa(int(e.Bounds.Left)),
			strconv.Itoa(int(e.Bounds.Top)),
			strconv.Itoa(int(e.Bounds.Right)),
			strconv.Itoa(int(e.Bounds.Bottom)))
	}
	fmt.Println(t.Render())
}

func printInfo(item *mapitem.MapItem) {
	d := &item.Data

	fmt.Println(filepath.Base(item.File))

	t := newTable()
	t.Row("Scale", strconv.Itoa(int(d.Scale)), d.ScaleDescription())
	t.Row("Version", strconv.Itoa(int(item.DataVersion)), maptool.VersionName(item.DataVersion))
	t.Row("Dimension", d.Dimension.Pretty(), "")
	t.Row("Locked", yesOrNo(d.Locked), "")
	t.Row("Tracking position", yesOrNo(d.TrackingPosition), "")
	t.Row("Unlimited tracking", yesOrNo(d.UnlimitedTracking), "")
	fmt.Println(t.Render())

	if bounds, err := d.Bounds(); err == nil {
		t = newTable("Coordinates", "X", "Z")
		t.Row("Upper left", strconv.Itoa(int(bounds.Left)), strconv.Itoa(int(bounds.Top)))
		t.Row("Lower left", strconv.Itoa(int(bounds.Left)), strconv.Itoa(int(bounds.Bottom)))
		t.Row("Upper right", strconv.Itoa(int(bounds.Right)), strconv.Itoa(int(bounds.Top)))
		t.Row("Lower right", strconv.Itoa(int(bounds.Right)), strconv.Itoa(int(bounds.Bottom)))
		t.Row("Center", strconv.Itoa(int(d.XCenter)), strconv.Itoa(int(d.ZCenter)))
		fmt.Println(t.Render())
	}

	if len(d.Banners) > 0 {
		t = newTable("Banner", "Color", "X", "Y", "Z")
		for _, b := range d.Banners {
			t.Row(b.DisplayName(), b.Color,
				strconv.Itoa(int(b.Pos.X)),
				strconv.Itoa(int(b.Pos.Y)),
				strconv.Itoa(int(b.Pos.Z)))
		}
		fmt.Println(t.Render())
	}

	if len(d.Frames) > 0 {
		t = newTable("Frame", "Angle", "X", "Y", "Z")
		for _, f := range d.Frames {
			t.Row(strconv.Itoa(int(f.EntityID)),
				strconv.Itoa(int(f.Rotation)),
				strconv.Itoa(int(f.Pos.X)),
				strconv.Itoa(int(f.Pos.Y)),
				strconv.Itoa(int(f.Pos.Z)))
		}
		fmt.Println(t.Render())
	}
}
