package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v2"

	"github.com/osaukko/minecraft-map-tool/nbt"
)

func dumpAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	z, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer z.Close()

	root, err := nbt.Decode(z)
	if err != nil {
		return err
	}

	dumpTag("", root, 0)
	return nil
}

func dumpTag(name string, tag nbt.Tag, depth int) {
	indent := strings.Repeat("  ", depth)
	label := tag.ID().String()
	if name != "" {
		label += " " + strconv.Quote(name)
	}

	switch t := tag.(type) {
	case nbt.Compound:
		fmt.Printf("%s%s (%d entries)\n", indent, label, len(t))
		names := make([]string, 0, len(t))
		for n := range t {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			dumpTag(n, t[n], depth+1)
		}
	case nbt.List:
		fmt.Printf("%s%s of %s (%d items)\n", indent, label, t.Elem, len(t.Items))
		for _, item := range t.Items {
			dumpTag("", item, depth+1)
		}
	case nbt.ByteArray:
		fmt.Printf("%s%s (%d bytes)\n", indent, label, len(t))
	case nbt.IntArray:
		fmt.Printf("%s%s (%d ints)\n", indent, label, len(t))
	case nbt.LongArray:
		fmt.Printf("%s%s (%d longs)\n", indent, label, len(t))
	case nbt.String:
		fmt.Printf("%s%s: %q\n", indent, label, string(t))
	case nbt.Byte:
		fmt.Printf("%s%s: %d\n", indent, label, t)
	case nbt.Short:
		fmt.Printf("%s%s: %d\n", indent, label, t)
	case nbt.Int:
		fmt.Printf("%s%s: %d\n", indent, label, t)
	case nbt.Long:
		fmt.Printf("%s%s: %d\n", indent, label, t)
	case nbt.Float:
		fmt.Printf("%s%s: %g\n", indent, label, t)
	case nbt.Double:
		fmt.Printf("%s%s: %g\n", indent, label, t)
	default:
		fmt.Printf("%s%s\n", indent, label)
	}
}
