// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"gitlab.com/fisherprime/nodetree"
	"gitlab.com/fisherprime/nodetree/lexer"
)

var cmdPrint = &cli.Command{
	Name:      "print",
	Usage:     "draw every root with its descendants",
	ArgsUsage: `<file>`,
	Action: func(cctx *cli.Context) error {
		t, err := loadArg(cctx)
		if err != nil {
			return err
		}

		fmt.Fprint(cctx.App.Writer, t.Render(recordLabel))
		return nil
	},
}

var cmdRoots = &cli.Command{
	Name:      "roots",
	Usage:     "list parent-less nodes",
	ArgsUsage: `<file>`,
	Action: func(cctx *cli.Context) error {
		t, err := loadArg(cctx)
		if err != nil {
			return err
		}

		printIDs(cctx, t.Roots())
		return nil
	},
}

var cmdAncestors = &cli.Command{
	Name:      "ancestors",
	Usage:     "list the ancestors of a node, parent first",
	ArgsUsage: `<file> <id>`,
	Action: func(cctx *cli.Context) error {
		t, id, err := loadWithID(cctx)
		if err != nil {
			return err
		}

		printIDs(cctx, t.AncestorsOf(id))
		return nil
	},
}

var cmdDescendants = &cli.Command{
	Name:      "descendants",
	Usage:     "list the descendants of a node, breadth first",
	ArgsUsage: `<file> <id>`,
	Action: func(cctx *cli.Context) error {
		t, id, err := loadWithID(cctx)
		if err != nil {
			return err
		}

		printIDs(cctx, t.DescendantsOf(id))
		return nil
	},
}

var cmdWithout = &cli.Command{
	Name:      "without",
	Usage:     "write the nodes remaining after removing a node & its descendants as json",
	ArgsUsage: `<file> <id>`,
	Action: func(cctx *cli.Context) error {
		t, id, err := loadWithID(cctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cctx.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Without(id).Flat())
	},
}

var cmdEncode = &cli.Command{
	Name:      "encode",
	Usage:     "write the nodes as an outline",
	ArgsUsage: `<file>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "splitter",
			Usage: "value splitter",
			Value: string(lexer.DefSplitter),
		},
		&cli.StringFlag{
			Name:  "end-marker",
			Usage: "end of children marker",
			Value: string(lexer.DefEndMarker),
		},
	},
	Action: func(cctx *cli.Context) error {
		t, err := loadArg(cctx)
		if err != nil {
			return err
		}

		opts := lexer.Opts{
			Debug:     cctx.Bool("debug"),
			EndMarker: firstRune(cctx.String("end-marker")),
			Splitter:  firstRune(cctx.String("splitter")),
			Logger:    logger,
		}
		output, err := t.Serialize(cctx.Context, opts)
		if err != nil {
			return err
		}

		fmt.Fprintln(cctx.App.Writer, output)
		return nil
	},
}

func loadWithID(cctx *cli.Context) (t *recordTree, id string, err error) {
	if id, err = idArg(cctx); err != nil {
		return
	}

	t, err = loadArg(cctx)
	return
}

func printIDs(cctx *cli.Context, nodes []*nodetree.Record[string]) {
	for _, id := range nodetree.IDs[string](nodes) {
		fmt.Fprintln(cctx.App.Writer, id)
	}
}

func recordLabel(r *nodetree.Record[string]) string {
	if r.Label == "" {
		return r.Key
	}

	return fmt.Sprintf("%s (%s)", r.Key, r.Label)
}

// firstRune returns the first rune of s, the zero rune for an empty s.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}
