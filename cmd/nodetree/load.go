// SPDX-License-Identifier: MIT
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"gitlab.com/fisherprime/nodetree"
	"gitlab.com/fisherprime/nodetree/lexer"
)

type recordTree = nodetree.Tree[string, *nodetree.Record[string]]

const (
	formatJSON    = "json"
	formatOutline = "outline"

	stdinPath = "-"
)

// Input errors.
var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrMissingArg    = errors.New("missing argument")
)

// loadTree reads a [recordTree] in the given format.
func loadTree(ctx context.Context, r io.Reader, format string, debug bool) (t *recordTree, err error) {
	switch format {
	case formatJSON:
		var records []*nodetree.Record[string]
		if err = json.NewDecoder(r).Decode(&records); err != nil {
			err = fmt.Errorf("decode json records: %w", err)
			return
		}

		t = nodetree.New[string](records, nodetree.WithLogger(logger), nodetree.WithDebug(debug))
	case formatOutline:
		t, err = nodetree.Deserialize(ctx,
			lexer.WithSource(bufio.NewReader(r)),
			lexer.WithLogger(logger),
			lexer.WithDebug(debug),
		)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return
}

// loadArg reads the [recordTree] named by the command's first argument, "-" for stdin.
func loadArg(cctx *cli.Context) (t *recordTree, err error) {
	path := cctx.Args().First()
	if path == "" {
		err = fmt.Errorf("%w: <file>", ErrMissingArg)
		return
	}

	var r io.Reader = os.Stdin
	if path != stdinPath {
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return
		}
		defer f.Close()

		r = f
	}

	if t, err = loadTree(cctx.Context, r, cctx.String("format"), cctx.Bool("debug")); err != nil {
		err = fmt.Errorf("load %s: %w", path, err)
	}

	return
}

// idArg obtains the node id passed after the file argument.
func idArg(cctx *cli.Context) (id string, err error) {
	if id = cctx.Args().Get(1); id == "" {
		err = fmt.Errorf("%w: <id>", ErrMissingArg)
	}

	return
}
