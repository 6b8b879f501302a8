// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var globalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "debug",
		Usage:   "log debug output to stderr",
		EnvVars: []string{"NODETREE_DEBUG"},
	},
	&cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "input format: json (array of {id, parentId, label}) or outline",
		Value:   formatJSON,
		EnvVars: []string{"NODETREE_FORMAT"},
	},
}

func run(args []string) error {
	return newApp(os.Stdout).Run(args)
}

func newApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:   "nodetree",
		Usage:  "inspect flat id/parent-id node sets as trees",
		Writer: out,
		Flags:  globalFlags,
		Before: func(cctx *cli.Context) error {
			if cctx.Bool("debug") {
				logger.SetLevel(logrus.DebugLevel)
			}

			return nil
		},
	}
	app.Commands = []*cli.Command{
		cmdPrint,
		cmdRoots,
		cmdAncestors,
		cmdDescendants,
		cmdWithout,
		cmdEncode,
	}

	return app
}

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	return l
}
