package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/astpad/astpad/engine"
	"github.com/astpad/astpad/engine/sitter"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print the syntax tree of a source file",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "language name (defaults to the file extension)",
			},
			&cli.BoolFlag{
				Name:    "anonymous",
				Aliases: []string{"a"},
				Usage:   "include anonymous nodes",
			},
		},
		Action: runDump,
	}
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("a source file (or - for stdin) is required")
	}

	language := cmd.String("language")
	if language == "" {
		if path == "-" {
			return errors.New("--language is required when reading stdin")
		}
		lang, err := sitter.ByExtension(filepath.Ext(path))
		if err != nil {
			return fmt.Errorf("%s: %w (use --language)", path, err)
		}
		language = lang.Name
	}

	source, err := readSource(path)
	if err != nil {
		return err
	}
	tree, err := engine.DumpTree(ctx, language, source)
	if err != nil {
		return err
	}
	fmt.Print(tree.Render(cmd.Bool("anonymous")))
	return nil
}
