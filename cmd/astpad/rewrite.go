package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/astpad/astpad/engine"
)

func rewriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "apply a rule's fix to source files",
		ArgsUsage: "file...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rule",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "YAML rule file with a fix template",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "rewrite files in place",
			},
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "print a diff instead of the rewritten source",
			},
		},
		Action: runRewrite,
	}
}

func runRewrite(ctx context.Context, cmd *cli.Command) error {
	rule, err := loadRule(cmd.String("rule"))
	if err != nil {
		return err
	}
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errNoFiles
	}
	if cmd.Bool("write") && cmd.Bool("diff") {
		return errors.New("--write and --diff are mutually exclusive")
	}

	for _, path := range files {
		source, err := readSource(path)
		if err != nil {
			return err
		}
		out, edits, err := engine.Rewrite(ctx, rule, source)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		switch {
		case cmd.Bool("write"):
			if path == "-" {
				return errors.New("cannot rewrite stdin in place")
			}
			if len(edits) > 0 {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					return err
				}
			}
			fmt.Printf("%s: %s\n", path, countLabel(len(edits), "edit", "edits"))
		case cmd.Bool("diff"):
			fmt.Print(renderUnifiedDiff(path, source, out))
		default:
			if len(files) > 1 {
				fmt.Println(faintStyle.Render("==> " + path))
			}
			fmt.Print(out)
		}
	}
	return nil
}
