// Command astpad searches, rewrites and inspects source code with
// tree-sitter rules, and opens an interactive editor that highlights
// rule matches as you type.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/astpad/astpad"
	"github.com/astpad/astpad/engine"
)

func main() {
	app := &cli.Command{
		Name:    "astpad",
		Usage:   "structural search and rewrite for source code",
		Version: astpad.Version(),
		Commands: []*cli.Command{
			scanCommand(),
			rewriteCommand(),
			dumpCommand(),
			editCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "astpad:", err)
		os.Exit(1)
	}
}

var errNoFiles = errors.New("no input files")

// loadRule reads and validates a YAML rule file.
func loadRule(path string) (engine.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Rule{}, err
	}
	r, err := engine.ParseRule(data)
	if err != nil {
		return engine.Rule{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// readSource reads a source file, or stdin when path is "-".
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
