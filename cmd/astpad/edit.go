package main

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/astpad/astpad/engine"
	"github.com/astpad/astpad/engine/sitter"
)

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit a file with live rule matches",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rule",
				Aliases: []string{"r"},
				Usage:   "YAML rule file, reloaded when it changes on disk",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "inline tree-sitter query run against the buffer",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "language override",
			},
			&cli.BoolFlag{
				Name:  "readonly",
				Usage: "reject buffer edits",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log to astpad.log",
			},
		},
		Action: runEdit,
	}
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		f, err := tea.LogToFile("astpad.log", "astpad")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	var cfg appConfig
	if cfg.Path = cmd.Args().First(); cfg.Path != "" {
		text, err := readSource(cfg.Path)
		if err != nil {
			return err
		}
		cfg.Text = text
	}

	cfg.Language = cmd.String("language")
	if cfg.Language == "" && cfg.Path != "" {
		if lang, err := sitter.ByExtension(filepath.Ext(cfg.Path)); err == nil {
			cfg.Language = lang.Name
		}
	}
	if cfg.Language != "" {
		// Canonicalize aliases such as ts or yml.
		if lang, err := sitter.Lookup(cfg.Language); err == nil {
			cfg.Language = lang.Name
		}
	}

	cfg.ReadOnly = cmd.Bool("readonly")

	rulePath := cmd.String("rule")
	if rulePath != "" && cmd.String("query") != "" {
		return errors.New("--rule and --query are mutually exclusive")
	}
	if rulePath != "" {
		rule, err := loadRule(rulePath)
		if err != nil {
			return err
		}
		cfg.Rule, cfg.HasRule = rule, true
	} else if q := cmd.String("query"); q != "" {
		// The buffer's language fills in at scan time.
		cfg.Rule, cfg.HasRule = engine.Rule{Query: q}, true
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if rulePath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		// Watch the directory: editors that save through a rename would
		// otherwise detach the watch from the file.
		if err := watcher.Add(filepath.Dir(rulePath)); err != nil {
			return err
		}
		go watchRule(p, watcher, rulePath)
	}

	_, err = p.Run()
	return err
}

// watchRule reloads the rule file on every write and hands the result
// to the program. Parse failures travel too so the editor can show
// them without losing the last good rule.
func watchRule(p *tea.Program, watcher *fsnotify.Watcher, path string) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			rule, err := loadRule(path)
			p.Send(ruleMsg{rule: rule, err: err})
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
