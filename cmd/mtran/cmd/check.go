package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/compiler"
	"github.com/glebzikunov/MTRAN/internal/diag"
)

var (
	checkTree      bool
	checkWatch     bool
	checkFormat    string
	checkMaxErrors int
)

const watchDebounce = 300 * time.Millisecond

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Lex, parse and type-check a source file",
	Long: `Runs the full front end on a source file and prints every diagnostic
with the offending source line. The exit status is non-zero when any
error was reported.

With --watch the file is checked again each time it is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkTree, "tree", false, "print the syntax tree when the file is valid (default from config)")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-check on every change")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "output format (text, yaml)")
	checkCmd.Flags().IntVar(&checkMaxErrors, "max-errors", -1, "cap on reported semantic errors (0 = no cap, default from config)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkFormat {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", checkFormat)
	}
	if !cmd.Flags().Changed("tree") {
		checkTree = cfg.Check.ShowTree
	}
	if checkWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, cmd.OutOrStdout(), args[0])
	}
	return checkOnce(cmd.OutOrStdout(), args[0])
}

func compileOptions() []compiler.Option {
	maxErrors := cfg.Check.MaxErrors
	if checkMaxErrors >= 0 {
		maxErrors = checkMaxErrors
	}
	return []compiler.Option{
		compiler.WithLogger(logger),
		compiler.WithMaxErrors(maxErrors),
	}
}

func checkOnce(w io.Writer, path string) error {
	r, err := compiler.CompileFile(path, compileOptions()...)
	if err != nil {
		return err
	}
	if err := report(w, r); err != nil {
		return err
	}
	if r.Failed() {
		return errFailed
	}
	return nil
}

// checkReport is the yaml form of a run.
type checkReport struct {
	File        string            `yaml:"file"`
	Run         string            `yaml:"run"`
	Stage       string            `yaml:"stage"`
	OK          bool              `yaml:"ok"`
	Diagnostics []diag.Diagnostic `yaml:"diagnostics"`
	Truncated   int               `yaml:"truncated,omitempty"`
}

func report(w io.Writer, r *compiler.Result) error {
	if checkFormat == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(checkReport{
			File:        r.Filename,
			Run:         r.RunID,
			Stage:       r.Stage.String(),
			OK:          r.OK(),
			Diagnostics: r.Diagnostics,
			Truncated:   r.Truncated,
		})
	}

	rd := diag.Renderer{Color: cfg.General.Color}
	if err := rd.Render(w, r.Filename, r.Source, r.Diagnostics); err != nil {
		return err
	}
	if r.OK() && checkTree {
		p := ast.Printer{Indent: cfg.Tree.Indent}
		if err := p.Fprint(w, r.Program); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", r.Filename, rd.Summary(len(r.Diagnostics), r.Truncated))
	return err
}

// watch checks path once, then again after every write to it. The
// directory is watched rather than the file so editors that replace the
// file on save are still seen.
func watch(ctx context.Context, w io.Writer, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		if err := checkOnce(w, path); err != nil && !errors.Is(err, errFailed) {
			printError("check failed", err)
		}
	}
	run()
	logger.Info("watching", "file", abs)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			fmt.Fprintln(w)
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
