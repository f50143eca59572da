package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dangerclosesec/polar/internal/report"
	"github.com/dangerclosesec/polar/policy/migration"
	"github.com/dangerclosesec/polar/policy/parser"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	watch      bool
)

func init() {
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print line summaries as JSON")
	checkCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check files when they change")
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a .polar file",
	Long:  `Parse a .polar file and display its contents.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, _, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}

		reports := report.Summarize(lines)
		out := cmd.OutOrStdout()

		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}

		fmt.Fprintf(out, "Successfully parsed %s\n", args[0])
		counts := report.Counts(reports)
		for _, kind := range report.SortedKinds(counts) {
			fmt.Fprintf(out, "  %s: %d\n", kind, counts[kind])
		}

		if verbose {
			fmt.Fprintln(out)
			for _, r := range reports {
				fmt.Fprintf(out, "%d:%d %s\n", r.Line, r.Column, r.Text)
			}
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check .polar files for syntax errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := checkFiles(cmd.OutOrStdout(), args)

		if watch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchFiles(ctx, cmd.OutOrStdout(), args)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func checkFiles(out io.Writer, paths []string) int {
	failed := 0
	for _, path := range paths {
		if err := checkFile(out, path); err != nil {
			failed++
		}
	}
	return failed
}

func checkFile(out io.Writer, path string) error {
	lines, _, err := parser.ParseFile(path)
	if err != nil {
		fmt.Fprintf(out, "FAIL %s\n  %v\n", path, err)
		return err
	}
	fmt.Fprintf(out, "ok   %s (%d lines)\n", path, len(lines))
	return nil
}

// watchFiles watches the parent directories so files replaced on save are still seen
func watchFiles(ctx context.Context, out io.Writer, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string)
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = path
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	logger.Info("watching for changes", "files", len(watched))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, ok := watched[filepath.Clean(event.Name)]
			if !ok || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("file changed", "path", path, "op", event.Op.String())
			checkFile(out, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

var diffCmd = &cobra.Command{
	Use:   "diff [old] [new]",
	Short: "Show differences between two .polar files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldModel, err := loadModel(args[0])
		if err != nil {
			return err
		}
		newModel, err := loadModel(args[1])
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), migration.GenerateDiff(oldModel, newModel).String())
		return nil
	},
}

func loadModel(path string) (*migration.PolicyModel, error) {
	lines, src, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return migration.BuildModel(lines, src), nil
}
