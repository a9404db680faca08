package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dyluth/lineblame/internal/blame"
	"github.com/dyluth/lineblame/internal/config"
	"github.com/dyluth/lineblame/internal/git"
	"github.com/dyluth/lineblame/internal/printer"
	"github.com/spf13/cobra"
)

// debugEnv enables progress logging to stderr
const debugEnv = "LINEBLAME_DEBUG"

// newStore returns the preference store for this platform; replaced in tests
var newStore = func() (config.Store, error) {
	if runtime.GOOS == "darwin" {
		return config.NewDefaultsStore(), nil
	}
	path, err := config.DefaultFilePath()
	if err != nil {
		return nil, err
	}
	return config.NewFileStore(path), nil
}

func runBlame(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	logger := log.New(io.Discard, "", 0)
	if os.Getenv(debugEnv) != "" {
		logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	}

	// Phase 1: Resolve the file; git runs from its directory
	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	dir, file := filepath.Dir(absPath), filepath.Base(absPath)

	checker := git.NewChecker()
	isRepo, err := checker.IsGitRepository(dir)
	if err != nil {
		return printer.Error(
			"git not available",
			fmt.Sprintf("Error: %v", err),
			[]string{"Install Git: https://git-scm.com/downloads"},
		)
	}
	if !isRepo {
		return printer.ErrorWithContext(
			"not a Git repository",
			"The file is not inside a Git working tree, so it has no line history.",
			map[string]string{"File": absPath},
			nil,
		)
	}

	// Phase 2: Preferences
	store, err := newStore()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	cfg, err := config.Load(store)
	if err != nil {
		return printer.Error(
			"invalid preferences",
			fmt.Sprintf("Error: %v", err),
			[]string{fmt.Sprintf("%s must be a positive number of days and %s four numbers \"R G B A\"",
				config.RecentDaysKey, config.RecentColorKey)},
		)
	}
	tmpl, err := cfg.ColorTemplate()
	if err != nil {
		return fmt.Errorf("invalid %s: %w", config.RecentColorKey, err)
	}
	logger.Printf("[INFO] Annotating %s (window %.1f days, color %s)", absPath, cfg.RecentDays, tmpl)

	// Phase 3: Annotate
	annotator := blame.NewAnnotator(git.BlameSource{Dir: dir}, git.LogSource{Dir: dir}, blame.Options{
		Window: cfg.Window(),
		Color:  tmpl,
		Logger: logger,
	})
	annotations, err := annotator.Annotate(ctx, file)
	if err != nil {
		return annotateError(absPath, err)
	}
	logger.Printf("[INFO] Annotated %d lines", len(annotations))

	// Phase 4: Output
	out := cmd.OutOrStdout()
	indent := false
	if f, ok := out.(*os.File); ok {
		indent = printer.IsTerminal(f)
	}
	return printer.JSON(out, annotations, indent)
}

// annotateError renders a failed annotation run for the user
func annotateError(path string, err error) error {
	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) {
		return printer.ErrorWithContext(
			"git failed",
			cmdErr.Stderr,
			map[string]string{"File": path, "Command": "git " + strings.Join(cmdErr.Args, " ")},
			[]string{"Check that the file is committed to the repository"},
		)
	}

	var formatErr *blame.FormatError
	if errors.As(err, &formatErr) {
		return printer.ErrorWithContext(
			"unexpected git blame output",
			fmt.Sprintf("Error: %v", formatErr),
			map[string]string{"File": path},
			nil,
		)
	}

	return printer.ErrorWithContext("annotation failed", fmt.Sprintf("Error: %v", err), map[string]string{"File": path}, nil)
}
