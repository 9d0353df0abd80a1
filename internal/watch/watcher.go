package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called each time the watcher triggers a regeneration.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult describes a single regeneration.
type RunResult struct {
	// Requirements is the number of specifiers written.
	Requirements int
	// Changes summarises the difference to the previous output.
	Changes string
	// OutputPath is where the requirements were written.
	OutputPath string
}

// Options configures the watch behaviour.
type Options struct {
	// Files are the files whose changes trigger a regeneration. Their parent
	// directories are watched so that atomic saves are seen.
	Files []string

	// Debounce is the quiet period before triggering a rebuild.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 300 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run performs an initial generation, then regenerates on every relevant
// change until ctx is cancelled or SIGINT/SIGTERM is received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if len(opts.Files) == 0 {
		return fmt.Errorf("no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	targets, err := addFiles(watcher, opts.Files)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", strings.Join(opts.Files, ", "), opts.Debounce)

	runs := make(chan string, 1)

	debouncer := NewDebouncer(opts.Debounce, func(path string) {
		select {
		case runs <- path:
		default:
			// A run is already queued; it will pick up this change too.
		}
	})
	defer debouncer.Stop()

	doRun(sigCtx, opts, runFn, "(initial)")

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "shutting down watcher")
			return nil

		case path := <-runs:
			doRun(sigCtx, opts, runFn, path)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, targets) {
				continue
			}

			opts.Logger.Debug("change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single regeneration and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d requirements)\n", now, trigger, result.Requirements)

	if result.Changes != "" {
		fmt.Fprintf(opts.Out, "  changes: %s\n", result.Changes)
	}
}

// addFiles watches the parent directory of every file and returns the set
// of absolute file paths that count as relevant.
func addFiles(watcher *fsnotify.Watcher, files []string) (map[string]bool, error) {
	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", f, err)
		}

		targets[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %q: %w", dir, err)
		}

		dirs[dir] = true
	}

	return targets, nil
}

// isRelevant reports whether event touches one of the target files.
func isRelevant(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return targets[abs]
}
