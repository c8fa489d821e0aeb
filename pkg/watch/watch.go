// Package watch re-runs the pipeline whenever a build output directory
// changes. Bursts of events are coalesced into a single run.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/filesystem"
	"github.com/arthur-debert/subpack/pkg/logging"
)

// DefaultDebounce is the quiet period after the last event before a run
const DefaultDebounce = 300 * time.Millisecond

const minTick = 10 * time.Millisecond

// RunFunc performs one pipeline run over the watched directory
type RunFunc func(ctx context.Context) error

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the debounce duration
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the watcher logger
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// WithFS sets the filesystem used to walk the tree and hash owned files
func WithFS(fsys filesystem.FS) Option {
	return func(w *Watcher) { w.fs = fsys }
}

// WithOwnedFiles names files the run itself rewrites. An event on an owned
// file is ignored while its content still matches what the last run left.
func WithOwnedFiles(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			w.owned[filepath.Clean(p)] = ""
		}
	}
}

// Watcher monitors a directory tree and calls a RunFunc after changes settle.
// Writes made by the run to its owned files do not trigger another run.
type Watcher struct {
	dir      string
	run      RunFunc
	debounce time.Duration
	logger   zerolog.Logger
	fs       filesystem.FS

	// owned maps each owned file to its content hash after the last run.
	// Only touched from Start and the loop goroutine.
	owned map[string]string

	fsWatcher *fsnotify.Watcher
	cancel    context.CancelFunc
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	mu        sync.Mutex
	lastEvent time.Time
	dirty     bool
	runs      int
}

// New creates a Watcher for dir
func New(dir string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		run:      run,
		debounce: DefaultDebounce,
		logger:   logging.GetLogger("watch"),
		owned:    make(map[string]string),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.fs == nil {
		w.fs = filesystem.NewOS()
	}
	return w
}

// Start watches dir and its existing subdirectories, performs the first run,
// then keeps running in the background until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	info, err := w.fs.Stat(w.dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot watch %s", w.dir).
			WithDetail(errors.DetailPath, w.dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", w.dir).
			WithDetail(errors.DetailPath, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrUnknown, "failed to create file watcher")
	}
	w.fsWatcher = fsw

	if err := w.addTree(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)

	w.logger.Info().Str("dir", w.dir).Dur("debounce", w.debounce).Msg("Watching for changes")
	w.runOnce(ctx)

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop terminates the watcher and waits for an in-flight run to finish.
// It is safe to call Stop multiple times.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		if w.cancel != nil {
			w.cancel()
		}
	})
	w.wg.Wait()
	if w.fsWatcher != nil {
		return w.fsWatcher.Close()
	}
	return nil
}

// Runs returns the number of runs performed so far
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	tick := w.debounce
	if tick < minTick {
		tick = minTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("Watcher error")

		case <-ticker.C:
			if w.ready() {
				w.runOnce(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || isTempFile(event.Name) {
		return
	}

	path := filepath.Clean(event.Name)
	if last, ok := w.owned[path]; ok && w.hashFile(path) == last {
		w.logger.Trace().Str("path", path).Msg("Owned file unchanged since last run")
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := w.fs.Stat(path); err == nil && info.IsDir() {
			if err := w.addTree(path); err != nil {
				w.logger.Warn().Err(err).Str("path", path).Msg("Failed to watch new directory")
			}
		}
	}

	w.logger.Trace().Str("path", path).Str("op", event.Op.String()).Msg("Change detected")

	w.mu.Lock()
	w.lastEvent = time.Now()
	w.dirty = true
	w.mu.Unlock()
}

func (w *Watcher) ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty || time.Since(w.lastEvent) < w.debounce {
		return false
	}
	w.dirty = false
	return true
}

func (w *Watcher) runOnce(ctx context.Context) {
	w.mu.Lock()
	w.runs++
	n := w.runs
	w.mu.Unlock()

	logger := w.logger.With().Int("run", n).Logger()
	logger.Info().Msg("Running pipeline")

	start := time.Now()
	if err := w.run(ctx); err != nil {
		logger.Error().Err(err).Msg("Run failed, still watching")
	} else {
		logger.Info().Dur("duration", time.Since(start)).Msg("Run finished")
	}

	w.snapshotOwned()
}

func (w *Watcher) addTree(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrUnknown, "failed to watch %s", dir).
			WithDetail(errors.DetailPath, dir)
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnknown, "failed to list %s", dir).
			WithDetail(errors.DetailPath, dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.addTree(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// snapshotOwned records the content of every owned file as the run left it
func (w *Watcher) snapshotOwned() {
	for path := range w.owned {
		w.owned[path] = w.hashFile(path)
	}
}

// hashFile returns the content hash of path, or "" when it cannot be read
func (w *Watcher) hashFile(path string) string {
	data, err := w.fs.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// isTempFile matches the temporary files written before an atomic rename
func isTempFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".tmp")
}
