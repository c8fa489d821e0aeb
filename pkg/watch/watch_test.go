package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/arthur-debert/subpack/pkg/errors"
)

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, dir string, run RunFunc, opts ...Option) *Watcher {
	t.Helper()
	opts = append([]Option{WithDebounce(testDebounce), WithLogger(zerolog.Nop())}, opts...)
	w := New(dir, run, opts...)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcher_RunsAtStart(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	startWatcher(t, dir, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_BurstCoalesced(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w := startWatcher(t, dir, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	// let the start-up quiet period pass
	time.Sleep(5 * testDebounce)

	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(dir, "app.js"), "v"+string(rune('0'+i)))
	}

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(5 * testDebounce)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, w.Runs())
}

func TestWatcher_IgnoresOwnWrites(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "app.js")
	writeFile(t, app, "built")
	var calls atomic.Int32

	startWatcher(t, dir, func(ctx context.Context) error {
		calls.Add(1)
		return os.WriteFile(app, []byte("rewritten"), 0644)
	}, WithOwnedFiles(app))

	time.Sleep(10 * testDebounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_ChangeDuringRunTriggersAnotherRun(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "app.js")
	writeFile(t, app, "built")
	var calls atomic.Int32

	startWatcher(t, dir, func(ctx context.Context) error {
		n := calls.Add(1)
		if err := os.WriteFile(app, []byte(fmt.Sprintf("rewritten %d", n)), 0644); err != nil {
			return err
		}
		if n == 2 {
			// a rebuild lands while this run is still going
			if err := os.WriteFile(filepath.Join(dir, "pages.js"), []byte("rebuilt"), 0644); err != nil {
				return err
			}
			time.Sleep(2 * testDebounce)
		}
		return nil
	}, WithOwnedFiles(app))

	time.Sleep(5 * testDebounce)
	writeFile(t, filepath.Join(dir, "index.js"), "1")

	require.Eventually(t, func() bool { return calls.Load() == 3 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(10 * testDebounce)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWatcher_OwnedFileChangedExternally(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "app.js")
	writeFile(t, app, "built")
	var calls atomic.Int32

	startWatcher(t, dir, func(ctx context.Context) error {
		calls.Add(1)
		return os.WriteFile(app, []byte("rewritten"), 0644)
	}, WithOwnedFiles(app))

	time.Sleep(5 * testDebounce)
	writeFile(t, app, "rebuilt by the bundler")

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_ContinuesAfterFailedRun(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	startWatcher(t, dir, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("rsync exploded")
	})

	time.Sleep(5 * testDebounce)
	writeFile(t, filepath.Join(dir, "a.js"), "1")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(5 * testDebounce)
	writeFile(t, filepath.Join(dir, "b.js"), "2")
	require.Eventually(t, func() bool { return calls.Load() == 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_Subdirectories(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "common")
	require.NoError(t, os.MkdirAll(existing, 0755))
	var calls atomic.Int32

	startWatcher(t, dir, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	time.Sleep(5 * testDebounce)

	writeFile(t, filepath.Join(existing, "vendor.js"), "x")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(5 * testDebounce)
	created := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(created, 0755))
	require.Eventually(t, func() bool { return calls.Load() == 3 }, 2*time.Second, 10*time.Millisecond)

	// wait for the quiet period, then write inside the new directory
	time.Sleep(5 * testDebounce)
	writeFile(t, filepath.Join(created, "index.js"), "y")
	require.Eventually(t, func() bool { return calls.Load() == 4 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresAtomicTempFiles(t *testing.T) {
	assert.True(t, isTempFile("/out/.app.js.0b9c-uuid.tmp"))
	assert.False(t, isTempFile("/out/app.js"))
	assert.False(t, isTempFile("/out/notes.tmp"))
}

func TestWatcher_StartErrors(t *testing.T) {
	dir := t.TempDir()

	w := New(filepath.Join(dir, "missing"), func(context.Context) error { return nil })
	err := w.Start(context.Background())
	require.Error(t, err)
	assert.True(t, perrors.IsErrorCode(err, perrors.ErrInvalidInput))

	file := filepath.Join(dir, "file")
	writeFile(t, file, "x")
	w = New(file, func(context.Context) error { return nil })
	err = w.Start(context.Background())
	require.Error(t, err)
	assert.True(t, perrors.IsErrorCode(err, perrors.ErrInvalidInput))
}

func TestWatcher_StopIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, func(context.Context) error { return nil }, WithLogger(zerolog.Nop()))
	require.NoError(t, w.Start(context.Background()))

	assert.NoError(t, w.Stop())
	assert.NotPanics(t, func() { _ = w.Stop() })
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	w := New(dir, func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(testDebounce), WithLogger(zerolog.Nop()))
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Stop() })

	cancel()
	time.Sleep(5 * testDebounce)
	writeFile(t, filepath.Join(dir, "a.js"), "1")
	time.Sleep(5 * testDebounce)

	assert.Equal(t, int32(1), calls.Load())
}
