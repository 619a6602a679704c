package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForPath(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case got, ok := <-ch:
			require.True(t, ok, "event channel closed before %q arrived", want)
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestStartWatcherNoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}

func TestStartWatcherInitialScan(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "existente.pdf")
	touch(t, existing)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	require.NoError(t, err)

	waitForPath(t, evCh, existing)
}

func TestStartWatcherEmitsNewPDFs(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	created := filepath.Join(root, "nuevo.pdf")
	touch(t, created)

	waitForPath(t, evCh, created)
}

func TestStartWatcherIgnoresNonPDF(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}})
	require.NoError(t, err)

	touch(t, filepath.Join(root, "notas.txt"))
	wanted := filepath.Join(root, "examen.pdf")
	touch(t, wanted)

	// Only the PDF arrives.
	waitForPath(t, evCh, wanted)
	select {
	case got := <-evCh:
		assert.Equal(t, wanted, got, "unexpected extra event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStartWatcherClosesOnCancel(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}})
	require.NoError(t, err)

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-evCh:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event channel not closed after cancel")
		}
	}
}

func TestStartWatcherMissingRoot(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{
		Roots: []string{filepath.Join(t.TempDir(), "no-existe")},
	})
	assert.Error(t, err)
}
