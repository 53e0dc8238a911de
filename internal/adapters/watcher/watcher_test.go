package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/watcher"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_Events(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target"), domain.DirPerm))

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "target", "out.class"), []byte("x"), domain.FilePerm))
	want := filepath.Join(root, "src", "Main.java")
	require.NoError(t, os.WriteFile(want, []byte("class Main {}"), domain.FilePerm))

	got := make(chan ports.WatchEvent, 1)
	go func() {
		for e := range w.Events() {
			if filepath.Dir(e.Path) == filepath.Join(root, "target") {
				t.Errorf("event from skipped directory: %s", e.Path)
			}
			if e.Path == want {
				got <- e
				return
			}
		}
	}()

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("no event for created file")
	}
}
