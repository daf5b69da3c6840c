package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/workshop/app"
	"github.com/amonks/workshop/internal/config"
	"github.com/amonks/workshop/internal/testsupport"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchReappliesProjectConfig(t *testing.T) {
	testsupport.SetupTestHome(t)
	dir := t.TempDir()
	appCtx := app.New(app.Options{Config: config.Default()})
	server, err := NewServer(ServerOptions{
		Context:     appCtx,
		ConfigDir:   dir,
		WatchConfig: true,
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.watch(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	contents := "[todos]\nfilter = \"active\"\n\n[preferences]\ntheme = \"dark\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ProjectFile), []byte(contents), 0o644))

	require.Eventually(t, func() bool {
		var filter todo.Filter
		var theme user.Theme
		appCtx.Do(func(st app.Stores) {
			filter = st.Todos.Filter()
			theme = st.Users.Preferences().Theme
		})
		return filter == todo.FilterActive && theme == user.ThemeDark
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	testsupport.SetupTestHome(t)
	dir := t.TempDir()
	appCtx := app.New(app.Options{Config: config.Default()})
	server, err := NewServer(ServerOptions{
		Context:     appCtx,
		ConfigDir:   dir,
		WatchConfig: true,
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.watch(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.toml"), []byte("[todos]\nfilter = \"active\"\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	appCtx.Do(func(st app.Stores) {
		require.Equal(t, todo.FilterAll, st.Todos.Filter())
	})
}
