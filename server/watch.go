package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/amonks/workshop/internal/config"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch reapplies config whenever the global or project config file changes.
// Directories are watched rather than files so that editors which replace
// files on save are still seen.
func (s *Server) watch(ctx context.Context) error {
	paths, err := config.Paths(s.configDir)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		targets[filepath.Clean(path)] = true
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("config dir missing, not watching", zap.String("dir", dir))
				continue
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			s.logger.Info("config changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if err := s.ApplyConfigFile(); err != nil {
				s.logger.Warn("reload config", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watcher", zap.Error(err))
		}
	}
}
