package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchRules reloads the rules file at path whenever it changes and passes
// the result to onChange. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so saves that
// rename a new file over path are seen as well as in-place writes. A reload
// that fails is logged and onChange is not called, so the previous rules
// stay in effect.
func WatchRules(ctx context.Context, path string, onChange func(*Rules)) error {
	path = filepath.Clean(path)
	if _, err := LoadRules(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("config: watching rules", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// Rename-over shows up as Create (or Rename) on the target name.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			rules, err := LoadRules(path)
			if err != nil {
				slog.Error("config: rules reload failed, keeping previous rules", "path", path, "err", err)
				continue
			}

			slog.Info("config: rules reloaded", "path", path, "allow_negative", rules.AllowNegative)
			onChange(rules)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
