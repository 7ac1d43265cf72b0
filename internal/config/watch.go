package config

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reloads path whenever it is written and hands each new Config to
// onChange. A file that fails to load is logged and the previous Config
// stays in use. It runs until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "config: create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return errors.Wrapf(err, "config: watch %q", path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save through a rename, so catch Create too.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				log.Println("config reload failed, keeping previous config:", err)
				continue
			}
			log.Println("config reloaded", path)
			onChange(cfg)

			rewatch(watcher, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("config watcher error:", err)
		}
	}
}

// rewatch adds path again after an editor replaced the file. A failure means
// no further reloads, so it is logged.
func rewatch(watcher *fsnotify.Watcher, path string) {
	if err := watcher.Add(path); err != nil {
		log.Println("config watcher error:", err)
	}
}
