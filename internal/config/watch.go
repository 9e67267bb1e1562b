// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// LIVE RELOAD
// =============================================================================

// DefaultWatchDebounce is how long Watch waits after the last change event
// before reloading.
const DefaultWatchDebounce = 200 * time.Millisecond

// ReloadFunc receives a freshly loaded config. It is not called when the
// reloaded file fails to parse or validate.
type ReloadFunc func(cfg *Config)

// Watch reloads the config file at path whenever it changes and passes the
// result to fn. It watches the parent directory so editors and atomic
// writes that replace the file are picked up. Watch returns once the
// watcher is running; it stops when ctx is cancelled.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	return WatchWithDebounce(ctx, path, DefaultWatchDebounce, fn)
}

// WatchWithDebounce is Watch with an explicit debounce interval.
func WatchWithDebounce(ctx context.Context, path string, debounce time.Duration, fn ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go watchLoop(ctx, watcher, abs, debounce, fn)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, fn ReloadFunc) {
	defer watcher.Close()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("CONFIG_WATCH_PANIC | path=%s panic=%v", path, r)
		}
	}()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			cfg, err := LoadFromPath(path)
			if err != nil {
				log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%v", path, err)
				continue
			}
			log.Printf("CONFIG_RELOADED | path=%s", path)
			fn(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG_WATCH_ERROR | path=%s error=%v", path, err)
		}
	}
}
