// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/i18ngen/internal/form"
)

// snapshotFeed carries store notifications into the Bubble Tea loop. Only
// the newest snapshot is kept; a burst of edits wakes the loop once.
type snapshotFeed struct {
	mu     sync.Mutex
	latest form.Snapshot
	has    bool
	closed bool
	signal chan struct{}
}

func newSnapshotFeed() *snapshotFeed {
	return &snapshotFeed{signal: make(chan struct{}, 1)}
}

// publish is registered as a form.Listener.
func (f *snapshotFeed) publish(snap form.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if !f.has || snap.Version > f.latest.Version {
		f.latest = snap
		f.has = true
	}
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// take returns the pending snapshot, if any, and clears it.
func (f *snapshotFeed) take() (form.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.has {
		return form.Snapshot{}, false
	}
	f.has = false
	return f.latest, true
}

// close wakes any waiter and drops later publishes.
func (f *snapshotFeed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.signal)
}

// wait blocks until something is published and delivers it as a message.
func (f *snapshotFeed) wait() tea.Cmd {
	return func() tea.Msg {
		if _, open := <-f.signal; !open {
			return nil
		}
		snap, ok := f.take()
		return snapshotMsg{snapshot: snap, ok: ok}
	}
}
