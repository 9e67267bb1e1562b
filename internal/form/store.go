// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"sync"
)

// MaxInitialRows caps how many blank rows a new store may start with.
const MaxInitialRows = 100

// Listener receives every snapshot a Store publishes.
type Listener func(Snapshot)

// =============================================================================
// STORE
// =============================================================================

// Store is the ordered, mutable list of entries for one editing session.
//
// Each action runs to completion under the store lock, then the resulting
// snapshot is delivered to listeners in registration order. Delivery is
// serialized, so listeners observe snapshots in version order. A listener
// must not call a mutating Store method synchronously; hand the work to
// another goroutine or event loop instead.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	version uint64

	// notifyMu serializes delivery so listeners see versions in order
	notifyMu  sync.Mutex
	listeners []registration
	nextID    int
}

type registration struct {
	id int
	fn Listener
}

// NewStore creates a store holding initialRows blank entries.
// Negative values are treated as zero, large values are capped.
func NewStore(initialRows int) *Store {
	if initialRows < 0 {
		initialRows = 0
	}
	if initialRows > MaxInitialRows {
		initialRows = MaxInitialRows
	}

	entries := make([]Entry, 0, initialRows)
	for i := 0; i < initialRows; i++ {
		entries = append(entries, NewEntry("", ""))
	}
	return &Store{entries: entries}
}

// =============================================================================
// ACTIONS
// =============================================================================

// Add appends an entry with an empty key and value and returns it.
func (s *Store) Add() Entry {
	entry := NewEntry("", "")

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.commitLocked()
	return entry
}

// Remove deletes the entry at position. Later entries shift down by one.
// An out-of-range position changes nothing and returns false.
func (s *Store) Remove(position int) bool {
	s.mu.Lock()
	if position < 0 || position >= len(s.entries) {
		s.mu.Unlock()
		return false
	}

	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:position]...)
	next = append(next, s.entries[position+1:]...)
	s.entries = next
	s.commitLocked()
	return true
}

// Update sets one field of the entry at position. Any text is accepted,
// including empty and whitespace-only strings. An out-of-range position
// or unknown field changes nothing and returns false.
func (s *Store) Update(position int, field Field, value string) bool {
	if !field.Valid() {
		return false
	}

	s.mu.Lock()
	if position < 0 || position >= len(s.entries) {
		s.mu.Unlock()
		return false
	}

	// Copy-on-write keeps previously published snapshots untouched
	next := cloneEntries(s.entries)
	switch field {
	case FieldKey:
		next[position].Key = value
	case FieldValue:
		next[position].Value = value
	}
	s.entries = next
	s.commitLocked()
	return true
}

// Replace swaps in a whole new sequence as a single action. Entries
// without an ID get a fresh one.
func (s *Store) Replace(entries []Entry) {
	next := cloneEntries(entries)
	for i := range next {
		if next[i].ID == "" {
			next[i] = NewEntry(next[i].Key, next[i].Value)
		}
	}

	s.mu.Lock()
	s.entries = next
	s.commitLocked()
}

// =============================================================================
// READS
// =============================================================================

// Snapshot returns the current sequence.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{entries: s.entries, Version: s.version}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn to receive every snapshot published after this
// call. It returns a function that removes the registration.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.notifyMu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, registration{id: id, fn: fn})
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.notifyMu.Lock()
			defer s.notifyMu.Unlock()
			for i, reg := range s.listeners {
				if reg.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// commitLocked bumps the version, releases s.mu and publishes the new
// snapshot. Must be called with s.mu held.
func (s *Store) commitLocked() {
	s.version++
	snap := Snapshot{entries: s.entries, Version: s.version}

	// Take the delivery lock before releasing the state lock so a later
	// action cannot overtake this one's notifications.
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, reg := range s.listeners {
		reg.fn(snap)
	}
}
