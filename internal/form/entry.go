// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one row of the form: a translation key and its value.
type Entry struct {
	// ID identifies the row across re-renders. It is never exported.
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewEntry returns an entry with a fresh row ID and the given contents.
func NewEntry(key, value string) Entry {
	return Entry{ID: uuid.NewString(), Key: key, Value: value}
}

// HasKey reports whether the key is non-blank after trimming whitespace.
// A byte order mark counts as whitespace; pasted file text often starts
// with one.
func (e Entry) HasKey() bool {
	return strings.TrimFunc(e.Key, isBlankRune) != ""
}

func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// =============================================================================
// FIELD
// =============================================================================

// Field names the half of an entry an update targets.
type Field string

const (
	FieldKey   Field = "key"
	FieldValue Field = "value"
)

// ParseField converts user input ("key", "value", "k", "v") to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "key", "k":
		return FieldKey, nil
	case "value", "val", "v":
		return FieldValue, nil
	default:
		return "", fmt.Errorf("unknown field %q: must be key or value", s)
	}
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	return f == FieldKey || f == FieldValue
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is the ordered sequence of entries at one instant. Snapshots
// handed out by a Store are never modified afterwards; Entries returns a
// copy so callers cannot reach the shared backing array either.
type Snapshot struct {
	entries []Entry
	// Version increases by one with every published snapshot.
	Version uint64
}

// NewSnapshot builds a snapshot from a copy of entries.
func NewSnapshot(entries []Entry) Snapshot {
	return Snapshot{entries: cloneEntries(entries)}
}

// Len returns the number of entries.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// At returns the entry at position i and whether i was in range.
func (s Snapshot) At(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Entries returns a copy of the ordered entries.
func (s Snapshot) Entries() []Entry {
	return cloneEntries(s.entries)
}

// Each calls fn for every entry in order.
func (s Snapshot) Each(fn func(i int, e Entry)) {
	for i, e := range s.entries {
		fn(i, e)
	}
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
