// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package form holds the editable list of translation entries.
//
// A Store owns one ordered sequence of Entry values for one editing
// session. Every successful action produces a new immutable Snapshot that
// is pushed to subscribers, so renderers (terminal UI, shell, HTML page)
// never reach into the store to decide what to draw.
//
// # Key Types
//
//   - Entry: one key/value pair plus a stable row ID
//   - Field: which half of an entry an update targets
//   - Snapshot: the full ordered sequence at one instant
//   - Store: the mutable sequence and its subscribers
//
// # Usage
//
//	store := form.NewStore(1)
//	unsubscribe := store.Subscribe(func(s form.Snapshot) { render(s) })
//	defer unsubscribe()
//
//	store.Add()
//	store.Update(0, form.FieldKey, "hello")
//	store.Update(0, form.FieldValue, "Hello")
//	store.Remove(1)
//
// Keys are deliberately not validated while editing: blank and duplicate
// keys are legal here and only resolved at export time.
package form
