// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jeranaias/i18ngen/internal/form"
)

// MaxIndent is the widest indent the JSON exporter accepts.
const MaxIndent = 8

// =============================================================================
// MAPPING
// =============================================================================

// Mapping is the folded key/value object. Keys keep the order in which
// they were first set; a later duplicate overwrites the value in place.
type Mapping struct {
	keys   []string
	values map[string]string
}

// Fold builds the mapping for a snapshot. Entries whose key is empty or
// whitespace-only are dropped. Keys and values are used as typed, without
// trimming.
func Fold(snap form.Snapshot) *Mapping {
	m := &Mapping{values: make(map[string]string, snap.Len())}
	snap.Each(func(_ int, e form.Entry) {
		if !e.HasKey() {
			return
		}
		if _, seen := m.values[e.Key]; !seen {
			m.keys = append(m.keys, e.Key)
		}
		m.values[e.Key] = e.Value
	})
	return m
}

// Len returns the number of distinct keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in first-set order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Map returns the mapping as a plain Go map.
func (m *Mapping) Map() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the mapping as a compact JSON object in key order.
// HTML characters are left as-is so the file reads like hand-written JSON.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string literal.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	// Encoder terminates every value with a newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the mapping as a flat JSON object.
type JSONExporter struct {
	// indent is the number of spaces per level; 0 means compact output.
	indent int
}

// NewJSONExporter creates a JSON exporter. indent is clamped to
// [0, MaxIndent]; 0 produces compact output with no trailing newline.
func NewJSONExporter(indent int) *JSONExporter {
	if indent < 0 {
		indent = 0
	}
	if indent > MaxIndent {
		indent = MaxIndent
	}
	return &JSONExporter{indent: indent}
}

// Export folds the snapshot and serializes it.
func (e *JSONExporter) Export(snap form.Snapshot) ([]byte, error) {
	compact, err := Fold(snap).MarshalJSON()
	if err != nil {
		return nil, err
	}
	if e.indent == 0 {
		return compact, nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", strings.Repeat(" ", e.indent)); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}
	return out.Bytes(), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
