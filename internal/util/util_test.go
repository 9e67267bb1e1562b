// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.json")
	data := []byte(`{"hello":"Hello"}`)

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "deep", "translations.json")

	if err := AtomicWriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.json")

	if err := AtomicWriteFile(path, []byte(`{"a":"1"}`), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "{}" {
		t.Errorf("Content = %q, want %q", content, "{}")
	}
}

func TestAtomicWriteFile_FailureLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the final rename fail
	target := filepath.Join(dir, "translations.json")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	if err := AtomicWriteFile(target, []byte("{}"), 0644); err == nil {
		t.Fatal("Expected error when target is a directory")
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, TempPattern))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("Temp files left behind: %v", leftovers)
	}
}

func TestAtomicWriteFileWithDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newdir", "translations.json")

	if err := AtomicWriteFileWithDir(path, []byte("{}"), 0600, 0700); err != nil {
		t.Fatalf("AtomicWriteFileWithDir failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("File mode = %o, want 600", info.Mode().Perm())
	}
}

// =============================================================================
// STRING WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"日本", 4},
		{"a日b", 4},
	}

	for _, tt := range tests {
		if got := StringWidth(tt.input); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny width", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"wide runes", "日本語テキスト", 7, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWidth(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if StringWidth(got) > tt.maxWidth {
				t.Errorf("result width %d exceeds %d", StringWidth(got), tt.maxWidth)
			}
		})
	}
}

func TestPadWidth(t *testing.T) {
	if got := PadWidth("ab", 4); got != "ab  " {
		t.Errorf("PadWidth(ab, 4) = %q", got)
	}
	if got := PadWidth("日", 4); got != "日  " {
		t.Errorf("PadWidth(日, 4) = %q", got)
	}
	if got := PadWidth("abcdef", 3); got != "abcdef" {
		t.Errorf("PadWidth should not cut, got %q", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("a\nb\r\nc\td"); got != "a b c d" {
		t.Errorf("SingleLine = %q", got)
	}
}
