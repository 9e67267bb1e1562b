// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/i18ngen/internal/export"
	"github.com/jeranaias/i18ngen/internal/form"
)

func newTestShell(t *testing.T, rows int) (*Shell, *form.Store, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	store := form.NewStore(rows)
	var out bytes.Buffer
	sh := NewShell(store, export.NewJSONExporter(0), &export.Options{OutputDir: dir, Filename: export.DefaultFilename}, &out)
	t.Cleanup(sh.Close)
	return sh, store, &out, dir
}

func mustExec(t *testing.T, sh *Shell, line string) {
	t.Helper()
	if _, err := sh.Exec(line); err != nil {
		t.Fatalf("Exec(%q): %v", line, err)
	}
}

func TestShellAddSetExport(t *testing.T) {
	sh, _, out, dir := newTestShell(t, 0)

	mustExec(t, sh, "add")
	mustExec(t, sh, "set 0 key hello")
	mustExec(t, sh, "set 0 value Hello, world")
	mustExec(t, sh, "add")
	mustExec(t, sh, "add")
	mustExec(t, sh, "set 2 k bye")
	mustExec(t, sh, "set 2 v Bye")
	mustExec(t, sh, "export")

	data, err := os.ReadFile(filepath.Join(dir, export.DefaultFilename))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"hello":"Hello, world","bye":"Bye"}` {
		t.Errorf("export = %s", data)
	}
	if !strings.Contains(out.String(), "Wrote ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestShellSetKeepsInnerSpacing(t *testing.T) {
	sh, store, _, _ := newTestShell(t, 1)

	mustExec(t, sh, "set 0 value   two  spaces ")
	e, _ := store.Snapshot().At(0)
	if e.Value != "  two  spaces " {
		t.Errorf("value = %q", e.Value)
	}

	mustExec(t, sh, "set 0 value")
	e, _ = store.Snapshot().At(0)
	if e.Value != "" {
		t.Errorf("value = %q, want empty", e.Value)
	}
}

func TestShellRemove(t *testing.T) {
	sh, store, _, _ := newTestShell(t, 3)
	store.Update(0, form.FieldKey, "a")
	store.Update(1, form.FieldKey, "b")
	store.Update(2, form.FieldKey, "c")

	mustExec(t, sh, "rm 1")
	var keys []string
	sh.Snapshot().Each(func(_ int, e form.Entry) { keys = append(keys, e.Key) })
	if strings.Join(keys, ",") != "a,c" {
		t.Errorf("keys = %v", keys)
	}
}

func TestShellInvalidPositions(t *testing.T) {
	sh, store, _, _ := newTestShell(t, 1)
	before := store.Snapshot().Version

	for _, line := range []string{"rm 5", "rm -1", "set 3 key x"} {
		if _, err := sh.Exec(line); !errors.Is(err, ErrNoEntry) {
			t.Errorf("Exec(%q) err = %v, want ErrNoEntry", line, err)
		}
	}
	if store.Snapshot().Version != before {
		t.Error("invalid positions should not change the store")
	}
}

func TestShellUsageErrors(t *testing.T) {
	sh, _, _, _ := newTestShell(t, 1)

	for _, line := range []string{"set", "set 0", "set x key v", "set 0 colour v", "rm", "rm one"} {
		if _, err := sh.Exec(line); !errors.Is(err, ErrUsage) {
			t.Errorf("Exec(%q) err = %v, want ErrUsage", line, err)
		}
	}
	if _, err := sh.Exec("dance"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown verb err = %v", err)
	}
}

func TestShellList(t *testing.T) {
	sh, store, out, _ := newTestShell(t, 2)
	store.Update(0, form.FieldKey, "hello")
	store.Update(0, form.FieldValue, "Hello")
	store.Update(1, form.FieldValue, "orphan")

	mustExec(t, sh, "ls")
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("ls printed %d lines: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "0  hello  Hello") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "orphan") || !strings.Contains(lines[1], "skipped: blank key") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestShellListEmpty(t *testing.T) {
	sh, _, out, _ := newTestShell(t, 0)
	mustExec(t, sh, "ls")
	if !strings.Contains(out.String(), "no rows") {
		t.Errorf("output = %q", out.String())
	}
}

func TestShellPreview(t *testing.T) {
	sh, store, out, _ := newTestShell(t, 1)
	store.Update(0, form.FieldKey, "k")

	mustExec(t, sh, "preview")
	if strings.TrimSpace(out.String()) != `{"k":""}` {
		t.Errorf("preview = %q", out.String())
	}
}

func TestShellTracksPublishedSnapshots(t *testing.T) {
	sh, store, _, _ := newTestShell(t, 0)
	store.Add()
	store.Add()
	if sh.Snapshot().Len() != 2 {
		t.Errorf("shell snapshot len = %d, want 2", sh.Snapshot().Len())
	}

	sh.Close()
	store.Add()
	if sh.Snapshot().Len() != 2 {
		t.Error("closed shell should stop tracking the store")
	}
}

func TestShellQuitAndHelp(t *testing.T) {
	sh, _, out, _ := newTestShell(t, 0)

	quit, err := sh.Exec("help")
	if err != nil || quit {
		t.Errorf("help = %v, %v", quit, err)
	}
	if !strings.Contains(out.String(), "set <pos>") {
		t.Errorf("help output = %q", out.String())
	}

	for _, line := range []string{"quit", "exit", "  Q  "} {
		if quit, err := sh.Exec(line); err != nil || !quit {
			t.Errorf("Exec(%q) = %v, %v", line, quit, err)
		}
	}
	if quit, err := sh.Exec("   "); err != nil || quit {
		t.Errorf("blank line = %v, %v", quit, err)
	}
}

func TestSplitWord(t *testing.T) {
	tests := []struct {
		in, word, rest string
	}{
		{"set 0 key x", "set", "0 key x"},
		{"  ls", "ls", ""},
		{"value  a b", "value", " a b"},
		{"", "", ""},
	}
	for _, tt := range tests {
		w, r := splitWord(tt.in)
		if w != tt.word || r != tt.rest {
			t.Errorf("splitWord(%q) = %q, %q; want %q, %q", tt.in, w, r, tt.word, tt.rest)
		}
	}
}
