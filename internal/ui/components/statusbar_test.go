// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestStatusBarLayouts(t *testing.T) {
	s := NewStatusBar(nil)
	s.SetCounts(3, 2, 1)
	s.SetOutputPath("./translations.json")

	s.SetWidth(40)
	narrow := s.View()
	if !strings.Contains(narrow, "3 rows 2 keys") {
		t.Errorf("narrow = %q", narrow)
	}
	if strings.Contains(narrow, "blank") {
		t.Errorf("narrow should omit blank count: %q", narrow)
	}

	s.SetWidth(80)
	medium := s.View()
	if !strings.Contains(medium, "1 blank") {
		t.Errorf("medium = %q", medium)
	}
	if strings.Contains(medium, "translations.json") {
		t.Errorf("medium should omit output path: %q", medium)
	}

	s.SetWidth(120)
	wide := s.View()
	if !strings.Contains(wide, "-> ./translations.json") {
		t.Errorf("wide = %q", wide)
	}
}

func TestStatusBarSingular(t *testing.T) {
	s := NewStatusBar(nil)
	s.SetWidth(80)
	s.SetCounts(1, 1, 0)
	out := s.View()
	if !strings.Contains(out, "1 row") || !strings.Contains(out, "1 key") {
		t.Errorf("view = %q", out)
	}
	if strings.Contains(out, "rows") || strings.Contains(out, "blank") {
		t.Errorf("view = %q", out)
	}
}

func TestPlural(t *testing.T) {
	tests := map[int]string{0: "0 keys", 1: "1 key", 7: "7 keys"}
	for n, want := range tests {
		if got := plural(n, "key"); got != want {
			t.Errorf("plural(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestNewFieldInputs(t *testing.T) {
	k := NewKeyInput("hello", 20)
	if k.Value() != "hello" || k.Placeholder != KeyPlaceholder {
		t.Errorf("key input = %q / %q", k.Value(), k.Placeholder)
	}
	v := NewValueInput("", 0)
	if v.Value() != "" || v.Placeholder != ValuePlaceholder {
		t.Errorf("value input = %q / %q", v.Value(), v.Placeholder)
	}
	if v.CharLimit != FieldCharLimit {
		t.Errorf("CharLimit = %d", v.CharLimit)
	}
}
