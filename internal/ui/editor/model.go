// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/i18ngen/internal/export"
	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/ui/components"
	"github.com/jeranaias/i18ngen/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a new editor.
type Options struct {
	Theme       string // styles.ModeAuto, ModeDark or ModeLight
	ShowPreview bool
	Exporter    export.Exporter // defaults to compact JSON
	Export      *export.Options // defaults to ./translations.json
}

// =============================================================================
// MODEL
// =============================================================================

// row is the widget state for one entry, matched to it by entry ID.
type row struct {
	id    string
	key   textinput.Model
	value textinput.Model
}

// Model is the Bubble Tea model for the translation editor.
type Model struct {
	store    *form.Store
	feed     *snapshotFeed
	closer   *closer
	snapshot form.Snapshot

	rows       []row
	focusRow   int
	focusField form.Field
	offset     int // first visible row

	theme     *styles.Theme
	keys      KeyMap
	help      help.Model
	statusBar *components.StatusBar
	toasts    *components.ToastManager
	ticking   bool

	exporter    export.Exporter
	exportOpts  *export.Options
	showPreview bool
	preview     []byte
	previewErr  error

	width    int
	height   int
	quitting bool
}

// closer detaches the model from its store exactly once.
type closer struct {
	once        sync.Once
	unsubscribe func()
	feed        *snapshotFeed
}

func (c *closer) close() {
	c.once.Do(func() {
		c.unsubscribe()
		c.feed.close()
	})
}

// New creates an editor bound to store. The model subscribes to the store
// immediately; call Close when it is no longer used.
func New(store *form.Store, opts Options) Model {
	if opts.Exporter == nil {
		opts.Exporter = export.NewJSONExporter(0)
	}
	exportOpts := export.DefaultOptions()
	if opts.Export != nil {
		*exportOpts = *opts.Export
	}
	if exportOpts.Filename == "" {
		exportOpts.Filename = export.DefaultFilename
	}
	if exportOpts.OutputDir == "" {
		exportOpts.OutputDir = "."
	}

	feed := newSnapshotFeed()
	theme := styles.NewTheme(opts.Theme)

	m := Model{
		store:       store,
		feed:        feed,
		closer:      &closer{unsubscribe: store.Subscribe(feed.publish), feed: feed},
		focusField:  form.FieldKey,
		theme:       theme,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		statusBar:   components.NewStatusBar(theme),
		toasts:      components.NewToastManager(),
		exporter:    opts.Exporter,
		exportOpts:  exportOpts,
		showPreview: opts.ShowPreview,
		width:       80,
		height:      24,
	}
	m.statusBar.SetOutputPath(filepath.Join(exportOpts.OutputDir, exportOpts.Filename))
	m.applySnapshot(store.Snapshot())
	m.focusCmd()
	return m
}

// Init starts listening for store notifications.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.feed.wait(), m.focusCmd())
}

// Close unsubscribes from the store. It is safe to call more than once.
func (m Model) Close() {
	m.closer.close()
}

// Snapshot returns the snapshot the view was last built from.
func (m Model) Snapshot() form.Snapshot {
	return m.snapshot
}

// Focus returns the focused row position and field. The position is -1
// when the form is empty.
func (m Model) Focus() (int, form.Field) {
	if len(m.rows) == 0 {
		return -1, m.focusField
	}
	return m.focusRow, m.focusField
}

// PreviewVisible reports whether the JSON preview pane is shown.
func (m Model) PreviewVisible() bool {
	return m.showPreview
}

// Toasts returns the active notifications.
func (m Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}

// =============================================================================
// SNAPSHOT HANDLING
// =============================================================================

// applySnapshot rebuilds the row widgets from snap, reusing the widgets of
// entries that survived so cursor positions are kept.
func (m *Model) applySnapshot(snap form.Snapshot) {
	focusedID := ""
	if m.focusRow >= 0 && m.focusRow < len(m.rows) {
		focusedID = m.rows[m.focusRow].id
	}

	existing := make(map[string]row, len(m.rows))
	for _, r := range m.rows {
		existing[r.id] = r
	}

	keyWidth, valueWidth := m.columnWidths()
	rows := make([]row, 0, snap.Len())
	blank := 0
	snap.Each(func(_ int, e form.Entry) {
		if !e.HasKey() {
			blank++
		}
		r, ok := existing[e.ID]
		if !ok {
			rows = append(rows, row{
				id:    e.ID,
				key:   components.NewKeyInput(e.Key, keyWidth),
				value: components.NewValueInput(e.Value, valueWidth),
			})
			return
		}
		if r.key.Value() != e.Key {
			r.key.SetValue(e.Key)
		}
		if r.value.Value() != e.Value {
			r.value.SetValue(e.Value)
		}
		rows = append(rows, r)
	})

	m.rows = rows
	m.snapshot = snap

	newFocus := -1
	for i, r := range rows {
		if r.id == focusedID {
			newFocus = i
			break
		}
	}
	if newFocus < 0 {
		newFocus = m.focusRow
	}
	m.setFocusRow(newFocus)

	m.preview, m.previewErr = m.exporter.Export(snap)
	m.statusBar.SetCounts(snap.Len(), export.Fold(snap).Len(), blank)
}

// syncFromStore applies whatever the store published since the last call.
func (m *Model) syncFromStore() {
	if snap, ok := m.feed.take(); ok {
		m.applySnapshot(snap)
	}
}

// =============================================================================
// FOCUS
// =============================================================================

// setFocusRow clamps i into range and keeps it visible.
func (m *Model) setFocusRow(i int) {
	if i >= len(m.rows) {
		i = len(m.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	m.focusRow = i
	m.scrollToFocus()
}

// focusCmd focuses the current cell and blurs every other one.
func (m *Model) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.rows {
		r := &m.rows[i]
		if i == m.focusRow && m.focusField == form.FieldKey {
			cmd = r.key.Focus()
		} else {
			r.key.Blur()
		}
		if i == m.focusRow && m.focusField == form.FieldValue {
			cmd = r.value.Focus()
		} else {
			r.value.Blur()
		}
	}
	return cmd
}

// focusedInput returns the focused cell, or nil for an empty form.
func (m *Model) focusedInput() *textinput.Model {
	if m.focusRow < 0 || m.focusRow >= len(m.rows) {
		return nil
	}
	r := &m.rows[m.focusRow]
	if m.focusField == form.FieldValue {
		return &r.value
	}
	return &r.key
}

// visibleRows is how many rows fit between the header and the footer.
func (m *Model) visibleRows() int {
	chrome := 10
	if m.showPreview {
		chrome += previewHeight + 3
	}
	n := m.height - chrome
	if n < 3 {
		n = 3
	}
	return n
}

func (m *Model) scrollToFocus() {
	visible := m.visibleRows()
	if m.focusRow < m.offset {
		m.offset = m.focusRow
	}
	if m.focusRow >= m.offset+visible {
		m.offset = m.focusRow - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// =============================================================================
// SIZING
// =============================================================================

// columnWidths splits the width between the key and value cells.
func (m *Model) columnWidths() (int, int) {
	// row number, separators and the delete marker
	available := m.width - 20
	if available < 20 {
		available = 20
	}
	keyWidth := available * 2 / 5
	return keyWidth, available - keyWidth
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.statusBar.SetWidth(width)
	m.help.Width = width

	keyWidth, valueWidth := m.columnWidths()
	for i := range m.rows {
		m.rows[i].key.Width = keyWidth
		m.rows[i].value.Width = valueWidth
	}
	m.scrollToFocus()
}
