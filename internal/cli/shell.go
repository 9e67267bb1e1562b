// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Line-mode editor.
//
// The shell works on the same form store as the terminal editor, one
// command per line:
//
//	add                       append an empty row
//	set <pos> key|value TEXT  set one field; TEXT is the rest of the line
//	rm <pos>                  delete a row
//	ls                        list rows
//	preview                   show the JSON that export would write
//	export                    write the file
//	help, quit
//
// Positions are zero-based, as printed by ls.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/jeranaias/i18ngen/internal/config"
	"github.com/jeranaias/i18ngen/internal/export"
	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/ui/components"
	"github.com/jeranaias/i18ngen/internal/util"
)

// ShellPrompt is printed before every command.
const ShellPrompt = "i18n> "

// shellCommands drives tab completion.
var shellCommands = []string{"add", "set", "rm", "ls", "preview", "export", "help", "quit"}

const shellHelp = `Commands:
  add                        append an empty row
  set <pos> key|value TEXT   set one field (TEXT is the rest of the line)
  rm <pos>                   delete the row at pos
  ls                         list rows (blank keys are skipped on export)
  preview                    show the JSON export would write
  export                     write the file
  help                       show this help
  quit                       leave the shell
`

// =============================================================================
// SHELL
// =============================================================================

// Shell executes line commands against a form store. It keeps the latest
// snapshot the store published and lists from it.
type Shell struct {
	store    *form.Store
	exporter export.Exporter
	opts     *export.Options
	out      io.Writer
	color    bool

	mu          sync.Mutex
	snapshot    form.Snapshot
	unsubscribe func()
}

// NewShell creates a shell bound to store, writing to out.
func NewShell(store *form.Store, exporter export.Exporter, opts *export.Options, out io.Writer) *Shell {
	s := &Shell{
		store:    store,
		exporter: exporter,
		opts:     opts,
		out:      out,
		snapshot: store.Snapshot(),
	}
	s.unsubscribe = store.Subscribe(s.onSnapshot)
	return s
}

// SetColor turns syntax highlighting of preview on or off.
func (s *Shell) SetColor(on bool) {
	s.color = on
}

// Close detaches the shell from its store.
func (s *Shell) Close() {
	s.unsubscribe()
}

func (s *Shell) onSnapshot(snap form.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Version >= s.snapshot.Version {
		s.snapshot = snap
	}
}

// Snapshot returns the latest snapshot the shell has seen.
func (s *Shell) Snapshot() form.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Exec runs one command line. It reports quit=true for quit and exit.
func (s *Shell) Exec(line string) (quit bool, err error) {
	verb, rest := splitWord(strings.TrimRight(line, "\r\n"))
	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "add", "a":
		s.store.Add()
		fmt.Fprintf(s.out, "Added row %d\n", s.Snapshot().Len()-1)
	case "set", "s":
		return false, s.execSet(rest)
	case "rm", "remove", "del":
		return false, s.execRemove(rest)
	case "ls", "list":
		s.list()
	case "preview", "p":
		return false, s.preview()
	case "export", "x":
		path, err := export.ExportToFile(s.Snapshot(), s.exporter, s.opts)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Wrote %s\n", path)
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, unknownCommand(verb)
	}
	return false, nil
}

// execSet handles "set <pos> key|value TEXT".
func (s *Shell) execSet(rest string) error {
	posText, rest := splitWord(rest)
	fieldText, text := splitWord(rest)
	if posText == "" || fieldText == "" {
		return usageError("set <pos> key|value TEXT")
	}

	pos, err := ParsePosition(posText)
	if err != nil {
		return err
	}
	field, err := form.ParseField(fieldText)
	if err != nil {
		return usageError("%v", err)
	}

	if !s.store.Update(pos, field, text) {
		return fmt.Errorf("%w %d", ErrNoEntry, pos)
	}
	return nil
}

// execRemove handles "rm <pos>".
func (s *Shell) execRemove(rest string) error {
	posText, _ := splitWord(rest)
	pos, err := ParsePosition(posText)
	if err != nil {
		return err
	}
	if !s.store.Remove(pos) {
		return fmt.Errorf("%w %d", ErrNoEntry, pos)
	}
	fmt.Fprintf(s.out, "Removed row %d\n", pos)
	return nil
}

// list prints one line per row.
func (s *Shell) list() {
	snap := s.Snapshot()
	if snap.Len() == 0 {
		fmt.Fprintln(s.out, DimStyle.Render("(no rows; use add)"))
		return
	}

	keyWidth := 3
	snap.Each(func(_ int, e form.Entry) {
		if w := util.StringWidth(util.SingleLine(e.Key)); w > keyWidth {
			keyWidth = w
		}
	})
	if keyWidth > 30 {
		keyWidth = 30
	}

	posWidth := len(strconv.Itoa(snap.Len() - 1))
	snap.Each(func(i int, e form.Entry) {
		key := util.PadWidth(util.TruncateWidth(util.SingleLine(e.Key), keyWidth), keyWidth)
		value := util.TruncateWidth(util.SingleLine(e.Value), 60)
		line := fmt.Sprintf("%*d  %s  %s", posWidth, i, key, value)
		if !e.HasKey() {
			line += "  " + DimStyle.Render("(skipped: blank key)")
		}
		fmt.Fprintln(s.out, line)
	})
}

// preview prints the export bytes.
func (s *Shell) preview() error {
	data, err := s.exporter.Export(s.Snapshot())
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	text := string(data)
	if s.color {
		text = components.HighlightJSON(text)
	}
	fmt.Fprintln(s.out, text)
	return nil
}

// splitWord returns the first space-separated word of s and the rest with
// exactly one separating space removed, so values keep inner spacing.
func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// =============================================================================
// INTERACTIVE LOOP
// =============================================================================

// HandleShell runs the line editor until quit, EOF or ctrl+c.
func HandleShell(ctx context.Context, args Args) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	return runShell(ctx, args, cfg, form.NewStore(cfg.Form.InitialRows))
}

func runShell(ctx context.Context, args Args, cfg *config.Config, store *form.Store) error {
	sh := NewShell(store, exporterFor(cfg), exportOptionsFor(cfg), args.Stdout)
	defer sh.Close()
	sh.SetColor(ColorsEnabled())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		var out []string
		for _, c := range shellCommands {
			if strings.HasPrefix(c, strings.ToLower(input)) {
				out = append(out, c)
			}
		}
		return out
	})

	historyFile := shellHistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveShellHistory(line, historyFile)

	if !args.Quiet {
		fmt.Fprintln(args.Stdout, TitleStyle.Render("i18ngen shell")+DimStyle.Render("  type help for commands"))
	}

	for ctx.Err() == nil {
		input, err := line.Prompt(ShellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(args.Stdout)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		quit, err := sh.Exec(input)
		if err != nil {
			fmt.Fprintln(args.Stderr, "Error: "+err.Error())
		}
		if quit {
			return nil
		}
	}
	return nil
}

func shellHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "shell_history")
}

// saveShellHistory writes history with owner-only permissions.
func saveShellHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log.Printf("SHELL_HISTORY_FAILED | path=%s error=%v", path, err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Printf("SHELL_HISTORY_FAILED | path=%s error=%v", path, err)
	}
}
