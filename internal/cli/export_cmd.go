// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Non-interactive export.
//
// Usage:
//
//	i18ngen export hello=Hello bye=Bye
//	i18ngen export --stdin < pairs.txt
//	i18ngen export hello=Hello --output -        (write to stdout)
//	i18ngen export hello=Hello --indent 2 --filename en.json
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/i18ngen/internal/config"
	"github.com/jeranaias/i18ngen/internal/export"
	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/ui/styles"
)

// HandleExport folds key=value pairs from the arguments and, with --stdin,
// from standard input, then writes the result.
func HandleExport(args Args) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}

	if args.Flags.HasFlag("indent") {
		indent, err := args.Flags.FlagInt("indent")
		if err != nil {
			return usageError("%v", err)
		}
		if indent < 0 || indent > config.MaxIndent {
			return usageError("--indent must be between 0 and %d", config.MaxIndent)
		}
		cfg.Export.Indent = indent
	}
	if name := args.Flags.Flag("filename"); name != "" {
		cfg.Export.Filename = name
	}
	if args.Flags.BoolFlag("open") {
		cfg.Export.OpenAfterExport = true
	}

	store := form.NewStore(0)
	if err := addPairs(store, args.Flags.PositionalFrom(0)); err != nil {
		return err
	}
	if args.Flags.BoolFlag("stdin") {
		if err := readPairs(store, args.Stdin); err != nil {
			return err
		}
	}

	snap := store.Snapshot()
	exporter := exporterFor(cfg)

	if args.OutputDir == "-" {
		if _, err := export.WriteTo(args.Stdout, snap, exporter); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	path, err := export.ExportToFile(snap, exporter, exportOptionsFor(cfg))
	if err != nil {
		return err
	}
	if !args.Quiet {
		if blank := countBlank(snap); blank > 0 {
			fmt.Fprintln(args.Stderr, styles.RenderWarning(fmt.Sprintf("skipped %d %s with a blank key", blank, pluralize(blank, "pair", "pairs"))))
		}
		keys := export.Fold(snap).Len()
		fmt.Fprintf(args.Stdout, "Wrote %s (%d %s)\n", path, keys, pluralize(keys, "key", "keys"))
	}
	return nil
}

func countBlank(snap form.Snapshot) int {
	n := 0
	snap.Each(func(_ int, e form.Entry) {
		if !e.HasKey() {
			n++
		}
	})
	return n
}

// ParsePair splits "key=value" at the first '='. The key is kept as typed;
// blank keys are dropped later by the export.
func ParsePair(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", usageError("invalid pair %q: want key=value", s)
	}
	return key, value, nil
}

// addPairs appends one entry per pair, in order.
func addPairs(store *form.Store, pairs []string) error {
	entries := store.Snapshot().Entries()
	for _, p := range pairs {
		key, value, err := ParsePair(p)
		if err != nil {
			return err
		}
		entries = append(entries, form.NewEntry(key, value))
	}
	if len(pairs) > 0 {
		store.Replace(entries)
	}
	return nil
}

// readPairs reads one key=value pair per line. Empty lines and lines
// starting with '#' are skipped.
func readPairs(store *form.Store, r io.Reader) error {
	if r == nil {
		return usageError("--stdin given but no input is available")
	}

	var pairs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(strings.TrimSpace(text), "#") {
			continue
		}
		if !strings.Contains(text, "=") {
			return usageError("stdin line %d: want key=value, got %q", line, text)
		}
		pairs = append(pairs, text)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return addPairs(store, pairs)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
