// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/util"
)

// DefaultFilename is the name of the exported file.
const DefaultFilename = "translations.json"

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for snapshot exporters.
type Exporter interface {
	// Export converts a snapshot to the target format and returns the content.
	Export(snap form.Snapshot) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".json").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures file delivery.
type Options struct {
	// OutputDir is the directory where the file is written.
	// Default: current working directory
	OutputDir string

	// Filename is the base name of the written file.
	// Default: translations.json
	Filename string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		Filename:        DefaultFilename,
		OpenAfterExport: false,
	}
}

// =============================================================================
// DELIVERY
// =============================================================================

// ExportToFile exports a snapshot to <OutputDir>/<Filename> and returns the
// path written. The write goes through a temp file that is removed on any
// failure, so an interrupted export never leaves a partial file.
func ExportToFile(snap form.Snapshot, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(snap)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, SanitizeFilename(opts.Filename, exporter.FileExtension()))

	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	log.Printf("EXPORT_WRITTEN | path=%s entries=%d bytes=%d", outputPath, snap.Len(), len(content))

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal - file was still created successfully
			log.Printf("EXPORT_OPEN_FAILED | path=%s error=%v", outputPath, err)
		}
	}

	return outputPath, nil
}

// WriteTo writes the exported bytes to w. Used for `--output -`.
func WriteTo(w io.Writer, snap form.Snapshot, exporter Exporter) (int, error) {
	content, err := exporter.Export(snap)
	if err != nil {
		return 0, fmt.Errorf("export failed: %w", err)
	}
	return w.Write(content)
}

// ServeDownload streams the export to a browser as an attachment named
// filename. Nothing is written to the response if serialization fails.
func ServeDownload(w http.ResponseWriter, snap form.Snapshot, exporter Exporter, filename string) error {
	content, err := exporter.Export(snap)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	name := SanitizeFilename(filename, exporter.FileExtension())
	w.Header().Set("Content-Type", exporter.MimeType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// SanitizeFilename reduces name to a safe base name with the given
// extension. Directory parts are dropped, the name is NFC-normalized and
// characters that are invalid on Windows or Unix are replaced. An empty
// result falls back to "translations" + ext.
func SanitizeFilename(name, ext string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	name = filepath.Base(filepath.ToSlash(name))
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	// Limit length
	const maxLen = 100
	if runes := []rune(name); len(runes) > maxLen {
		name = string(runes[:maxLen])
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case strings.ContainsRune(`:*?"<>|`, r):
			b.WriteRune('-')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	result := strings.Trim(b.String(), ". ")

	if result == "" {
		return strings.TrimSuffix(DefaultFilename, filepath.Ext(DefaultFilename)) + ext
	}
	if ext != "" && !strings.EqualFold(filepath.Ext(result), ext) {
		result += ext
	}
	return result
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
