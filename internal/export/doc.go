// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns a form snapshot into a translations file.
//
// Export is a fold followed by a delivery. The fold walks the snapshot in
// order, drops entries whose key is blank after trimming, and sets
// result[key] = value for the rest, so the last duplicate wins. The
// delivery either writes the bytes to a file or streams them to a browser
// as a download.
//
// # Key Types
//
//   - Mapping: the folded key/value object, in first-set key order
//   - Exporter: serializes a snapshot (JSONExporter is the only format)
//   - Options: where and how the file is written
//
// # Usage
//
// Write translations.json into the working directory:
//
//	path, err := export.ExportToFile(store.Snapshot(), export.NewJSONExporter(0), nil)
//
// Stream it from an HTTP handler:
//
//	err := export.ServeDownload(w, snap, export.NewJSONExporter(0), export.DefaultFilename)
package export
