// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the i18ngen packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing through a temp file that is
//     always removed when the write does not complete
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - PadWidth: right-pad to a display width
//   - StringWidth: terminal column count of a string
//
// # Usage
//
//	// Write the export without ever leaving a half-written file
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Fit a key into a fixed-width column
//	cell := util.PadWidth(util.TruncateWidth(key, 24), 24)
package util
