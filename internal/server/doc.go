// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the translation form to browsers.
//
// The page works without JavaScript: every button submits the whole form
// to POST /form, which applies the rows and then runs the button action.
// Each browser gets its own form, keyed by a session cookie.
//
// # Endpoints
//
//   - GET  /                      - The form page
//   - POST /form                  - Submit all rows plus an action (add, remove:N, export)
//   - POST /entries               - Add an empty row
//   - POST /entries/{pos}/delete  - Remove the row at pos
//   - POST /entries/{pos}         - Update field ("key" or "value") of the row at pos
//   - GET  /export                - Download translations.json
//   - GET  /api/entries           - The current rows as JSON
//   - GET  /health                - Health check
//
// # Middleware
//
// Requests pass through panic recovery, security headers, request logging,
// a per-IP token bucket rate limit and a body size cap, in that order.
//
// # Usage
//
//	srv := server.NewServer(config.Global())
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
