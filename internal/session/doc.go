// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session keeps one form store per browser for the form server.
//
// # Key Types
//
//   - Manager: owns sessions and expires idle ones
//   - Session: a form.Store plus its activity timestamps
//
// # Usage
//
//	mgr := session.NewManager(session.Config{Timeout: time.Hour, InitialRows: 1})
//	go mgr.Run(ctx, time.Minute)
//
//	sess, created := mgr.GetOrCreate(cookieValue)
//	sess.Store().Add()
package session
