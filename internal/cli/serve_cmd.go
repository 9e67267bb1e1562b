// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jeranaias/i18ngen/internal/config"
	"github.com/jeranaias/i18ngen/internal/server"
)

// ShutdownTimeout bounds how long serve waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// HandleServe runs the browser form until ctx is cancelled. Changes to the
// config file are applied live; host and port need a restart.
func HandleServe(ctx context.Context, args Args) error {
	cfg, path, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cfg, args); err != nil {
		return err
	}

	srv := server.NewServer(cfg)

	if path != "" {
		err := config.Watch(ctx, path, func(next *config.Config) {
			applyOverrides(next, args)
			config.SetGlobal(next)
			srv.ApplyConfig(next)
		})
		if err != nil {
			log.Printf("CONFIG_WATCH_DISABLED | path=%s error=%v", path, err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-srv.Ready():
		if !args.Quiet {
			fmt.Fprintf(args.Stdout, "Serving %s (ctrl+c to stop)\n", srv.URL())
		}
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

// applyServeFlags applies --host and --port.
func applyServeFlags(cfg *config.Config, args Args) error {
	if host := args.Flags.Flag("host"); host != "" {
		cfg.Server.Host = host
	}
	if args.Flags.HasFlag("port") {
		port, err := args.Flags.FlagInt("port")
		if err != nil {
			return usageError("%v", err)
		}
		if port < 0 || port > 65535 {
			return usageError("--port must be between 0 and 65535, got %d", port)
		}
		cfg.Server.Port = port
	}
	return nil
}
