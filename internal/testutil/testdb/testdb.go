//go:build testutil
// +build testutil

// Package testdb starts a throwaway PostgreSQL container with the schema
// applied. Tests that use it are built with -tags testutil.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/db"
)

const name = "gestionfct"

type DBHandle struct {
	DB    *sql.DB
	close []func()
}

// Close releases the connection and then the container, newest first.
func (h *DBHandle) Close() {
	for i := len(h.close) - 1; i >= 0; i-- {
		h.close[i]()
	}
	h.close = nil
}

func (h *DBHandle) onClose(f func()) { h.close = append(h.close, f) }

func Start(ctx context.Context) (_ *DBHandle, err error) {
	h := &DBHandle{}
	defer func() {
		if err != nil {
			h.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	h.onClose(cancel)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase(name),
		postgres.WithUsername(name),
		postgres.WithPassword(name),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}
	h.onClose(func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		_ = pg.Terminate(stopCtx)
	})

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("connection string: %w", err)
	}
	conn, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, err
	}
	h.DB = conn
	h.onClose(func() { _ = conn.Close() })

	if err := waitReady(ctx, conn, 20*time.Second); err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return h, nil
}

func waitReady(ctx context.Context, conn *sql.DB, within time.Duration) error {
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(within)
	for {
		if err := conn.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-deadline:
			return fmt.Errorf("db not ready after %s", within)
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
