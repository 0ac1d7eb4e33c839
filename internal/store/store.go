// Package store publishes one run's entities to PostgreSQL.
//
// A publish is a single transaction: every destination table is truncated
// and reloaded, and one audit row is appended. All of it commits or none
// of it does, so readers never observe a half-replaced table.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fredgido/triathlon-dashboard/internal/model"
)

// Store owns the connection pool for the destination database.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Publication is everything one run writes: the four entity sets and its
// audit event. HasWaitlist distinguishes "no waitlist list was published
// upstream" (table left untouched) from "the waitlist is empty" (table
// replaced with zero rows).
type Publication struct {
	Categories  []model.ContestCategory
	Splits      []model.SplitDefinition
	Athletes    []model.Athlete
	Waitlist    []model.WaitlistAthlete
	HasWaitlist bool
	Audit       model.AuditEvent
}

// EnsureSchema creates the destination tables if they do not exist yet.
// Idempotent; run it once at startup before the first publish.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Publish replaces the destination tables with the run's entities and
// appends the audit event, all inside one transaction. Any failure rolls
// back the whole run; the tables keep their previous contents.
func (s *Store) Publish(ctx context.Context, pub Publication) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := replaceTable(ctx, tx, "contest_categories", categoryColumns, categoryRows(pub.Categories)); err != nil {
		return err
	}
	if err := replaceTable(ctx, tx, "splits", splitColumns, splitRows(pub.Splits)); err != nil {
		return err
	}
	if err := replaceTable(ctx, tx, "athletes", athleteColumns, athleteRows(pub.Athletes)); err != nil {
		return err
	}
	if pub.HasWaitlist {
		if err := replaceTable(ctx, tx, "athletes_wait_list", waitlistColumns, waitlistRows(pub.Waitlist)); err != nil {
			return err
		}
	} else {
		slog.Debug("no waitlist in fetch result, table left untouched")
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO dataset_update_events
			(created_at, run_id, used_data, athletes_count, athletes_wait_list_count)
		VALUES ($1, $2, $3, $4, $5)`,
		pub.Audit.CreatedAt,
		pub.Audit.RunID,
		pub.Audit.UsedData,
		pub.Audit.AthletesCount,
		pub.Audit.WaitlistCount,
	); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit publish: %w", err)
	}
	return nil
}

// replaceTable empties a table and bulk-loads the new rows via COPY
// within the surrounding transaction.
func replaceTable(ctx context.Context, tx pgx.Tx, table string, columns []string, rows [][]any) error {
	ident := pgx.Identifier{table}
	if _, err := tx.Exec(ctx, "TRUNCATE "+ident.Sanitize()); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := tx.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return nil
}
