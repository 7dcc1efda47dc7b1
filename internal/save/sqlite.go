package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps saved games in a SQLite database, one game per slot.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLite opens (creating if needed) the database at dbPath and returns a
// store bound to the named slot.
func OpenSQLite(ctx context.Context, dbPath, slot string) (*SQLiteStore, error) {
	if slot == "" {
		return nil, errors.New("sqlite save slot must not be empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One game, one writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if err := createSchemas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}

	return &SQLiteStore{db: db, slot: slot}, nil
}

func createSchemas(ctx context.Context, db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS games (
			slot TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			key_x INTEGER NOT NULL,
			key_y INTEGER NOT NULL,
			key_present BOOLEAN NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS heroes (
			slot TEXT NOT NULL,
			ordinal INTEGER NOT NULL,
			name TEXT NOT NULL,
			pos_x INTEGER NOT NULL,
			pos_y INTEGER NOT NULL,
			anchor_x INTEGER NOT NULL,
			anchor_y INTEGER NOT NULL,
			health INTEGER NOT NULL,
			heal_charges INTEGER NOT NULL,
			has_key BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (slot, ordinal),
			FOREIGN KEY (slot) REFERENCES games(slot)
		);`,
	}

	for _, query := range schemas {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Exists(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE slot = ?`, s.slot).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check saved game: %w", err)
	}
	return count > 0, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (State, error) {
	var (
		state   State
		savedAt string
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, key_x, key_y, key_present, saved_at FROM games WHERE slot = ?`, s.slot,
	).Scan(&state.RunID, &state.Maze.KeyLocation.X, &state.Maze.KeyLocation.Y, &state.Maze.KeyPresent, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNoSave
	}
	if err != nil {
		return State{}, fmt.Errorf("load game row: %w", err)
	}

	if state.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return State{}, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, pos_x, pos_y, anchor_x, anchor_y, health, heal_charges, has_key
		FROM heroes WHERE slot = ? ORDER BY ordinal ASC`, s.slot)
	if err != nil {
		return State{}, fmt.Errorf("load heroes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h HeroRecord
		if err := rows.Scan(
			&h.Name, &h.Position.X, &h.Position.Y, &h.Anchor.X, &h.Anchor.Y,
			&h.Health, &h.HealCharges, &h.HasKey,
		); err != nil {
			return State{}, fmt.Errorf("scan hero: %w", err)
		}
		state.Heroes = append(state.Heroes, h)
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("iterate heroes: %w", err)
	}

	return state, nil
}

// Save replaces the slot's game and heroes in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, state State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	savedAt := state.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM heroes WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("clear heroes: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (slot, run_id, key_x, key_y, key_present, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			run_id=excluded.run_id,
			key_x=excluded.key_x,
			key_y=excluded.key_y,
			key_present=excluded.key_present,
			saved_at=excluded.saved_at`,
		s.slot, state.RunID, state.Maze.KeyLocation.X, state.Maze.KeyLocation.Y,
		state.Maze.KeyPresent, savedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}

	for i, h := range state.Heroes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO heroes (slot, ordinal, name, pos_x, pos_y, anchor_x, anchor_y, health, heal_charges, has_key)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.slot, i, h.Name, h.Position.X, h.Position.Y, h.Anchor.X, h.Anchor.Y,
			h.Health, h.HealCharges, h.HasKey,
		)
		if err != nil {
			return fmt.Errorf("insert hero %s: %w", h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM heroes WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("delete heroes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return tx.Commit()
}

var _ Store = (*SQLiteStore)(nil)
