// Package store keeps a durable history of built competition snapshots in
// MySQL. Every time the compstate directory is reloaded, the resulting
// state commit, the computed awards and the team and match counts are
// recorded here, so the server can answer "what did the competition look
// like at commit X" at that level of detail without recomputing it from
// YAML.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one recorded build of the competition.
type Snapshot struct {
	ID          string
	StateCommit string
	BuiltAt     time.Time
	TeamCount   int
	MatchCount  int
	Awards      map[string][]string
}

// Store records and retrieves competition snapshot history.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New builds a Store backed by the given database handle.
func New(db *sql.DB, logger *log.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// EnsureSchema creates the snapshot history table if it does not already
// exist. It is safe to call on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS competition_snapshots (
	id VARCHAR(36) PRIMARY KEY,
	state_commit VARCHAR(64) NOT NULL,
	built_at DATETIME NOT NULL,
	team_count INT NOT NULL,
	match_count INT NOT NULL,
	awards JSON NOT NULL,
	UNIQUE KEY uniq_state_commit (state_commit)
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("store: creating schema: %w", err)
	}
	return nil
}

// Record saves a built snapshot, replacing any prior record for the same
// state commit -- a reload of an unchanged compstate directory is
// idempotent rather than growing the history unboundedly.
func (s *Store) Record(ctx context.Context, snap Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}

	awardsJSON, err := json.Marshal(snap.Awards)
	if err != nil {
		return fmt.Errorf("store: marshalling awards: %w", err)
	}

	const query = `
INSERT INTO competition_snapshots (id, state_commit, built_at, team_count, match_count, awards)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE built_at = VALUES(built_at), team_count = VALUES(team_count),
	match_count = VALUES(match_count), awards = VALUES(awards)`

	if _, err := s.db.ExecContext(ctx, query, snap.ID, snap.StateCommit, snap.BuiltAt, snap.TeamCount, snap.MatchCount, awardsJSON); err != nil {
		return fmt.Errorf("store: recording snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently built snapshot, or sql.ErrNoRows if the
// history is empty.
func (s *Store) Latest(ctx context.Context) (Snapshot, error) {
	const query = `
SELECT id, state_commit, built_at, team_count, match_count, awards
FROM competition_snapshots ORDER BY built_at DESC LIMIT 1`
	return s.scanOne(s.db.QueryRowContext(ctx, query))
}

// ByCommit returns the snapshot recorded for a specific state commit.
func (s *Store) ByCommit(ctx context.Context, stateCommit string) (Snapshot, error) {
	const query = `
SELECT id, state_commit, built_at, team_count, match_count, awards
FROM competition_snapshots WHERE state_commit = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, query, stateCommit))
}

// History returns up to limit recorded snapshots, most recent first.
func (s *Store) History(ctx context.Context, limit int) ([]Snapshot, error) {
	const query = `
SELECT id, state_commit, built_at, team_count, match_count, awards
FROM competition_snapshots ORDER BY built_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("store: querying history: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanOne(row rowScanner) (Snapshot, error) {
	return scanSnapshot(row)
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	var awardsJSON []byte

	if err := row.Scan(&snap.ID, &snap.StateCommit, &snap.BuiltAt, &snap.TeamCount, &snap.MatchCount, &awardsJSON); err != nil {
		return Snapshot{}, fmt.Errorf("store: scanning snapshot: %w", err)
	}
	if err := json.Unmarshal(awardsJSON, &snap.Awards); err != nil {
		return Snapshot{}, fmt.Errorf("store: unmarshalling awards: %w", err)
	}
	return snap, nil
}
