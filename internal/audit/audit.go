// Package audit keeps an append-only log of every raw result sheet
// submitted to the server, independent of the compstate directory's own
// YAML files on disk. It exists so a disputed score can always be traced
// back to exactly what was submitted and when, even after the sheet itself
// has been edited or the compstate directory reloaded.
package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "scoresheet_submissions"

// Entry is a single submission recorded to the audit log.
type Entry struct {
	ID          string                 `bson:"_id"`
	Kind        string                 `bson:"kind"` // "league", "knockout" or "tiebreaker"
	Arena       string                 `bson:"arena"`
	MatchNumber int                    `bson:"match_number"`
	SubmittedBy string                 `bson:"submitted_by"`
	SubmittedAt time.Time              `bson:"submitted_at"`
	StateCommit string                 `bson:"state_commit"`
	RawSheet    map[string]interface{} `bson:"raw_sheet"`
}

// Log appends and queries scoresheet submissions.
type Log struct {
	collection *mongo.Collection
	logger     *log.Logger
}

// NewLog builds a Log backed by the given database.
func NewLog(db *mongo.Database, logger *log.Logger) *Log {
	return &Log{collection: db.Collection(collectionName), logger: logger}
}

// Record appends a new submission. It never mutates or removes a prior
// entry for the same (kind, arena, match number) -- every submission,
// including a correction, gets its own row.
func (l *Log) Record(ctx context.Context, entry Entry) error {
	if entry.SubmittedAt.IsZero() {
		return fmt.Errorf("audit: SubmittedAt is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if _, err := l.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("audit: recording submission: %w", err)
	}
	return nil
}

// History returns every submission recorded for a given match, in
// submission order, oldest first.
func (l *Log) History(ctx context.Context, kind, arena string, matchNumber int) ([]Entry, error) {
	filter := bson.M{"kind": kind, "arena": arena, "match_number": matchNumber}
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})

	cursor, err := l.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: querying history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("audit: decoding history: %w", err)
	}
	return entries, nil
}
