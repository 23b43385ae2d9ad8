// Package storage persists monster change events to a local SQLite
// database for later inspection.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/diff"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS monster_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  monster_id  INTEGER NOT NULL,
  name        TEXT NOT NULL,
  property    TEXT NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('new','changed','drop-changed')),
  old_value   TEXT,
  new_value   TEXT
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON monster_changes(occurred_at);
CREATE INDEX IF NOT EXISTS idx_changes_monster ON monster_changes(monster_id, occurred_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// ChangeEvent captures a single change event for auditing or printing.
type ChangeEvent struct {
	OccurredAt time.Time
	MonsterID  int
	Name       string
	Property   string
	ChangeType string // new | changed | drop-changed
	OldValue   string
	NewValue   string
}

// RecordReport persists one monster's change report as individual events.
// An empty report writes nothing.
func (d *DB) RecordReport(ctx context.Context, monsterID int, name string, report diff.Report) error {
	if report.Empty() {
		return nil
	}

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO monster_changes(monster_id, name, property, change_type, old_value, new_value) VALUES(?,?,?,?,?,?)`

	if report.New {
		if _, err = tx.ExecContext(ctx, insert, monsterID, name, "", "new", nil, nil); err != nil {
			return err
		}
	}
	for _, property := range report.ChangedProperties {
		if _, err = tx.ExecContext(ctx, insert, monsterID, name, property, "changed", nil, nil); err != nil {
			return err
		}
	}
	for _, change := range report.DropChanges {
		property := change.Drop + "." + change.Field
		if _, err = tx.ExecContext(ctx, insert, monsterID, name, property, "drop-changed",
			nullIfEmpty(encodeValue(change.Old)), nullIfEmpty(encodeValue(change.New))); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRecentChanges returns the most recent N change events.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]ChangeEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	q := "SELECT occurred_at, monster_id, name, property, change_type, old_value, new_value FROM monster_changes ORDER BY occurred_at DESC, id DESC LIMIT ?"
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []ChangeEvent{}
	for rows.Next() {
		var e ChangeEvent
		var occurredAtStr string
		var oldNS, newNS sql.NullString
		if err := rows.Scan(&occurredAtStr, &e.MonsterID, &e.Name, &e.Property, &e.ChangeType, &oldNS, &newNS); err != nil {
			return nil, err
		}
		// Parse SQLite CURRENT_TIMESTAMP format
		// Try "2006-01-02 15:04:05" then RFC3339
		if t, perr := time.Parse("2006-01-02 15:04:05", occurredAtStr); perr == nil {
			e.OccurredAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, occurredAtStr); perr2 == nil {
			e.OccurredAt = t2
		} else {
			e.OccurredAt = time.Time{}
		}
		e.OldValue = oldNS.String
		e.NewValue = newNS.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

type ChangeStats struct {
	ChangeType   string
	MonsterCount int
	EventCount   int
}

func (d *DB) GetStats(ctx context.Context) ([]ChangeStats, error) {
	query := `
		SELECT
			change_type,
			COUNT(DISTINCT monster_id),
			COUNT(*)
		FROM
			monster_changes
		GROUP BY
			change_type
		ORDER BY
			change_type;
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ChangeStats
	for rows.Next() {
		var s ChangeStats
		if err := rows.Scan(&s.ChangeType, &s.MonsterCount, &s.EventCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func encodeValue(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
