/*
DESCRIPTION
  store.go provides Store, a SQLite backed history of loop runs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package report provides persistence and plotting of loop run summaries.
package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ausocean/videoloop/loop"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	program TEXT NOT NULL,
	input TEXT NOT NULL,
	output TEXT NOT NULL DEFAULT '',
	filter TEXT NOT NULL DEFAULT '',
	width INTEGER NOT NULL DEFAULT 0,
	height INTEGER NOT NULL DEFAULT 0,
	frames INTEGER NOT NULL DEFAULT 0,
	detected INTEGER NOT NULL DEFAULT 0,
	elapsed INTEGER NOT NULL DEFAULT 0,
	created INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`

// Run is a single stored run.
type Run struct {
	ID       string
	Program  string
	Input    string
	Output   string
	Filter   string
	Width    int
	Height   int
	Frames   uint
	Detected uint
	Elapsed  time.Duration
	Created  time.Time
}

// Store records run summaries in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens, creating if needed, the run database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "could not open run database")
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not create runs table")
	}
	return &Store{db: db}, nil
}

// Record stores the summary of a run of the named program and returns the
// new run's id.
func (s *Store) Record(program string, sum *loop.Summary) (string, error) {
	if sum == nil {
		return "", errors.New("nil summary")
	}
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, program, input, output, filter, width, height, frames, detected, elapsed, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, program, sum.Input, sum.Output, sum.Filter, sum.Width, sum.Height,
		int64(sum.Frames), int64(sum.Detected), int64(sum.Elapsed), time.Now().UnixNano(),
	)
	if err != nil {
		return "", errors.Wrapf(err, "could not record run of %s", program)
	}
	return id, nil
}

// List returns the stored runs, most recent first. A limit of zero or less
// returns all runs.
func (s *Store) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, program, input, output, filter, width, height, frames, detected, elapsed, created
		FROM runs ORDER BY created DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "could not query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                         Run
			frames, detected, elapsed int64
			created                   int64
		)
		err = rows.Scan(&r.ID, &r.Program, &r.Input, &r.Output, &r.Filter, &r.Width, &r.Height, &frames, &detected, &elapsed, &created)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan run")
		}
		r.Frames = uint(frames)
		r.Detected = uint(detected)
		r.Elapsed = time.Duration(elapsed)
		r.Created = time.Unix(0, created)
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "could not iterate runs")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
