// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emer/cbm"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS trials (
	tag   TEXT NOT NULL,
	trial INTEGER NOT NULL,
	name  TEXT NOT NULL,
	type  TEXT NOT NULL,
	secs  REAL NOT NULL,
	PRIMARY KEY (tag, trial)
);
CREATE TABLE IF NOT EXISTS rates (
	tag          TEXT NOT NULL,
	trial        INTEGER NOT NULL,
	cell         TEXT NOT NULL,
	cs_mean      REAL NOT NULL,
	cs_median    REAL NOT NULL,
	noncs_mean   REAL NOT NULL,
	noncs_median REAL NOT NULL,
	PRIMARY KEY (tag, trial, cell)
);
`

// SQLite is a Store backed by a SQLite database file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("runstore: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("runstore: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("runstore: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("runstore: create tables: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (ss *SQLite) Add(ctx context.Context, rec *Record) error {
	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trials (tag, trial, name, type, secs) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tag, trial) DO UPDATE SET
			name = excluded.name, type = excluded.type, secs = excluded.secs
	`, rec.Tag, rec.Trial, rec.Name, rec.Type, rec.Secs)
	if err != nil {
		return fmt.Errorf("runstore: add trial %d: %w", rec.Trial, err)
	}
	for ct := cbm.CellTypes(0); ct < cbm.CellTypesN; ct++ {
		fr := &rec.Rates[ct]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rates (tag, trial, cell, cs_mean, cs_median, noncs_mean, noncs_median)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(tag, trial, cell) DO UPDATE SET
				cs_mean = excluded.cs_mean, cs_median = excluded.cs_median,
				noncs_mean = excluded.noncs_mean, noncs_median = excluded.noncs_median
		`, rec.Tag, rec.Trial, ct.String(), fr.CSMean, fr.CSMedian, fr.NonCSMean, fr.NonCSMedian)
		if err != nil {
			return fmt.Errorf("runstore: add %s rates of trial %d: %w", ct, rec.Trial, err)
		}
	}
	return tx.Commit()
}

func (ss *SQLite) Trials(ctx context.Context, tag string) ([]Record, error) {
	rows, err := ss.db.QueryContext(ctx, `
		SELECT trial, name, type, secs FROM trials WHERE tag = ? ORDER BY trial
	`, tag)
	if err != nil {
		return nil, err
	}
	var recs []Record
	idx := make(map[int]int)
	for rows.Next() {
		rec := Record{Tag: tag}
		if err := rows.Scan(&rec.Trial, &rec.Name, &rec.Type, &rec.Secs); err != nil {
			rows.Close()
			return nil, err
		}
		idx[rec.Trial] = len(recs)
		recs = append(recs, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = ss.db.QueryContext(ctx, `
		SELECT trial, cell, cs_mean, cs_median, noncs_mean, noncs_median FROM rates WHERE tag = ?
	`, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var trial int
		var cell string
		var csMean, csMed, ncMean, ncMed float64
		if err := rows.Scan(&trial, &cell, &csMean, &csMed, &ncMean, &ncMed); err != nil {
			return nil, err
		}
		ri, ok := idx[trial]
		if !ok {
			continue
		}
		var ct cbm.CellTypes
		if err := ct.FromString(cell); err != nil {
			return nil, fmt.Errorf("runstore: trial %d: %w", trial, err)
		}
		fr := &recs[ri].Rates[ct]
		fr.CSMean, fr.CSMedian, fr.NonCSMean, fr.NonCSMedian = csMean, csMed, ncMean, ncMed
	}
	return recs, rows.Err()
}

func (ss *SQLite) Close() error {
	return ss.db.Close()
}
