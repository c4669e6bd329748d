// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package runstore keeps the per-trial firing rate records of runs, so that
runs can be compared after the fact. There is an in-memory store and a
SQLite store; Open selects one by kind.
*/
package runstore

import (
	"context"
	"fmt"

	"github.com/emer/cbm"
	"github.com/emer/cbm/spikes"
)

// Record is the summary of one trial
type Record struct {
	Tag   string  `desc:"run tag"`
	Trial int     `desc:"trial number within the run"`
	Name  string  `desc:"trial name: the trial type, or the experiment trial name"`
	Type  string  `desc:"trial type"`
	Secs  float64 `desc:"wall-clock duration of the trial"`

	Rates [cbm.CellTypesN]spikes.FiringRate `desc:"firing rates by cell type"`
}

// Store saves and retrieves trial records.
// Adding a record for an existing tag and trial replaces it.
type Store interface {
	Add(ctx context.Context, rec *Record) error

	// Trials returns the records of the run with given tag, in trial order
	Trials(ctx context.Context, tag string) ([]Record, error)

	Close() error
}

// Open returns a new store of given kind: "memory" (or empty) or "sqlite",
// which uses the database file at path
func Open(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("runstore: unsupported store kind: %s", kind)
	}
}
