// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/emer/cbm"
)

func testRecs(tag string) []Record {
	recs := make([]Record, 3)
	for i := range recs {
		r := &recs[i]
		r.Tag = tag
		r.Trial = 2 - i // out of order
		r.Name = "Training"
		r.Type = "Training"
		r.Secs = 0.5 * float64(i+1)
		r.Rates[cbm.PC].CSMean = float64(10 + i)
		r.Rates[cbm.GO].NonCSMedian = float64(3 * i)
	}
	return recs
}

func testStore(t *testing.T, st Store) {
	ctx := context.Background()
	for _, tag := range []string{"a", "b"} {
		recs := testRecs(tag)
		for i := range recs {
			if err := st.Add(ctx, &recs[i]); err != nil {
				t.Fatal(err)
			}
		}
	}
	// replace
	rep := testRecs("a")[0]
	rep.Name = "replaced"
	if err := st.Add(ctx, &rep); err != nil {
		t.Fatal(err)
	}

	got, err := st.Trials(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3\n", len(got))
	}
	for i, r := range got {
		if r.Trial != i {
			t.Errorf("record %d has trial %d\n", i, r.Trial)
		}
	}
	if got[2].Name != "replaced" {
		t.Errorf("trial 2 name: %q, want replaced\n", got[2].Name)
	}
	if got[0].Rates[cbm.PC].CSMean != 12 || got[0].Rates[cbm.GO].NonCSMedian != 6 {
		t.Errorf("trial 0 rates not restored: %+v\n", got[0].Rates)
	}
	if got[0].Secs != 1.5 {
		t.Errorf("trial 0 secs: %g\n", got[0].Secs)
	}
	none, err := st.Trials(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unknown tag returned %d records\n", len(none))
	}
	if err := st.Close(); err != nil {
		t.Error(err)
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	st, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	testStore(t, st)
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, "bogus", ""); err == nil {
		t.Error("expected error for unknown kind\n")
	}
	if _, err := Open(ctx, "sqlite", ""); err == nil {
		t.Error("expected error for empty sqlite path\n")
	}
}
