// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expt

import (
	"os"
	"path/filepath"
	"testing"
)

var sessionSrc = `
trials:
  csonly:
    use_cs: true
    cs_onset: 200
    cs_len: 50
  csus:
    use_cs: true
    cs_onset: 200
    cs_len: 50
    cs_percent: 80
    use_us: true
    us_onset: 245
blocks:
  acq:
    - {trial: csus, count: 2}
    - {trial: csonly, count: 1}
  ext:
    - {trial: csonly, count: 2}
session:
  - {block: acq, count: 2}
  - {block: ext, count: 1}
`

func TestParseSession(t *testing.T) {
	ss, err := ParseSession([]byte(sessionSrc))
	if err != nil {
		t.Fatal(err)
	}
	if ss.TrialDefs.Len() != 2 || ss.TrialDefs.KeyByIdx(0) != "csonly" || ss.TrialDefs.KeyByIdx(1) != "csus" {
		t.Errorf("trial definitions out of file order\n")
	}
	if ss.Blocks.Len() != 2 || ss.Blocks.KeyByIdx(0) != "acq" {
		t.Errorf("blocks out of file order\n")
	}
	csonly, _ := ss.TrialDefs.ValByKey("csonly")
	if csonly.CSPercent != 100 || csonly.UseUS || csonly.CSLen() != 50 || csonly.CSOffset != 250 {
		t.Errorf("csonly trial: %+v\n", csonly)
	}

	ex := ss.Experiment("test")
	want := []string{"csus", "csus", "csonly", "csus", "csus", "csonly", "csonly", "csonly"}
	if ex.NumTrials() != len(want) {
		t.Fatalf("expanded %d trials, want %d\n", ex.NumTrials(), len(want))
	}
	for i, nm := range want {
		if ex.Trials[i].Name != nm {
			t.Errorf("trial %d: %s, want %s\n", i, ex.Trials[i].Name, nm)
		}
	}
	if ex.Trials[0].USOnset != 245 || !ex.Trials[0].UseUS || ex.Trials[0].CSPercent != 80 {
		t.Errorf("csus trial: %+v\n", ex.Trials[0])
	}
}

func TestSessionErrors(t *testing.T) {
	bad := map[string]string{
		"undefined trial": "trials:\n  a: {cs_onset: 1}\nblocks:\n  b:\n    - {trial: c, count: 1}\n",
		"undefined block": "trials:\n  a: {cs_onset: 1}\nsession:\n  - {block: b, count: 1}\n",
		"duplicate trial": "trials:\n  a: {cs_onset: 1}\n  a: {cs_onset: 2}\n",
		"negative timing": "trials:\n  a: {cs_onset: -1}\n",
		"not a mapping":   "trials:\n  - a\n",
	}
	for nm, src := range bad {
		if _, err := ParseSession([]byte(src)); err == nil {
			t.Errorf("%s: expected error\n", nm)
		}
	}
}

func TestOpenExperiment(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "delay.yaml")
	if err := os.WriteFile(fn, []byte(sessionSrc), 0644); err != nil {
		t.Fatal(err)
	}
	ex, err := OpenExperiment(fn)
	if err != nil {
		t.Fatal(err)
	}
	if ex.Name != "delay" || ex.NumTrials() != 8 {
		t.Errorf("experiment %s with %d trials\n", ex.Name, ex.NumTrials())
	}
	if _, err := OpenExperiment(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file should fail\n")
	}
}
