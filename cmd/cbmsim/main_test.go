// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const tinyBuild = `connectivity:
  num_zones: 1
  num_mf: 8
  num_gr: 64
  num_go: 4
  num_sc: 8
  num_bc: 4
  num_pc: 4
  num_io: 2
  num_nc: 4
  go_from_gr: 16
  sc_from_gr: 16
  pc_from_sc: 4
  pc_from_bc: 2
`

const tinyRun = `trial_time: 50
cs_start: 20
cs_length: 10
cs_phasic_size: 5
ms_pre_cs: 5
ms_post_cs: 5
report_go: false
`

func execCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s %v: %v\n%s", cmd.Name(), args, err, out.String())
	}
	return out.String()
}

func TestBuildRun(t *testing.T) {
	dir := t.TempDir()
	bfn := filepath.Join(dir, "tiny.yaml")
	rfn := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(bfn, []byte(tinyBuild), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rfn, []byte(tinyRun), 0644); err != nil {
		t.Fatal(err)
	}
	sim := filepath.Join(dir, "tiny.sim.gz")
	execCmd(t, newBuildCmd(), "--seed", "5", bfn, sim)
	if _, err := os.Stat(sim); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	res := execCmd(t, newRunCmd(), "--config", rfn, "--trials", "2", "--rasters", "--out", out, "--store", "sqlite", sim)
	if !strings.Contains(res, "tiny_out.sim") {
		t.Errorf("run output: %s\n", res)
	}
	for _, fn := range []string{"tiny_out.sim", "tiny_trials.tsv", "tiny_allPCRaster.bin", "tiny_sampleGRRaster.bin", "runs.db"} {
		if _, err := os.Stat(filepath.Join(out, fn)); err != nil {
			t.Errorf("missing output: %v\n", err)
		}
	}
	// 64 GRs sampled over 2 trials of a 20 step window
	if b, err := os.ReadFile(filepath.Join(out, "tiny_sampleGRRaster.bin")); err == nil && len(b) != 64*40 {
		t.Errorf("GR raster size: %d\n", len(b))
	}
	log, err := os.ReadFile(filepath.Join(out, "tiny_trials.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(log), "\n"); n != 3 {
		t.Errorf("trial log lines: %d, want 3\n", n)
	}
}

func TestBuildTemplate(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "default.yaml")
	execCmd(t, newBuildCmd(), "--template", fn)
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "num_gr: 1048576") {
		t.Errorf("template does not have the default GR count\n")
	}
}

func TestRunBadMode(t *testing.T) {
	dir := t.TempDir()
	bfn := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(bfn, []byte(tinyBuild), 0644); err != nil {
		t.Fatal(err)
	}
	sim := filepath.Join(dir, "tiny.sim")
	execCmd(t, newBuildCmd(), bfn, sim)
	cmd := newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mode", "bogus", "--out", dir, sim})
	if err := cmd.Execute(); err == nil {
		t.Errorf("expected error for unknown mode\n")
	}
}
