// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfinput

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/cbm/netparams"
)

func testMFParams() *netparams.MFParams {
	mp := &netparams.MFParams{}
	mp.Defaults()
	mp.TonicFrac = 0.25
	mp.PhasicFrac = 0.25
	mp.ContextFrac = 0.125
	mp.CollFrac = 0.125
	mp.Seed = 5
	return mp
}

func TestPopulation(t *testing.T) {
	mp := testMFParams()
	pop := NewPopulation(64, mp)
	want := map[Classes]int{Collateral: 8, Context: 8, Tonic: 16, Phasic: 16, Background: 16}
	for cl, n := range want {
		if got := pop.NumClass(cl); got != n {
			t.Errorf("%v: %d MFs, want %d\n", cl, got, n)
		}
	}
	for i, cl := range pop.Class {
		bg, ph, ct := pop.BgFreq()[i], pop.PhasicFreq()[i], pop.CSTonicFreq()[i]
		switch cl {
		case Collateral:
			if bg != 0 || ph != 0 || ct != 0 {
				t.Errorf("collateral %d has frequency: %v %v %v\n", i, bg, ph, ct)
			}
		case Phasic:
			if ph < mp.PhasicFreqMin || ph > mp.PhasicFreqMax {
				t.Errorf("phasic %d out of range: %v\n", i, ph)
			}
		case Tonic:
			if ct < mp.TonicFreqMin || ct > mp.TonicFreqMax || pop.TonicFreq()[i] != ct {
				t.Errorf("tonic %d out of range: %v\n", i, ct)
			}
		default:
			if bg < mp.BgFreqMin || bg > mp.ContextFreqMax {
				t.Errorf("%v %d background out of range: %v\n", cl, i, bg)
			}
		}
	}

	p2 := NewPopulation(64, mp)
	for i := range pop.Class {
		if pop.Class[i] != p2.Class[i] || pop.BgFr[i] != p2.BgFr[i] {
			t.Errorf("same seed gives different population at %d\n", i)
			break
		}
	}
}

func TestPoissonRate(t *testing.T) {
	n := 200
	pg := NewPoisson(n, 3, 0, 1)
	freq := make([]float32, n)
	for i := range freq {
		freq[i] = 50
	}
	steps := 2000
	tot := 0
	for ts := 0; ts < steps; ts++ {
		for _, s := range pg.CalcPoissActivity(freq) {
			tot += int(s)
		}
	}
	rate := float32(tot) / (float32(n) * float32(steps) * 0.001)
	// refractory recovery is immediate with tau 0, so the rate should be close to nominal
	if math32.Abs(rate-50) > 5 {
		t.Errorf("poisson rate: %v, want ~50\n", rate)
	}

	zero := make([]float32, n)
	for ts := 0; ts < 100; ts++ {
		for i, s := range pg.CalcPoissActivity(zero) {
			if s != 0 {
				t.Fatalf("spike at zero frequency: mf %d ts %d\n", i, ts)
			}
		}
	}
}

func TestPoissonRefractory(t *testing.T) {
	pg := NewPoisson(1, 1, 10, 1)
	freq := []float32{1000}
	tot := 0
	for ts := 0; ts < 1000; ts++ {
		tot += int(pg.CalcPoissActivity(freq)[0])
	}
	// at 1000 Hz every step would spike without the refractory recovery
	if tot == 0 || tot > 500 {
		t.Errorf("refractory spike count: %d\n", tot)
	}
	if pg.Thresh[0] < 0 || pg.Thresh[0] > 1 {
		t.Errorf("threshold out of range: %v\n", pg.Thresh[0])
	}

	tm := pg.CalcTrueMFs([]float32{0})
	if tm[0] {
		t.Errorf("zero-frequency MF marked as true MF\n")
	}
	if !pg.CalcTrueMFs([]float32{10})[0] {
		t.Errorf("active MF not marked as true MF\n")
	}
}

func TestPoissonDeterminism(t *testing.T) {
	// MF 3 alone vs. MF 3 with busy neighbors: same seed, same spike train
	a := NewPoisson(4, 7, 0, 1)
	b := NewPoisson(8, 7, 0, 1)
	fa := []float32{0, 0, 0, 200}
	fb := []float32{300, 300, 300, 200, 300, 300, 300, 300}
	tot := 0
	for ts := 0; ts < 1000; ts++ {
		sa := a.CalcPoissActivity(fa)[3]
		sb := b.CalcPoissActivity(fb)[3]
		if sa != sb {
			t.Fatalf("mf 3 spike differs at ts %d: %d vs %d\n", ts, sa, sb)
		}
		tot += int(sa)
	}
	if tot == 0 {
		t.Errorf("no spikes at 200 Hz\n")
	}

	c := NewPoisson(4, 8, 0, 1)
	a = NewPoisson(4, 7, 0, 1)
	diff := 0
	for ts := 0; ts < 1000; ts++ {
		if a.CalcPoissActivity(fa)[3] != c.CalcPoissActivity(fa)[3] {
			diff++
		}
	}
	if diff == 0 {
		t.Errorf("different seeds gave identical spike trains\n")
	}
}
