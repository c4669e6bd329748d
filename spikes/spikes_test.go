// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikes

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/emer/cbm"
)

const difTol = 1.0e-9

func testSizes() [cbm.CellTypesN]int {
	return [cbm.CellTypesN]int{4, 64, 8, 4, 6, 3, 2, 5}
}

func allSpikes(sizes [cbm.CellTypesN]int, val uint8) *[cbm.CellTypesN][]uint8 {
	var spk [cbm.CellTypesN][]uint8
	for ct := range spk {
		spk[ct] = make([]uint8, sizes[ct])
		for i := range spk[ct] {
			spk[ct][i] = val
		}
	}
	return &spk
}

func TestConservation(t *testing.T) {
	sizes := testSizes()
	var ss Sums
	ss.Init(sizes)
	rnd := rand.New(rand.NewSource(1))
	spk := allSpikes(sizes, 0)
	for ts := 0; ts < 300; ts++ {
		for ct := range spk {
			for i := range spk[ct] {
				spk[ct][i] = uint8(rnd.Intn(2))
			}
		}
		ss.Record(ts, 100, 50, spk)
		if !ss.Consistent() {
			t.Fatalf("sums inconsistent with counters at ts %d\n", ts)
		}
	}
}

func TestPartition(t *testing.T) {
	sizes := testSizes()
	var ss Sums
	ss.Init(sizes)
	spk := allSpikes(sizes, 1)
	csStart, csLen, trialLen := 10, 5, 20
	for ts := 0; ts < trialLen; ts++ {
		ss.Record(ts, csStart, csLen, spk)
	}
	for ct := range ss.Types {
		sm := &ss.Types[ct]
		n := uint64(sizes[ct])
		if sm.NonCSSum != n*uint64(csStart) {
			t.Errorf("%v non-CS sum: %d != %d\n", cbm.CellTypes(ct), sm.NonCSSum, n*uint64(csStart))
		}
		if sm.CSSum != n*uint64(csLen) {
			t.Errorf("%v CS sum: %d != %d\n", cbm.CellTypes(ct), sm.CSSum, n*uint64(csLen))
		}
	}

	// post-CS timesteps alone contribute nothing
	ss.Reset()
	for ts := csStart + csLen; ts < trialLen; ts++ {
		ss.Record(ts, csStart, csLen, spk)
	}
	for ct := range ss.Types {
		if ss.Types[ct].CSSum != 0 || ss.Types[ct].NonCSSum != 0 {
			t.Errorf("%v post-CS counted: %+v\n", cbm.CellTypes(ct), ss.Types[ct])
		}
	}
}

func TestScenarioMF(t *testing.T) {
	var sizes [cbm.CellTypesN]int
	sizes[cbm.MF] = 4
	var ss Sums
	ss.Init(sizes)

	zero := allSpikes(sizes, 0)
	for ts := 0; ts < 20; ts++ {
		ss.Record(ts, 10, 5, zero)
	}
	mf := &ss.Types[cbm.MF]
	if mf.CSSum != 0 || mf.NonCSSum != 0 {
		t.Errorf("zero drive counted spikes: %+v\n", mf)
	}
	fr := ss.FiringRates(0.005, 0.010)
	if fr[cbm.MF].CSMean != 0 {
		t.Errorf("zero drive CS mean: %v\n", fr[cbm.MF].CSMean)
	}

	ss.Reset()
	one := allSpikes(sizes, 1)
	for ts := 0; ts < 20; ts++ {
		ss.Record(ts, 10, 5, one)
	}
	if mf.NonCSSum != 4*10 || mf.CSSum != 4*5 {
		t.Errorf("constant drive: nonCS %d CS %d\n", mf.NonCSSum, mf.CSSum)
	}
	fr = ss.FiringRates(0.005, 0.010)
	// one spike per msec is 1000 Hz
	if math.Abs(fr[cbm.MF].CSMean-1000) > difTol || math.Abs(fr[cbm.MF].NonCSMedian-1000) > difTol {
		t.Errorf("constant drive rates: %+v\n", fr[cbm.MF])
	}
}

func TestResetZero(t *testing.T) {
	sizes := testSizes()
	var ss Sums
	ss.Init(sizes)
	ss.Record(0, 0, 10, allSpikes(sizes, 1))
	ss.Reset()
	if !ss.Consistent() {
		t.Errorf("inconsistent after reset\n")
	}
	for _, secs := range [][2]float64{{2, 1.999}, {0, 0}, {-1, 0.5}} {
		fr := ss.FiringRates(secs[0], secs[1])
		for ct, r := range fr {
			if r != (FiringRate{}) {
				t.Errorf("%v rates after reset, secs %v: %+v\n", cbm.CellTypes(ct), secs, r)
			}
		}
	}

	// empty populations never divide by zero
	var empty Sums
	empty.Init([cbm.CellTypesN]int{})
	fr := empty.FiringRates(1, 1)
	for ct, r := range fr {
		if math.IsNaN(r.CSMean) || math.IsNaN(r.CSMedian) || r != (FiringRate{}) {
			t.Errorf("%v empty rates: %+v\n", cbm.CellTypes(ct), r)
		}
	}
}

func TestMedian(t *testing.T) {
	if m := Median([]uint32{1, 3, 5, 7}, 1); math.Abs(m-4) > difTol {
		t.Errorf("even median: %v\n", m)
	}
	if m := Median([]uint32{1, 3, 5, 7}, 2); math.Abs(m-2) > difTol {
		t.Errorf("even median over 2 secs: %v\n", m)
	}
	if m := Median([]uint32{1, 3, 100}, 1); math.Abs(m-3) > difTol {
		t.Errorf("odd median: %v\n", m)
	}
	if m := Median([]uint32{6}, 0.5); math.Abs(m-12) > difTol {
		t.Errorf("single median: %v\n", m)
	}

	sizes := [cbm.CellTypesN]int{3}
	var ss Sums
	ss.Init(sizes)
	spk := allSpikes(sizes, 0)
	// cell 0 spikes 5 times, cell 1 once, cell 2 three times, all in CS
	pattern := [][3]uint8{{1, 1, 1}, {1, 0, 1}, {1, 0, 1}, {1, 0, 0}, {1, 0, 0}}
	for ts, p := range pattern {
		copy(spk[cbm.MF], p[:])
		ss.Record(ts, 0, len(pattern), spk)
	}
	fr := ss.FiringRates(1, 1)
	if math.Abs(fr[cbm.MF].CSMedian-3) > difTol {
		t.Errorf("odd population CS median: %v\n", fr[cbm.MF].CSMedian)
	}
	if math.Abs(fr[cbm.MF].CSMean-3) > difTol {
		t.Errorf("odd population CS mean: %v\n", fr[cbm.MF].CSMean)
	}
}

func TestRatesTable(t *testing.T) {
	var rates [cbm.CellTypesN]FiringRate
	rates[cbm.PC] = FiringRate{CSMean: 80, CSMedian: 75.5, NonCSMean: 60, NonCSMedian: 58}
	tbl := RatesTable(&rates, "\n")
	lines := strings.Split(strings.TrimSuffix(tbl, "\n"), "\n")
	if len(lines) != int(cbm.CellTypesN) {
		t.Fatalf("lines: %d\n", len(lines))
	}
	if want := "PC  CS 80.00 / 75.50 Hz, non-CS 60.00 / 58.00 Hz (mean / median)"; lines[cbm.PC] != want {
		t.Errorf("PC line:\n%s\nwant:\n%s\n", lines[cbm.PC], want)
	}
}
