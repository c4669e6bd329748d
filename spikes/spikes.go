// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikes counts spikes per cell over the pre-CS and CS periods of a
trial, and computes mean and median firing rates from those counts.

Timesteps before the CS count as non-CS, timesteps inside the CS window
count as CS, and timesteps after the CS are not counted at all.
*/
package spikes

import (
	"fmt"
	"slices"

	"github.com/emer/cbm"
)

// SpikeSum is the running spike count of one cell type
type SpikeSum struct {
	NumCells     int      `desc:"number of cells of this type"`
	CSSum        uint64   `desc:"total spikes within the CS window"`
	NonCSSum     uint64   `desc:"total spikes before the CS"`
	CSCounter    []uint32 `desc:"per-cell spikes within the CS window"`
	NonCSCounter []uint32 `desc:"per-cell spikes before the CS"`
}

// FiringRate is the firing rate summary (Hz) of one cell type
type FiringRate struct {
	CSMean      float64 `desc:"mean rate over the CS window"`
	CSMedian    float64 `desc:"median rate over the CS window"`
	NonCSMean   float64 `desc:"mean rate over the pre-CS period"`
	NonCSMedian float64 `desc:"median rate over the pre-CS period"`
}

func (fr FiringRate) String() string {
	return fmt.Sprintf("CS %.2f / %.2f Hz, non-CS %.2f / %.2f Hz (mean / median)", fr.CSMean, fr.CSMedian, fr.NonCSMean, fr.NonCSMedian)
}

// RatesTable formats the rates of every type, one line per type
func RatesTable(rates *[cbm.CellTypesN]FiringRate, eol string) string {
	s := ""
	for ct := cbm.CellTypes(0); ct < cbm.CellTypesN; ct++ {
		s += fmt.Sprintf("%-3s %v%s", ct.String(), rates[ct], eol)
	}
	return s
}

// Sums holds the spike counts of every cell type
type Sums struct {
	Types [cbm.CellTypesN]SpikeSum
}

// Init allocates zeroed counters for the given population sizes
func (ss *Sums) Init(sizes [cbm.CellTypesN]int) {
	for ct := range ss.Types {
		sm := &ss.Types[ct]
		sm.NumCells = sizes[ct]
		sm.CSSum = 0
		sm.NonCSSum = 0
		sm.CSCounter = make([]uint32, sizes[ct])
		sm.NonCSCounter = make([]uint32, sizes[ct])
	}
}

// Record adds the spikes of timestep ts. spk has one 0/1 flag per cell for
// each type; a nil entry contributes nothing.
func (ss *Sums) Record(ts, csStart, csLen int, spk *[cbm.CellTypesN][]uint8) {
	cs := ts >= csStart && ts < csStart+csLen
	if !cs && ts >= csStart {
		return
	}
	for ct := range ss.Types {
		sm := &ss.Types[ct]
		sp := spk[ct]
		n := min(len(sp), sm.NumCells)
		if cs {
			for i := 0; i < n; i++ {
				sm.CSSum += uint64(sp[i])
				sm.CSCounter[i] += uint32(sp[i])
			}
		} else {
			for i := 0; i < n; i++ {
				sm.NonCSSum += uint64(sp[i])
				sm.NonCSCounter[i] += uint32(sp[i])
			}
		}
	}
}

// Reset zeroes all counts, keeping the allocated counters
func (ss *Sums) Reset() {
	for ct := range ss.Types {
		sm := &ss.Types[ct]
		sm.CSSum = 0
		sm.NonCSSum = 0
		clear(sm.CSCounter)
		clear(sm.NonCSCounter)
	}
}

// Consistent returns true if every sum equals the total of its per-cell
// counters. Only valid before FiringRates sorts the counters.
func (ss *Sums) Consistent() bool {
	for ct := range ss.Types {
		sm := &ss.Types[ct]
		if total(sm.CSCounter) != sm.CSSum || total(sm.NonCSCounter) != sm.NonCSSum {
			return false
		}
	}
	return true
}

// FiringRates computes the rates of every type, given the duration in
// seconds of the CS window and of the pre-CS period. The per-cell counters
// are sorted in place to get the medians, so Reset must be called before
// counting again.
func (ss *Sums) FiringRates(csSecs, preCSSecs float64) [cbm.CellTypesN]FiringRate {
	var fr [cbm.CellTypesN]FiringRate
	for ct := range ss.Types {
		sm := &ss.Types[ct]
		slices.Sort(sm.NonCSCounter)
		slices.Sort(sm.CSCounter)
		fr[ct].NonCSMedian = Median(sm.NonCSCounter, preCSSecs)
		fr[ct].CSMedian = Median(sm.CSCounter, csSecs)
		fr[ct].NonCSMean = Mean(sm.NonCSSum, sm.NumCells, preCSSecs)
		fr[ct].CSMean = Mean(sm.CSSum, sm.NumCells, csSecs)
	}
	return fr
}

// Median returns the median rate of sorted per-cell counts over secs:
// the average of the two middle counts for even n, the middle count
// for odd n. Returns 0 for no cells or no time.
func Median(sorted []uint32, secs float64) float64 {
	n := len(sorted)
	if n == 0 || secs <= 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2]) / secs
	}
	return float64(uint64(sorted[n/2-1])+uint64(sorted[n/2])) / (2 * secs)
}

// Mean returns the mean rate of sum spikes over n cells and secs.
// Returns 0 for no cells or no time.
func Mean(sum uint64, n int, secs float64) float64 {
	if n <= 0 || secs <= 0 {
		return 0
	}
	return float64(sum) / (secs * float64(n))
}

func total(cnt []uint32) uint64 {
	var t uint64
	for _, c := range cnt {
		t += uint64(c)
	}
	return t
}
