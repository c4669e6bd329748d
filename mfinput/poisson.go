// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfinput

import (
	"github.com/chewxy/math32"
	"github.com/goki/gosl/slrand"
	"github.com/goki/gosl/sltype"
)

// Poisson generates MF spikes from a frequency profile, with a relative
// refractory period: after a spike the firing probability drops to zero
// and recovers exponentially with ThreshDecayTau.
// Random numbers come from the counter-based Philox generator keyed on the
// MF index, so the spike train of each MF depends only on the seed and the
// timestep count.
type Poisson struct {
	N         int          `desc:"number of MFs"`
	Dt        float32      `desc:"msec per timestep"`
	ThrDecay  float32      `desc:"fraction of the threshold deficit recovered per timestep"`
	Thresh    []float32    `desc:"current firing probability scale of each MF, in [0,1]"`
	AP        []uint8      `desc:"spikes of the last timestep"`
	IsTrue    []bool       `desc:"true MF flags of the last CalcTrueMFs call"`
	Counter   sltype.Uint2 `desc:"random counter, incremented every timestep"`
	KeyOffset uint32       `desc:"added to MF index to form the random key, derived from the seed"`
}

// NewPoisson returns a generator for n MFs
func NewPoisson(n int, seed uint32, threshDecayTau, msPerTimeStep float32) *Poisson {
	pg := &Poisson{N: n, Dt: msPerTimeStep}
	pg.ThrDecay = 1
	if threshDecayTau > 0 {
		pg.ThrDecay = 1 - math32.Exp(-msPerTimeStep/threshDecayTau)
	}
	pg.Thresh = make([]float32, n)
	for i := range pg.Thresh {
		pg.Thresh[i] = 1
	}
	pg.AP = make([]uint8, n)
	pg.IsTrue = make([]bool, n)
	pg.Counter = sltype.Uint2{X: 0, Y: seed}
	pg.KeyOffset = seed * 0x9E3779B9
	return pg
}

// CalcPoissActivity returns the spikes for one timestep of the given
// frequency profile (Hz). The returned slice is reused on the next call.
func (pg *Poisson) CalcPoissActivity(freq []float32) []uint8 {
	n := min(len(freq), pg.N)
	for i := 0; i < n; i++ {
		pg.Thresh[i] += (1 - pg.Thresh[i]) * pg.ThrDecay
		p := freq[i] * pg.Dt * 0.001 * pg.Thresh[i]
		pg.AP[i] = 0
		if p > 0 && pg.draw(i) < p {
			pg.AP[i] = 1
			pg.Thresh[i] = 0
		}
	}
	slrand.CounterIncr(&pg.Counter)
	return pg.AP
}

// draw returns the uniform random number of MF i for the current timestep.
// It does not advance the counter, so draws of different MFs in the same
// timestep are independent of the order they are taken in.
func (pg *Poisson) draw(i int) float32 {
	return slrand.Uint32ToFloat(slrand.Philox2x32(pg.Counter, pg.KeyOffset+uint32(i)).X)
}

// CalcTrueMFs marks the MFs that fire on their own: those with a positive
// frequency in the given background profile. Collaterals have zero
// frequency and are driven by the nucleus instead.
func (pg *Poisson) CalcTrueMFs(bg []float32) []bool {
	for i := range pg.IsTrue {
		pg.IsTrue[i] = i < len(bg) && bg[i] > 0
	}
	return pg.IsTrue
}
