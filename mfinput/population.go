// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mfinput generates the mossy fiber input: a Population assigns each
MF a response class and a firing frequency for each stimulus condition, and
a Poisson generator turns a frequency profile into spikes every timestep.
*/
package mfinput

import (
	"math/rand"

	"github.com/emer/cbm/netparams"
	"github.com/goki/ki/kit"
)

// Classes are the MF response classes
type Classes int32

//go:generate stringer -type=Classes

var KiT_Classes = kit.Enums.AddEnum(ClassesN, kit.NotBitFlag, nil)

const (
	// Background MFs fire at background rates and do not respond to the CS
	Background Classes = iota

	// Tonic MFs fire at tonic rates throughout the CS
	Tonic

	// Phasic MFs fire at phasic rates at CS onset
	Phasic

	// Context MFs fire at context rates at all times
	Context

	// Collateral MFs are driven by the deep nucleus and never fire on their own
	Collateral

	ClassesN
)

// Population holds the per-MF frequency profiles (Hz) for each stimulus
// condition. Profiles are computed once at construction and are read-only.
type Population struct {
	Class     []Classes `desc:"response class of each MF"`
	BgFr      []float32 `desc:"frequency outside the CS"`
	TonicFr   []float32 `desc:"tonic MFs at tonic rates, others at background"`
	PhasicFr  []float32 `desc:"frequency during the phasic part of the CS"`
	CSTonicFr []float32 `desc:"frequency during the tonic part of the CS"`
}

// NewPopulation assigns classes and frequencies to n MFs from the seed in mp
func NewPopulation(n int, mp *netparams.MFParams) *Population {
	pop := &Population{}
	pop.Class = make([]Classes, n)
	pop.BgFr = make([]float32, n)
	pop.TonicFr = make([]float32, n)
	pop.PhasicFr = make([]float32, n)
	pop.CSTonicFr = make([]float32, n)

	rnd := rand.New(rand.NewSource(int64(mp.Seed)))
	perm := rnd.Perm(n)
	nColl := int(mp.CollFrac * float32(n))
	nCtxt := int(mp.ContextFrac * float32(n))
	nTonic := int(mp.TonicFrac * float32(n))
	nPhasic := int(mp.PhasicFrac * float32(n))
	pi := 0
	assign := func(num int, cl Classes) {
		for i := 0; i < num && pi < n; i++ {
			pop.Class[perm[pi]] = cl
			pi++
		}
	}
	assign(nColl, Collateral)
	assign(nCtxt, Context)
	assign(nTonic, Tonic)
	assign(nPhasic, Phasic)

	uniform := func(lo, hi float32) float32 {
		return lo + rnd.Float32()*(hi-lo)
	}
	for i, cl := range pop.Class {
		bg := uniform(mp.BgFreqMin, mp.BgFreqMax)
		csbg := uniform(mp.CSBgFreqMin, mp.CSBgFreqMax)
		switch cl {
		case Collateral:
			continue
		case Context:
			f := uniform(mp.ContextFreqMin, mp.ContextFreqMax)
			pop.BgFr[i], pop.TonicFr[i], pop.PhasicFr[i], pop.CSTonicFr[i] = f, f, f, f
		case Tonic:
			f := uniform(mp.TonicFreqMin, mp.TonicFreqMax)
			pop.BgFr[i], pop.TonicFr[i], pop.PhasicFr[i], pop.CSTonicFr[i] = bg, f, f, f
		case Phasic:
			f := uniform(mp.PhasicFreqMin, mp.PhasicFreqMax)
			pop.BgFr[i], pop.TonicFr[i], pop.PhasicFr[i], pop.CSTonicFr[i] = bg, bg, f, csbg
		default:
			pop.BgFr[i], pop.TonicFr[i], pop.PhasicFr[i], pop.CSTonicFr[i] = bg, bg, csbg, csbg
		}
	}
	return pop
}

// BgFreq is the profile outside the CS
func (pop *Population) BgFreq() []float32 { return pop.BgFr }

// TonicFreq is the tonic profile against background: tonic MFs at their
// CS rates, everything else at background
func (pop *Population) TonicFreq() []float32 { return pop.TonicFr }

// PhasicFreq is the profile for the phasic (onset) part of the CS
func (pop *Population) PhasicFreq() []float32 { return pop.PhasicFr }

// CSTonicFreq is the profile for the CS after its phasic part
func (pop *Population) CSTonicFreq() []float32 { return pop.CSTonicFr }

// NumClass returns the number of MFs in given class
func (pop *Population) NumClass(cl Classes) int {
	n := 0
	for _, c := range pop.Class {
		if c == cl {
			n++
		}
	}
	return n
}
