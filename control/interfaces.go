// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"io"

	"github.com/emer/cbm"
	"github.com/emer/cbm/netparams"
	"github.com/emer/cbm/spikes"
)

// Kernel is the numeric integration kernel that advances the network state
// one timestep at a time. simcore.Core is the CPU reference version.
type Kernel interface {
	// UpdateErrDrive delivers an error (US) signal of given magnitude to zone zi
	UpdateErrDrive(zi int, mag float32)

	// UpdateTrueMFs sets which MFs fire on their own (vs. nucleus collaterals)
	UpdateTrueMFs(isTrue []bool)

	// UpdateMFInput sets the MF spikes for the next step
	UpdateMFInput(ap []uint8)

	// CalcActivity advances one timestep with the given gains
	CalcActivity(g netparams.Gains)

	// ExportAP returns the current spikes of a cell type (zone 0 for zone types)
	ExportAP(ct cbm.CellTypes) []uint8

	ExportGSumMFGO() []float32
	ExportGSumGRGO() []float32

	// WriteState writes the kernel's copy of the state, in the state file order
	WriteState(w io.Writer) error
}

// PlasticityGate is implemented by kernels that can turn learning off,
// which is done during homeostatic tuning trials
type PlasticityGate interface {
	SetPlasticity(on bool)
}

// FreqSource provides the MF frequency profiles (Hz) of each stimulus
// condition. mfinput.Population is the reference version.
type FreqSource interface {
	BgFreq() []float32
	TonicFreq() []float32
	PhasicFreq() []float32
	CSTonicFreq() []float32
}

// SpikeGen turns frequency profiles into MF spikes.
// mfinput.Poisson is the reference version.
type SpikeGen interface {
	CalcPoissActivity(freq []float32) []uint8
	CalcTrueMFs(bg []float32) []bool
}

// FrontEnd is the user interface attached to a run. The engine calls
// PollEvents once per timestep and repeatedly while Paused at the end of a
// trial; it is the only point where the front end gets control.
type FrontEnd interface {
	// PollEvents processes pending user input without blocking, except that
	// it may wait for input while paused
	PollEvents()

	// Paused returns true if the run should wait at the end of the trial
	Paused() bool

	// TrialEnd is called at the end of each trial with its firing rates
	TrialEnd(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate)
}

// Headless is the FrontEnd of batch runs: it never pauses
type Headless struct{}

func (hl *Headless) PollEvents() {}

func (hl *Headless) Paused() bool { return false }

func (hl *Headless) TrialEnd(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) {}
