// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import "github.com/goki/ki/kit"

// Phases are the parts of a trial relative to the CS
type Phases int32

//go:generate stringer -type=Phases

var KiT_Phases = kit.Enums.AddEnum(PhasesN, kit.NotBitFlag, nil)

func (ev Phases) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Phases) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	PreCS Phases = iota
	CS
	PostCS
	PhasesN
)

// PhaseOf returns the phase of timestep ts for a CS of csLen steps at csStart
func PhaseOf(ts, csStart, csLen int) Phases {
	switch {
	case ts < csStart:
		return PreCS
	case ts < csStart+csLen:
		return CS
	default:
		return PostCS
	}
}

// MFSources are the frequency profiles driving the MFs on a timestep
type MFSources int32

//go:generate stringer -type=MFSources

var KiT_MFSources = kit.Enums.AddEnum(MFSourcesN, kit.NotBitFlag, nil)

func (ev MFSources) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *MFSources) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// BackgroundMF is used outside the CS and on trials without a CS
	BackgroundMF MFSources = iota

	// PhasicMF is used for the first phasic steps of the CS
	PhasicMF

	// TonicMF is used for the rest of the CS
	TonicMF

	MFSourcesN
)

// SelectMF returns the MF source for timestep ts
func SelectMF(ts, csStart, csLen, phasicLen int, useCS bool) MFSources {
	if !useCS || ts < csStart || ts >= csStart+csLen {
		return BackgroundMF
	}
	if ts < csStart+phasicLen {
		return PhasicMF
	}
	return TonicMF
}

// TrialTypes are the kinds of trials run by RunTrials, in the order they run
type TrialTypes int32

//go:generate stringer -type=TrialTypes

var KiT_TrialTypes = kit.Enums.AddEnum(TrialTypesN, kit.NotBitFlag, nil)

func (ev TrialTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *TrialTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Tuning trials let the network settle, with plasticity off and no US
	Tuning TrialTypes = iota

	// Detection trials run the full protocol before training starts
	Detection

	// Training trials are recorded in the rasters
	Training

	TrialTypesN
)

// TrialType returns the type of trial number trial in RunTrials
func (rc *RunConfig) TrialType(trial int) TrialTypes {
	switch {
	case trial < rc.HomeoTuningTrials:
		return Tuning
	case trial < rc.HomeoTuningTrials+rc.GranuleActDetectTrials:
		return Detection
	default:
		return Training
	}
}
