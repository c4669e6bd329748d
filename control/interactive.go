// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"github.com/emer/cbm"
	"github.com/emer/cbm/spikes"
	"github.com/emer/cbm/stepper"
)

// Interactive is the FrontEnd logic shared by the interactive front ends.
// The user interface drives Step from its own goroutine: Pause and Stop
// take effect at the end of the current trial, StartStepping(n) runs n
// trials and pauses, and Run continues. While paused the engine waits in
// PollEvents.
type Interactive struct {
	Step *stepper.Stepper
	Ctrl *Control

	// OnTrialEnd, if set, is called with the rates of each trial before the
	// pause check
	OnTrialEnd func(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate)
}

// NewInteractive returns an Interactive for c with a new stepper, in the
// Stopped state
func NewInteractive(c *Control) *Interactive {
	return &Interactive{Step: stepper.New(), Ctrl: c}
}

// PollEvents passes stop requests to the engine, and waits while paused
func (it *Interactive) PollEvents() {
	cur, req := it.Step.CheckStates()
	switch {
	case req == stepper.Stopped:
		it.Ctrl.Stop()
	case cur == stepper.Paused:
		if it.Step.WaitToGo() == stepper.Stopped {
			it.Ctrl.Stop()
		}
	}
}

// Paused returns true if the stepper paused at the last trial end
func (it *Interactive) Paused() bool {
	cur, req := it.Step.CheckStates()
	return cur == stepper.Paused && req != stepper.Stopped
}

// TrialEnd is the step point of the stepper
func (it *Interactive) TrialEnd(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) {
	if it.OnTrialEnd != nil {
		it.OnTrialEnd(trial, name, rates)
	}
	if it.Step.StepPoint() == stepper.Stopped {
		it.Ctrl.Stop()
	}
}
