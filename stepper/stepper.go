// Copyright (c) 2020, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stepper is the run-state machine shared by the interactive front
// ends. The simulation calls StepPoint at each trial boundary; the user
// interface requests state changes (pause, continue, step, stop) from its own
// goroutine, and the simulation waits in WaitToGo while paused.
//
// There are two "running" states, Stepping and Running. In the Stepping
// state StepPoint counts down StepsRemaining and pauses when it reaches 0;
// in the Running state it only looks for pause and stop requests.
package stepper

import (
	"sync"

	"github.com/goki/ki/kit"
)

type RunState int32

const (
	Created  RunState = iota // this is the initial state, when a stepper is first created
	Stopped                  // execution is stopped. The sim is NOT waiting, so running again is basically a restart
	Paused                   // execution is paused. The sim is waiting for further instructions, and can continue, or stop
	Stepping                 // the application is running, but will pause after StepsRemaining step points
	Running                  // the application is running, and will NOT pause at step points unless asked to
	RunStateN
)

var KiT_RunState = kit.Enums.AddEnum(RunStateN, kit.NotBitFlag, nil)

//go:generate stringer -type=RunState

// PauseNotifier is called when stepping runs out of steps and pauses
type PauseNotifier func(sv any)

type Stepper struct {
	StateMut       sync.Mutex    `view:"-" desc:"mutex for RunState"`
	StateChange    *sync.Cond    `view:"-" desc:"state change condition variable"`
	CurState       RunState      `desc:"current run state"`
	RequestedState RunState      `desc:"requested run state"`
	PauseNotifier  PauseNotifier `view:"-" desc:"function to deal with any changes on client side when paused after stepping"`
	PNState        any           `view:"-" desc:"arbitrary state information for pause notifier"`
	StepsPerClick  int           `desc:"number of steps to execute before pausing"`
	StepsRemaining int           `desc:"number of steps yet to execute before pausing"`
}

// New makes a new Stepper. Always call this to create a Stepper, so that
// initialization will be run correctly.
func New() *Stepper { return new(Stepper).Init() }

// Init puts everything into a good state before starting a run.
// Called automatically by New, and should be called before running again
// after a Stop.
func (st *Stepper) Init() *Stepper {
	if st.StateChange == nil {
		st.StateChange = sync.NewCond(&st.StateMut)
	}
	st.StateMut.Lock()
	st.StepsPerClick = 1
	st.StepsRemaining = 1
	st.StateMut.Unlock()
	st.Enter(Stopped)
	return st
}

// PleaseEnter requests that the running application enter the requested
// state. The state changes at the next StepPoint.
func (st *Stepper) PleaseEnter(state RunState) {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	st.RequestedState = state
	st.StateChange.Broadcast()
}

// Enter unconditionally enters the specified RunState, without checking or
// waiting
func (st *Stepper) Enter(state RunState) {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	st.CurState = state
	st.RequestedState = state
	st.StateChange.Broadcast()
}

// RegisterPauseNotifier registers a PauseNotifier callback
func (st *Stepper) RegisterPauseNotifier(notifier PauseNotifier, pnState any) {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	st.PauseNotifier = notifier
	st.PNState = pnState
}

// Stop requests to enter the Stopped state. Doesn't actually change state,
// and does not wait.
func (st *Stepper) Stop() {
	st.PleaseEnter(Stopped)
}

// StopRequested checks for a request to enter the Stopped state
func (st *Stepper) StopRequested() bool {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	return st.RequestedState == Stopped
}

// Pause requests a pause at the next step point
func (st *Stepper) Pause() {
	st.PleaseEnter(Paused)
}

// Run (continue) without pausing at step points
func (st *Stepper) Run() {
	st.Enter(Running)
}

// IsPaused returns true if the application is paused
func (st *Stepper) IsPaused() bool {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	return st.CurState == Paused
}

// Active checks for the application either Running or Stepping (neither
// Paused nor Stopped)
func (st *Stepper) Active() bool {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	return st.CurState == Running || st.CurState == Stepping
}

// StartStepping enters the Stepping run state, pausing after nSteps step
// points (or StepsPerClick if nSteps <= 0)
func (st *Stepper) StartStepping(nSteps int) {
	st.StateMut.Lock()
	if nSteps > 0 {
		st.StepsRemaining = nSteps
	} else {
		st.StepsRemaining = st.StepsPerClick
	}
	st.StateMut.Unlock()
	st.Enter(Stepping)
}

// SetNSteps sets the number of step points to go through before pausing
func (st *Stepper) SetNSteps(toTake int) {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	st.StepsPerClick = toTake
	st.StepsRemaining = toTake
}

// WaitToGo waits for the application to enter Running or Stepping, or for
// a stop. Returns the state entered.
func (st *Stepper) WaitToGo() RunState {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	for {
		switch {
		case st.RequestedState == Stopped || st.CurState == Stopped:
			st.CurState = Stopped
			return Stopped
		case st.CurState == Running || st.CurState == Stepping:
			return st.CurState
		}
		st.StateChange.Wait()
	}
}

// CheckStates returns the current and requested RunState
func (st *Stepper) CheckStates() (cur, req RunState) {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	return st.CurState, st.RequestedState
}

// StepPoint applies any pending request at a step boundary and returns the
// resulting state. If the application is:
// Running: keep going unless a pause or stop was requested.
// Stepping: decrement StepsRemaining, and pause when it runs out.
// Stopped: the application should return (i.e., stop completely).
// StepPoint never blocks: call WaitToGo to wait out a pause.
func (st *Stepper) StepPoint() RunState {
	st.StateMut.Lock()
	defer st.StateMut.Unlock()
	switch st.RequestedState {
	case Stopped, Paused:
		st.CurState = st.RequestedState
	case Stepping:
		st.CurState = Stepping
		st.StepsRemaining--
		if st.StepsRemaining <= 0 {
			st.CurState = Paused
			st.RequestedState = Paused
			st.StepsRemaining = st.StepsPerClick
			if st.PauseNotifier != nil {
				st.PauseNotifier(st.PNState)
			}
		}
	case Running:
		st.CurState = Running
	}
	st.StateChange.Broadcast()
	return st.CurState
}
