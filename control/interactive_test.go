// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"testing"
	"time"

	"github.com/emer/cbm"
	"github.com/emer/cbm/spikes"
	"github.com/emer/cbm/stepper"
)

func interactiveControl(t *testing.T, ntrials int) (*Control, *Interactive, *fakeKernel) {
	rc := testRun()
	rc.TrainingTrials = ntrials
	c, fk, _, _ := testControl(t, rc)
	it := NewInteractive(c)
	c.FE = it
	return c, it, fk
}

func runAsync(c *Control) chan error {
	done := make(chan error, 1)
	go func() { done <- c.RunTrials() }()
	return done
}

func waitDone(t *testing.T, done chan error) {
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not finish\n")
	}
}

func waitPaused(t *testing.T, st *stepper.Stepper) {
	for i := 0; i < 500; i++ {
		if st.IsPaused() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("stepper did not pause\n")
}

func TestInteractiveRun(t *testing.T) {
	c, it, fk := interactiveControl(t, 3)
	ends := 0
	it.OnTrialEnd = func(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) { ends++ }
	it.Step.Run()
	waitDone(t, runAsync(c))
	if fk.steps != 60 || ends != 3 {
		t.Errorf("running: %d steps %d trial ends, want 60 and 3\n", fk.steps, ends)
	}
}

func TestInteractiveStepping(t *testing.T) {
	c, it, fk := interactiveControl(t, 3)
	it.Step.StartStepping(1)
	done := runAsync(c)
	waitPaused(t, it.Step)
	if fk.steps != 20 {
		t.Errorf("one trial step: %d steps\n", fk.steps)
	}
	it.Step.StartStepping(1)
	waitPaused(t, it.Step)
	if fk.steps != 40 {
		t.Errorf("two trial steps: %d steps\n", fk.steps)
	}
	it.Step.Run()
	waitDone(t, done)
	if fk.steps != 60 {
		t.Errorf("continue: %d steps\n", fk.steps)
	}
}

func TestInteractiveStopWhilePaused(t *testing.T) {
	c, it, fk := interactiveControl(t, 3)
	it.Step.StartStepping(1)
	done := runAsync(c)
	waitPaused(t, it.Step)
	it.Step.Stop()
	waitDone(t, done)
	if fk.steps != 20 || !c.Stopped() {
		t.Errorf("stop while paused: %d steps, stopped %v\n", fk.steps, c.Stopped())
	}
}

func TestInteractivePauseRequest(t *testing.T) {
	c, it, fk := interactiveControl(t, 3)
	it.Step.Run()
	ends := 0
	// a pause requested during a trial takes effect at its end
	it.OnTrialEnd = func(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) {
		ends++
		if trial == 0 {
			it.Step.Pause()
		}
	}
	done := runAsync(c)
	waitPaused(t, it.Step)
	if fk.steps != 20 || ends != 1 {
		t.Errorf("pause: %d steps, %d trial ends\n", fk.steps, ends)
	}
	it.Step.Run()
	waitDone(t, done)
	if fk.steps != 60 {
		t.Errorf("after continue: %d steps\n", fk.steps)
	}
}
