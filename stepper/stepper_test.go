// Copyright (c) 2020, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stepper

import (
	"testing"
	"time"
)

func TestStepping(t *testing.T) {
	st := New()
	if cur, _ := st.CheckStates(); cur != Stopped {
		t.Errorf("new stepper should be stopped: %v\n", cur)
	}
	paused := 0
	st.RegisterPauseNotifier(func(sv any) { paused++ }, nil)
	st.SetNSteps(2)
	st.StartStepping(0)
	if s := st.StepPoint(); s != Stepping {
		t.Errorf("first step point: %v\n", s)
	}
	if s := st.StepPoint(); s != Paused {
		t.Errorf("second step point should pause: %v\n", s)
	}
	if !st.IsPaused() || paused != 1 {
		t.Errorf("paused %v, notified %d\n", st.IsPaused(), paused)
	}
	st.Run()
	if s := st.StepPoint(); s != Running {
		t.Errorf("after Run: %v\n", s)
	}
	st.Pause()
	if st.IsPaused() {
		t.Errorf("pause is applied at the step point, not on request\n")
	}
	if s := st.StepPoint(); s != Paused {
		t.Errorf("requested pause: %v\n", s)
	}
}

func TestWaitToGo(t *testing.T) {
	st := New()
	st.Enter(Paused)
	done := make(chan RunState)
	go func() { done <- st.WaitToGo() }()
	select {
	case <-done:
		t.Fatalf("WaitToGo returned while paused\n")
	case <-time.After(20 * time.Millisecond):
	}
	st.Run()
	if s := <-done; s != Running {
		t.Errorf("WaitToGo after Run: %v\n", s)
	}

	st.Enter(Paused)
	go func() { done <- st.WaitToGo() }()
	st.Stop()
	if s := <-done; s != Stopped {
		t.Errorf("WaitToGo after Stop: %v\n", s)
	}
	if !st.StopRequested() || st.Active() {
		t.Errorf("stop not recorded\n")
	}
}
