// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gui

import (
	"io"
	"strings"
	"testing"

	"github.com/emer/cbm"
	"github.com/emer/cbm/control"
	"github.com/emer/cbm/netparams"
	"github.com/emer/cbm/spikes"
	"github.com/emer/cbm/stepper"
)

func TestNew(t *testing.T) {
	c := control.New(nil)
	fe := New(c)
	if c.FE != fe {
		t.Errorf("front end not set on the control\n")
	}
	if cur, _ := fe.Step.CheckStates(); cur != stepper.Stopped {
		t.Errorf("new front end should be stopped: %v\n", cur)
	}
	if fe.Paused() {
		t.Errorf("stopped front end is not paused\n")
	}
}

func TestRatesText(t *testing.T) {
	var rates [cbm.CellTypesN]spikes.FiringRate
	rates[cbm.NC].CSMean = 12
	txt := ratesText(7, "Training", &rates)
	if !strings.HasPrefix(txt, "<b>Trial 7: Training</b>") {
		t.Errorf("header: %s\n", txt)
	}
	if n := strings.Count(txt, "<br>"); n != int(cbm.CellTypesN)+1 {
		t.Errorf("line breaks: %d\n", n)
	}
	if !strings.Contains(txt, "NC  CS 12.00") {
		t.Errorf("NC rate missing: %s\n", txt)
	}
}

func TestWaitAfterStop(t *testing.T) {
	bf := &netparams.Build{}
	bf.Defaults()
	cp := &bf.Con
	cp.NumMF = 8
	cp.NumGR = 64
	cp.NumGO = 4
	cp.NumSC = 8
	cp.NumBC = 4
	cp.NumPC = 4
	cp.NumIO = 2
	cp.NumNC = 4
	cp.GOfromGR = 16
	cp.SCfromGR = 16
	cp.PCfromSC = 4
	cp.PCfromBC = 2
	cp.Update()
	bf.Act.Update()

	rc := &control.RunConfig{}
	rc.Defaults()
	rc.TrialTime = 50
	rc.CSStart = 20
	rc.CSLength = 10
	rc.CSPhasicSize = 5
	rc.TrainingTrials = 5
	rc.Rasters = false
	rc.ReportGO = false
	c := control.New(rc)
	if err := c.BuildSim(bf, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.InitRun(); err != nil {
		t.Fatal(err)
	}
	fe := New(c)

	// one trial, then the run waits paused until the window closes
	fe.Step.StartStepping(1)
	fe.start()
	fe.Step.Stop()
	fe.Wait()
	if fe.IsRunning() || c.IsRunning() {
		t.Errorf("still running after Wait\n")
	}
	if c.Trial.Cur != 1 {
		t.Errorf("trials run: %d, want 1\n", c.Trial.Cur)
	}
	if err := c.SaveSim(io.Discard); err != nil {
		t.Errorf("save after Wait: %v\n", err)
	}
}
