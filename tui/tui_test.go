// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emer/cbm"
	"github.com/emer/cbm/control"
	"github.com/emer/cbm/spikes"
	"github.com/emer/cbm/stepper"
)

func TestKeys(t *testing.T) {
	c := control.New(nil)
	var out bytes.Buffer
	fe := New(c, nil, &out)
	if c.FE != fe {
		t.Fatalf("front end not set on the control\n")
	}
	tests := []struct {
		key      byte
		cur, req stepper.RunState
	}{
		{'c', stepper.Running, stepper.Running},
		{'p', stepper.Running, stepper.Paused},
		{'s', stepper.Stepping, stepper.Stepping},
		{'x', stepper.Stepping, stepper.Stepping},
		{'q', stepper.Stepping, stepper.Stopped},
	}
	for _, tt := range tests {
		fe.HandleKey(tt.key)
		cur, req := fe.Step.CheckStates()
		if cur != tt.cur || req != tt.req {
			t.Errorf("key %q: states %v %v, want %v %v\n", tt.key, cur, req, tt.cur, tt.req)
		}
	}
	if !c.Stopped() {
		t.Errorf("q should stop the run\n")
	}
}

func TestReadKeys(t *testing.T) {
	c := control.New(nil)
	fe := New(c, nil, &bytes.Buffer{})
	fe.ReadKeys(strings.NewReader("sp"))
	if _, req := fe.Step.CheckStates(); req != stepper.Paused {
		t.Errorf("last key read should request a pause: %v\n", req)
	}
}

func TestTrialEnd(t *testing.T) {
	c := control.New(nil)
	var out bytes.Buffer
	fe := New(c, nil, &out)
	fe.Step.Run()
	var rates [cbm.CellTypesN]spikes.FiringRate
	rates[cbm.PC].CSMean = 90
	fe.TrialEnd(3, "Training", &rates)
	s := out.String()
	if !strings.HasPrefix(s, "Trial 3: Training\n") || !strings.Contains(s, "PC  CS 90.00") {
		t.Errorf("trial end output:\n%s\n", s)
	}
	if fe.Paused() {
		t.Errorf("running front end paused at trial end\n")
	}
}
