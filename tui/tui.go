// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tui is the terminal front end. Single key presses control the run:

	p  pause at the end of the current trial
	c  continue
	s  run one trial and pause
	q  stop at the end of the current trial

The terminal is put in raw mode while the front end is open, so keys are
read without waiting for a newline. Firing rates are printed after every
trial.
*/
package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/emer/cbm"
	"github.com/emer/cbm/control"
	"github.com/emer/cbm/spikes"
	"golang.org/x/term"
)

// FrontEnd is the terminal control.FrontEnd
type FrontEnd struct {
	control.Interactive

	In  *os.File  `desc:"keyboard input"`
	Out io.Writer `desc:"where rates and key help are printed"`

	oldState *term.State
	eol      string
}

// New returns a front end for c reading keys from in, and sets it as the
// front end of c
func New(c *control.Control, in *os.File, out io.Writer) *FrontEnd {
	fe := &FrontEnd{Interactive: *control.NewInteractive(c), In: in, Out: out, eol: "\n"}
	fe.OnTrialEnd = fe.trialEnd
	c.FE = fe
	return fe
}

// Open puts the terminal in raw mode, if it is one, and starts reading keys
func (fe *FrontEnd) Open() error {
	if fd := int(fe.In.Fd()); term.IsTerminal(fd) {
		st, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("tui: raw mode: %w", err)
		}
		fe.oldState = st
		fe.eol = "\r\n"
	}
	fmt.Fprintf(fe.Out, "keys: p pause, c continue, s step one trial, q stop%s", fe.eol)
	go fe.ReadKeys(fe.In)
	return nil
}

// Close restores the terminal
func (fe *FrontEnd) Close() error {
	if fe.oldState == nil {
		return nil
	}
	err := term.Restore(int(fe.In.Fd()), fe.oldState)
	fe.oldState = nil
	fe.eol = "\n"
	return err
}

// ReadKeys handles each key read from r until it ends
func (fe *FrontEnd) ReadKeys(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		k, err := br.ReadByte()
		if err != nil {
			return
		}
		fe.HandleKey(k)
	}
}

// HandleKey applies one key press; others are ignored
func (fe *FrontEnd) HandleKey(k byte) {
	switch k {
	case 'p':
		fe.Step.Pause()
	case 'c':
		fe.Step.Run()
	case 's':
		fe.Step.StartStepping(1)
	case 'q', 3: // ctrl-c in raw mode
		fe.Step.Stop()
		fe.Ctrl.Stop()
	}
}

func (fe *FrontEnd) trialEnd(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) {
	fmt.Fprintf(fe.Out, "Trial %d: %s%s%s", trial, name, fe.eol, spikes.RatesTable(rates, fe.eol))
}
