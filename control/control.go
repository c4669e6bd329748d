// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package control is the trial engine. A Control owns the parameters and the
simulation state, sequences their setup, and runs trials: every timestep it
selects the mossy fiber input for the current phase of the trial, advances
the kernel, and records spikes. At the end of each trial it computes firing
rates and hands them to the front end, the trial log and the run store.

Setup goes in order: parameters (BuildSim, SetParams or ReadSim), then the
state, then InitRun, which creates the default kernel and input generators
for any that were not supplied.
*/
package control

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/emer/cbm"
	"github.com/emer/cbm/cbmstate"
	"github.com/emer/cbm/expt"
	"github.com/emer/cbm/mfinput"
	"github.com/emer/cbm/netparams"
	"github.com/emer/cbm/runstore"
	"github.com/emer/cbm/simcore"
	"github.com/emer/cbm/spikes"
	"github.com/emer/emergent/env"
	"github.com/emer/emergent/timer"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

var (
	ErrNoConParams    = errors.New("control: connectivity parameters not loaded")
	ErrNoActParams    = errors.New("control: activity parameters not loaded")
	ErrStateExists    = errors.New("control: state already initialized")
	ErrNotInitialized = errors.New("control: simulation not initialized")
	ErrRunning        = errors.New("control: simulation is running")
)

// seqErr logs a sequencing error with a hint, as the run is usually driven
// interactively, and returns it
func seqErr(err error, hint string) error {
	log.Println(err)
	log.Println("  (hint: " + hint + ")")
	return err
}

// Control is the trial engine
type Control struct {
	Con   *netparams.ConParams `desc:"connectivity parameters"`
	Act   *netparams.ActParams `desc:"activity parameters"`
	State *cbmstate.State      `view:"-" desc:"simulation state"`
	Run   RunConfig            `desc:"run settings"`

	Kernel Kernel   `view:"-" desc:"integration kernel; simcore if not set before InitRun"`
	Freq   FreqSource `view:"-" desc:"MF frequency profiles; mfinput.Population if not set before InitRun"`
	Gen    SpikeGen   `view:"-" desc:"MF spike generator; mfinput.Poisson if not set before InitRun"`
	FE     FrontEnd   `view:"-" desc:"front end; Headless if nil"`
	Store  runstore.Store `view:"-" desc:"optional store of per-trial records"`

	Sums     spikes.Sums                       `view:"-" desc:"spike counts of the current trial"`
	Rates    [cbm.CellTypesN]spikes.FiringRate `desc:"firing rates of the last trial"`
	GOStats  GOStats                           `desc:"GO activity of the last CS"`
	Rasters  [cbm.CellTypesN]*etensor.Uint8    `view:"-" desc:"spike rasters of training trials, [cells][timesteps], for the monitored types"`
	GRSample []int                             `view:"-" desc:"GR indexes recorded in the GR raster"`

	TrialLog  *etable.Table `view:"no-inline" desc:"one row per trial"`
	LogWriter io.Writer     `view:"-" desc:"if set, trial log rows are written here as they are added"`

	Trial env.Ctr    `desc:"trial counter"`
	Timer timer.Time `view:"-" desc:"trial wall time"`

	inited  bool
	runExpt *expt.Experiment // experiment the trial counter belongs to, nil for RunTrials
	spk     [cbm.CellTypesN][]uint8
	stop    atomic.Bool
	running atomic.Bool
}

// New returns a Control with the given run settings, or defaults if nil
func New(rc *RunConfig) *Control {
	c := &Control{}
	if rc != nil {
		c.Run = *rc
	} else {
		c.Run.Defaults()
	}
	c.Trial.Scale = env.Trial
	return c
}

// SetParams sets copies of the parameters, replacing any previous ones.
// Either may be nil to leave it unset.
func (c *Control) SetParams(cp *netparams.ConParams, ap *netparams.ActParams) {
	if cp != nil {
		ncp := *cp
		c.Con = &ncp
	}
	if ap != nil {
		nap := *ap
		c.Act = &nap
	}
}

// BuildSim sets the parameters of a build file and creates a new state
// from the seed
func (c *Control) BuildSim(bf *netparams.Build, seed int64) error {
	if c.State != nil {
		return seqErr(ErrStateExists, "create a new Control to build another simulation")
	}
	c.SetParams(&bf.Con, &bf.Act)
	st, err := cbmstate.New(c.Con, c.Act, seed)
	if err != nil {
		return err
	}
	c.State = st
	return nil
}

// InitState reads the state, in state file format, using the parameters
// already set
func (c *Control) InitState(r io.Reader) error {
	switch {
	case c.Con == nil:
		return seqErr(ErrNoConParams, "load the connectivity parameters before the state")
	case c.Act == nil:
		return seqErr(ErrNoActParams, "load the activity parameters before the state")
	case c.State != nil:
		return seqErr(ErrStateExists, "the state can only be loaded once")
	}
	st, err := cbmstate.Read(c.Con, r)
	if err != nil {
		return err
	}
	c.State = st
	return nil
}

// ReadSim reads a sim file: the parameter blocks, which replace any set
// before, followed by the state. Nothing is changed unless the whole file
// reads.
func (c *Control) ReadSim(r io.Reader) error {
	if c.State != nil {
		return seqErr(ErrStateExists, "the state can only be loaded once")
	}
	var cp netparams.ConParams
	var ap netparams.ActParams
	if err := cp.Read(r); err != nil {
		return err
	}
	if err := ap.Read(r); err != nil {
		return err
	}
	st, err := cbmstate.Read(&cp, r)
	if err != nil {
		return err
	}
	c.SetParams(&cp, &ap)
	c.State = st
	return nil
}

// ReadSimFile reads a sim file.
// If filename has .gz extension, then file is gzip uncompressed.
func (c *Control) ReadSimFile(filename gi.FileName) error {
	fp, err := os.Open(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	var r io.Reader = bufio.NewReader(fp)
	if filepath.Ext(string(filename)) == ".gz" {
		gzr, err := gzip.NewReader(r)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		r = gzr
	}
	return c.ReadSim(r)
}

// OpenSim reads a sim file and calls InitRun
func (c *Control) OpenSim(filename gi.FileName) error {
	if err := c.ReadSimFile(filename); err != nil {
		return err
	}
	return c.InitRun()
}

// InitRun prepares for running: default collaborators, spike counters,
// rasters and the trial log. It can be called again to reset the trial
// counter and logs.
func (c *Control) InitRun() error {
	if c.State == nil {
		return seqErr(ErrNotInitialized, "build or load a simulation before running")
	}
	if err := c.Run.Validate(); err != nil {
		return err
	}
	if c.Kernel == nil {
		c.Kernel = simcore.New(c.Con, c.Act, c.State)
	}
	nmf := int(c.Con.NumMF)
	if c.Freq == nil {
		c.Freq = mfinput.NewPopulation(nmf, &c.Act.MF)
	}
	if c.Gen == nil {
		c.Gen = mfinput.NewPoisson(nmf, c.Act.MF.Seed, c.Act.MF.ThreshDecayTau, c.Act.MsPerTimeStep)
	}
	if c.FE == nil {
		c.FE = &Headless{}
	}
	c.Sums.Init(c.Con.Sizes())
	c.Trial.Init()
	c.Trial.Max = 0
	c.runExpt = nil
	if err := c.ConfigRasters(); err != nil {
		return err
	}
	c.ConfigTrialLog()
	c.inited = true
	return nil
}

// checkIdle returns ErrRunning while RunTrials or RunExperiment is running
func (c *Control) checkIdle() error {
	if c.IsRunning() {
		return seqErr(ErrRunning, "stop the run and wait for it to return before saving")
	}
	return nil
}

// SaveSim writes the sim file: parameters followed by the state
func (c *Control) SaveSim(w io.Writer) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if c.Con == nil || c.Act == nil || c.State == nil {
		return seqErr(ErrNotInitialized, "build or load a simulation before saving it")
	}
	if err := c.Con.Write(w); err != nil {
		return err
	}
	if err := c.Act.Write(w); err != nil {
		return err
	}
	return c.writeState(w)
}

// SaveState writes the state file
func (c *Control) SaveState(w io.Writer) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if c.State == nil {
		return seqErr(ErrNotInitialized, "build or load a simulation before saving its state")
	}
	return c.writeState(w)
}

// writeState prefers the kernel's copy, which is the current one when a
// kernel keeps its own
func (c *Control) writeState(w io.Writer) error {
	if c.Kernel != nil {
		return c.Kernel.WriteState(w)
	}
	return c.State.Write(w)
}

// SaveSimFile saves the sim file.
// If filename has .gz extension, then file is gzip compressed.
func (c *Control) SaveSimFile(filename gi.FileName) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	return saveFile(filename, c.SaveSim)
}

// SaveStateFile saves the state file.
// If filename has .gz extension, then file is gzip compressed.
func (c *Control) SaveStateFile(filename gi.FileName) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	return saveFile(filename, c.SaveState)
}

func saveFile(filename gi.FileName, save func(w io.Writer) error) error {
	fp, err := os.Create(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	var w io.Writer = bw
	var gzw *gzip.Writer
	if filepath.Ext(string(filename)) == ".gz" {
		gzw = gzip.NewWriter(bw)
		w = gzw
	}
	if err := save(w); err != nil {
		return err
	}
	if gzw != nil {
		if err := gzw.Close(); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return fp.Close()
}
