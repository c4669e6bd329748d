// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"context"
	"slices"

	"github.com/emer/cbm"
	"github.com/emer/cbm/expt"
	"github.com/emer/cbm/runstore"
	"github.com/emer/cbm/spikes"
	"github.com/emer/empi/mpi"
)

// GOStats summarizes GO activity over the CS of a trial
type GOStats struct {
	MeanRate   float64 `desc:"mean GO firing rate during the CS (Hz)"`
	MedianRate float64 `desc:"median GO firing rate during the CS (Hz)"`
	MeanGGRGO  float64 `desc:"mean GR input conductance per GO per timestep"`
	MeanGMFGO  float64 `desc:"mean MF input conductance per GO per timestep"`
	GRMFRatio  float64 `desc:"ratio of mean GR to mean MF input conductance"`
}

// trialSpec is the timing of one trial as run by the engine
type trialSpec struct {
	typ       TrialTypes
	name      string
	useCS     bool
	csStart   int
	csLen     int
	phasicLen int
	useUS     bool
	usOnset   int
	plastic   bool
	rasterCol int // first raster column, or -1 to not record
}

// Stop requests the run to stop at the end of the current trial.
// It is safe to call from any goroutine.
func (c *Control) Stop() {
	c.stop.Store(true)
}

// Stopped returns true if a stop has been requested
func (c *Control) Stopped() bool {
	return c.stop.Load()
}

// IsRunning returns true while RunTrials or RunExperiment is running
func (c *Control) IsRunning() bool {
	return c.running.Load()
}

// RunTrials runs tuning, detection and training trials, continuing from
// the current trial counter, until they are all done or Stop is called.
// The counter restarts at 0 if it was last used by RunExperiment.
func (c *Control) RunTrials() error {
	if !c.inited {
		return seqErr(ErrNotInitialized, "call InitRun before running")
	}
	if c.runExpt != nil {
		c.Trial.Init()
		c.runExpt = nil
	}
	c.stop.Store(false)
	c.running.Store(true)
	defer c.running.Store(false)

	rc := &c.Run
	nPre := rc.HomeoTuningTrials + rc.GranuleActDetectTrials
	st, ed := rc.RasterWindow()
	for trial := c.Trial.Cur; trial < rc.NumTrials() && !c.Stopped(); trial++ {
		typ := rc.TrialType(trial)
		sp := trialSpec{
			typ:       typ,
			name:      typ.String(),
			useCS:     true,
			csStart:   rc.CSStart,
			csLen:     rc.CSLength,
			phasicLen: rc.CSPhasicSize,
			useUS:     rc.UseUS && typ != Tuning,
			usOnset:   rc.CSStart + rc.CSLength,
			plastic:   typ != Tuning,
			rasterCol: -1,
		}
		if typ == Training && c.Rasters[cbm.GO] != nil {
			sp.rasterCol = (trial - nPre) * (ed - st)
		}
		if err := c.runTrial(trial, &sp); err != nil {
			return err
		}
	}
	return nil
}

// RunExperiment runs the trials of an experiment in order. A stopped run
// of the same experiment continues from the current trial counter; a
// different or completed experiment, or a counter left by RunTrials,
// starts over at trial 0. CS input is tonic throughout the CS.
// Rasters are not recorded.
func (c *Control) RunExperiment(ex *expt.Experiment) error {
	if !c.inited {
		return seqErr(ErrNotInitialized, "call InitRun before running")
	}
	if c.runExpt != ex || c.Trial.Cur >= ex.NumTrials() {
		c.Trial.Init()
		c.runExpt = ex
	}
	c.stop.Store(false)
	c.running.Store(true)
	defer c.running.Store(false)

	mpi.Printf("Running experiment: %s, %d trials\n", ex.Name, ex.NumTrials())
	for trial := c.Trial.Cur; trial < ex.NumTrials() && !c.Stopped(); trial++ {
		et := &ex.Trials[trial]
		sp := trialSpec{
			typ:       Training,
			name:      et.Name,
			useCS:     et.UseCS,
			csStart:   et.CSOnset,
			csLen:     et.CSLen(),
			phasicLen: 0,
			useUS:     et.UseUS,
			usOnset:   et.USOnset,
			plastic:   true,
			rasterCol: -1,
		}
		if err := c.runTrial(trial, &sp); err != nil {
			return err
		}
	}
	return nil
}

// runTrial runs one trial and does the end of trial bookkeeping
func (c *Control) runTrial(trial int, sp *trialSpec) error {
	rc := &c.Run
	if pg, ok := c.Kernel.(PlasticityGate); ok {
		pg.SetPlasticity(sp.plastic)
	}
	wst, wed := rc.RasterWindow()
	bg := c.Freq.BgFreq()
	trueMF := c.Gen.CalcTrueMFs(bg)
	nzones := int(c.State.NumZones())
	var gGRGO, gMFGO float64

	c.Timer.Reset()
	c.Timer.Start()
	for ts := 0; ts < rc.TrialTime; ts++ {
		if sp.useUS && ts == sp.usOnset {
			for zi := 0; zi < nzones; zi++ {
				c.Kernel.UpdateErrDrive(zi, rc.USMag)
			}
		}
		var freq []float32
		switch SelectMF(ts, sp.csStart, sp.csLen, sp.phasicLen, sp.useCS) {
		case PhasicMF:
			freq = c.Freq.PhasicFreq()
		case TonicMF:
			freq = c.Freq.CSTonicFreq()
		default:
			freq = bg
		}
		ap := c.Gen.CalcPoissActivity(freq)
		c.Kernel.UpdateTrueMFs(trueMF)
		c.Kernel.UpdateMFInput(ap)
		c.Kernel.CalcActivity(rc.Gains)

		c.spk[cbm.MF] = ap
		for ct := cbm.GR; ct < cbm.CellTypesN; ct++ {
			c.spk[ct] = c.Kernel.ExportAP(ct)
		}
		c.Sums.Record(ts, sp.csStart, sp.csLen, &c.spk)
		if sp.useCS && PhaseOf(ts, sp.csStart, sp.csLen) == CS {
			gGRGO += sum32(c.Kernel.ExportGSumGRGO())
			gMFGO += sum32(c.Kernel.ExportGSumMFGO())
		}
		if sp.rasterCol >= 0 && ts >= wst && ts < wed {
			c.recordRasters(sp.rasterCol + ts - wst)
		}
		c.FE.PollEvents()
	}
	c.Timer.Stop()
	secs := c.Timer.TotalSecs()

	csSecs, preSecs := c.rateSecs(sp)
	c.goStats(sp, csSecs, gGRGO, gMFGO)
	c.Rates = c.Sums.FiringRates(csSecs, preSecs)
	mpi.Printf("Trial %d: %s, %.3f secs\n", trial, sp.name, secs)

	c.FE.TrialEnd(trial, sp.name, &c.Rates)
	c.LogTrial(trial, sp.name, sp.typ, secs)
	if c.Store != nil {
		rec := &runstore.Record{Tag: rc.Tag, Trial: trial, Name: sp.name, Type: sp.typ.String(), Secs: secs, Rates: c.Rates}
		if err := c.Store.Add(context.Background(), rec); err != nil {
			return err
		}
	}
	for c.FE.Paused() && !c.Stopped() {
		c.FE.PollEvents()
	}
	c.Sums.Reset()
	c.Trial.Incr()
	return nil
}

// rateSecs returns the durations in seconds of the CS and pre-CS periods
func (c *Control) rateSecs(sp *trialSpec) (csSecs, preSecs float64) {
	ms := float64(c.Act.MsPerTimeStep) / 1000
	csSecs = float64(sp.csLen) * ms
	if c.Run.FixedCSSecs > 0 {
		csSecs = c.Run.FixedCSSecs
	}
	preSecs = float64(min(sp.csStart, c.Run.TrialTime)) * ms
	return
}

// goStats computes GOStats from the CS spike counts, which must not have
// been sorted yet, and reports them if ReportGO is on
func (c *Control) goStats(sp *trialSpec, csSecs, gGRGO, gMFGO float64) {
	gs := &c.GOStats
	*gs = GOStats{}
	sm := &c.Sums.Types[cbm.GO]
	if !sp.useCS || sp.csLen <= 0 || sm.NumCells == 0 {
		return
	}
	cnt := slices.Clone(sm.CSCounter)
	slices.Sort(cnt)
	gs.MeanRate = spikes.Mean(sm.CSSum, sm.NumCells, csSecs)
	gs.MedianRate = spikes.Median(cnt, csSecs)
	steps := float64(sm.NumCells) * float64(min(sp.csLen, max(c.Run.TrialTime-sp.csStart, 0)))
	if steps > 0 {
		gs.MeanGGRGO = gGRGO / steps
		gs.MeanGMFGO = gMFGO / steps
	}
	if gs.MeanGMFGO > 0 {
		gs.GRMFRatio = gs.MeanGGRGO / gs.MeanGMFGO
	}
	if c.Run.ReportGO {
		mpi.Printf("Mean GO rate: %g, Median GO rate: %g\n", gs.MeanRate, gs.MedianRate)
		mpi.Printf("Mean gGRGO: %g, Mean gMFGO: %g, GR:MF ratio: %g\n", gs.MeanGGRGO, gs.MeanGMFGO, gs.GRMFRatio)
	}
}

func sum32(vals []float32) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += float64(v)
	}
	return sum
}
