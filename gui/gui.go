// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gui is the graphical front end: a window with a toolbar to run,
pause, continue, step and stop the simulation, a view of the run settings,
a plot of the trial log, and the firing rates of the last trial.

The simulation runs in its own goroutine; the window talks to it only
through the stepper of the embedded control.Interactive.
*/
package gui

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/emer/cbm"
	"github.com/emer/cbm/control"
	"github.com/emer/cbm/expt"
	"github.com/emer/cbm/spikes"
	"github.com/emer/cbm/stepper"
	"github.com/emer/etable/eplot"
	_ "github.com/emer/etable/etview" // include to get gui views
	"github.com/goki/gi/gi"
	"github.com/goki/gi/giv"
	"github.com/goki/ki/ki"
	"github.com/goki/mat32"
)

// FrontEnd is the graphical control.FrontEnd
type FrontEnd struct {
	control.Interactive

	Expt    *expt.Experiment `desc:"if set, Run runs this experiment instead of the configured trials"`
	SimFile gi.FileName      `desc:"file written by Save Sim"`

	Win        *gi.Window     `view:"-" desc:"main GUI window"`
	ToolBar    *gi.ToolBar    `view:"-" desc:"the master toolbar"`
	TrialPlot  *eplot.Plot2D  `view:"-" desc:"the trial log plot"`
	RatesLabel *gi.Label      `view:"-" desc:"firing rates of the last trial"`
	StructView *giv.StructView `view:"-" desc:"view of the run settings"`

	running atomic.Bool
	closed  atomic.Bool
	simWG   sync.WaitGroup
}

// New returns a front end for c, and sets it as the front end of c
func New(c *control.Control) *FrontEnd {
	fe := &FrontEnd{Interactive: *control.NewInteractive(c)}
	fe.SimFile = "cbm.sim"
	fe.OnTrialEnd = fe.trialEnd
	c.FE = fe
	return fe
}

// IsRunning returns true while the simulation goroutine is running
func (fe *FrontEnd) IsRunning() bool {
	return fe.running.Load()
}

// Wait blocks until the simulation goroutine, if any, has returned.
// The control is at a trial boundary after Wait, so it can be saved.
func (fe *FrontEnd) Wait() {
	fe.simWG.Wait()
}

// trialEnd runs on the simulation goroutine
func (fe *FrontEnd) trialEnd(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) {
	if fe.closed.Load() {
		return
	}
	if fe.TrialPlot != nil {
		fe.TrialPlot.GoUpdate()
	}
	fe.goSetRates(ratesText(trial, name, rates))
}

// goSetRates sets the rates label from outside the window event loop,
// blocking viewport updates while the text is laid out
func (fe *FrontEnd) goSetRates(txt string) {
	lb := fe.RatesLabel
	if lb == nil || lb.This() == nil {
		return
	}
	vp := lb.ViewportSafe()
	if vp == nil {
		lb.SetText(txt)
		return
	}
	vp.BlockUpdates()
	updt := lb.UpdateStart()
	lb.SetText(txt)
	vp.UnblockUpdates()
	lb.UpdateEnd(updt)
}

// ratesText is the rates label text: a header line and one line per type
func ratesText(trial int, name string, rates *[cbm.CellTypesN]spikes.FiringRate) string {
	return "<b>Trial " + strconv.Itoa(trial) + ": " + name + "</b><br>\n" + spikes.RatesTable(rates, "<br>\n")
}

// start runs the simulation in a new goroutine, in the state already
// entered by the stepper
func (fe *FrontEnd) start() {
	if !fe.running.CompareAndSwap(false, true) {
		return
	}
	fe.updateActions()
	fe.simWG.Add(1)
	go func() {
		defer fe.simWG.Done()
		var err error
		if fe.Expt != nil {
			err = fe.Ctrl.RunExperiment(fe.Expt)
		} else {
			err = fe.Ctrl.RunTrials()
		}
		if err != nil {
			log.Println(err)
		}
		fe.Step.Enter(stepper.Stopped)
		fe.running.Store(false)
		if !fe.closed.Load() {
			fe.updateActions()
		}
	}()
}

func (fe *FrontEnd) updateActions() {
	if fe.ToolBar != nil {
		fe.ToolBar.UpdateActions()
	}
}

// ConfigGui configures the GoGi gui interface for the simulation
func (fe *FrontEnd) ConfigGui() *gi.Window {
	width := 1600
	height := 1200

	gi.SetAppName("cbmsim")
	gi.SetAppAbout(`Cerebellar spiking network simulator. Runs tuning, detection and training trials of eyelid conditioning, and plots the firing rates of each cell type per trial.</p>`)

	win := gi.NewMainWindow("cbmsim", "Cerebellum Simulator", width, height)
	fe.Win = win

	vp := win.WinViewport2D()
	updt := vp.UpdateStart()

	mfr := win.SetMainFrame()

	tbar := gi.AddNewToolBar(mfr, "tbar")
	tbar.SetStretchMaxWidth()
	fe.ToolBar = tbar

	split := gi.AddNewSplitView(mfr, "split")
	split.Dim = mat32.X
	split.SetStretchMax()

	sv := giv.AddNewStructView(split, "sv")
	sv.SetStruct(&fe.Ctrl.Run)
	fe.StructView = sv

	tv := gi.AddNewTabView(split, "tv")

	plt := tv.AddNewTab(eplot.KiT_Plot2D, "TrialPlot").(*eplot.Plot2D)
	fe.TrialPlot = fe.ConfigTrialPlot(plt)

	frm := tv.AddNewTab(gi.KiT_Frame, "Rates").(*gi.Frame)
	frm.Lay = gi.LayoutVert
	frm.SetStretchMax()
	fe.RatesLabel = gi.AddNewLabel(frm, "rates", "no trials run yet")

	split.SetSplits(.3, .7)

	tbar.AddAction(gi.ActOpts{Label: "Init", Icon: "update", Tooltip: "Start over from the first trial, clearing logs and rasters.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!fe.IsRunning())
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		if err := fe.Ctrl.InitRun(); err != nil {
			log.Println(err)
		}
		vp.SetNeedsFullRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Run", Icon: "run", Tooltip: "Runs trials, picking up from wherever it left off.",
		UpdateFunc: func(act *gi.Action) {
			act.SetActiveStateUpdt(!fe.IsRunning())
		}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		fe.Step.Enter(stepper.Running)
		fe.start()
	})

	tbar.AddAction(gi.ActOpts{Label: "Pause", Icon: "pause", Tooltip: "Pauses at the end of the current trial.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(fe.IsRunning() && fe.Step.Active())
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		fe.Step.Pause()
		tbar.UpdateActions()
	})

	tbar.AddAction(gi.ActOpts{Label: "Continue", Icon: "play", Tooltip: "Continues running after a pause.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(fe.IsRunning() && fe.Step.IsPaused())
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		fe.Step.Run()
		tbar.UpdateActions()
	})

	tbar.AddAction(gi.ActOpts{Label: "Step Trial", Icon: "step-fwd", Tooltip: "Runs one trial and pauses.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!fe.IsRunning() || fe.Step.IsPaused())
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		fe.Step.StartStepping(1)
		fe.start()
		tbar.UpdateActions()
	})

	tbar.AddAction(gi.ActOpts{Label: "Stop", Icon: "stop", Tooltip: "Stops at the end of the current trial. Hitting Run again will pick back up where it left off.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(fe.IsRunning())
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		fe.Step.Stop()
		fe.Ctrl.Stop()
		tbar.UpdateActions()
	})

	tbar.AddSeparator("file")

	tbar.AddAction(gi.ActOpts{Label: "Save Sim", Icon: "file-save", Tooltip: "Saves the parameters and state to SimFile.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!fe.IsRunning())
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		if err := fe.Ctrl.SaveSimFile(fe.SimFile); err != nil {
			log.Println(err)
		}
	})

	vp.UpdateEndNoSig(updt)

	// main menu
	appnm := gi.AppName()
	mmen := win.MainMenu
	mmen.ConfigMenus([]string{appnm, "File", "Edit", "Window"})

	amen := win.MainMenu.ChildByName(appnm, 0).(*gi.Action)
	amen.Menu.AddAppMenu(win)

	emen := win.MainMenu.ChildByName("Edit", 1).(*gi.Action)
	emen.Menu.AddCopyCutPaste(win)

	win.SetCloseCleanFunc(func(w *gi.Window) {
		fe.closed.Store(true)
		fe.Step.Stop()
		fe.Ctrl.Stop()
		go gi.Quit() // once main window is closed, quit
	})

	win.MainMenuUpdated()
	return win
}

// ConfigTrialPlot shows the CS rates of the output cells per trial
func (fe *FrontEnd) ConfigTrialPlot(plt *eplot.Plot2D) *eplot.Plot2D {
	plt.Params.Title = "Firing rates per trial"
	plt.Params.XAxisCol = "Trial"
	plt.SetTable(fe.Ctrl.TrialLog)
	// order of params: on, fixMin, min, fixMax, max
	plt.SetColParams("Trial", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	plt.SetColParams("Secs", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	for ct := cbm.CellTypes(0); ct < cbm.CellTypesN; ct++ {
		on := ct == cbm.PC || ct == cbm.NC || ct == cbm.GO
		for _, rc := range []string{"CSMean", "CSMedian", "NonCSMean", "NonCSMedian"} {
			plt.SetColParams(ct.String()+"_"+rc, on && rc == "CSMean", eplot.FixMin, 0, eplot.FloatMax, 0)
		}
	}
	plt.SetColParams("GOMeanRate", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	plt.SetColParams("GRMFRatio", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	return plt
}
