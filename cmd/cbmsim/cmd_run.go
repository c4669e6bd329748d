// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/emer/cbm/control"
	"github.com/emer/cbm/expt"
	"github.com/emer/cbm/gui"
	"github.com/emer/cbm/runstore"
	"github.com/emer/cbm/tui"
	"github.com/goki/gi/gi"
	"github.com/goki/gi/gimain"
	"github.com/spf13/cobra"
)

// runOpts are the flags of the run command
type runOpts struct {
	mode      string
	config    string
	exptFile  string
	out       string
	name      string
	trials    int
	rasters   bool
	store     string
	storePath string
	tag       string
}

func newRunCmd() *cobra.Command {
	ro := &runOpts{}
	cmd := &cobra.Command{
		Use:   "run <in.sim>",
		Short: "Run trials on a simulation",
		Long: `Runs tuning, detection and training trials (or the trials of an experiment
session file) on the simulation in a sim file. When done, saves the trained
simulation as <name>_out.sim and the rasters as <name>_<kind><Type>Raster.bin
in the output directory. A tab separated log of firing rates per trial is
written to <name>_trials.tsv as trials complete.

Modes: gui opens a window, tui reads single key commands from the terminal
(p pause, c continue, s step, q stop), and nogui runs to the end, stopping
early at the end of a trial on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd, ro, args[0])
		},
	}
	cmd.Flags().StringVar(&ro.mode, "mode", "nogui", "front end: gui, tui or nogui")
	cmd.Flags().StringVar(&ro.config, "config", "", "YAML run config file (default settings if empty)")
	cmd.Flags().StringVar(&ro.exptFile, "expt", "", "YAML experiment session file; runs its trials instead of the configured ones")
	cmd.Flags().StringVar(&ro.out, "out", ".", "output directory")
	cmd.Flags().StringVar(&ro.name, "name", "", "output file name prefix (default sim file name)")
	cmd.Flags().IntVar(&ro.trials, "trials", -1, "number of training trials, overriding the run config if >= 0")
	cmd.Flags().BoolVar(&ro.rasters, "rasters", false, "record and save spike rasters")
	cmd.Flags().StringVar(&ro.store, "store", "", "run store for per-trial records: memory or sqlite (none if empty)")
	cmd.Flags().StringVar(&ro.storePath, "store-path", "", "sqlite run store file (default <out>/runs.db)")
	cmd.Flags().StringVar(&ro.tag, "tag", "", "run tag in the run store (default output name)")
	return cmd
}

// runSim runs the simulation. Failure to read or write any file ends the
// process.
func runSim(cmd *cobra.Command, ro *runOpts, simFile string) error {
	switch ro.mode {
	case "gui", "tui", "nogui":
	default:
		return fmt.Errorf("unknown mode %q: must be gui, tui or nogui", ro.mode)
	}
	rc := &control.RunConfig{}
	rc.Defaults()
	if ro.config != "" {
		var err error
		if rc, err = control.OpenRunConfig(ro.config); err != nil {
			log.Fatalln(err)
		}
	}
	if ro.trials >= 0 {
		rc.TrainingTrials = ro.trials
	}
	if cmd.Flags().Changed("rasters") {
		rc.Rasters = ro.rasters
	}
	if ro.name == "" {
		base := filepath.Base(simFile)
		base = strings.TrimSuffix(base, ".gz")
		ro.name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	rc.Tag = ro.tag
	if rc.Tag == "" {
		rc.Tag = ro.name
	}

	c := control.New(rc)
	if err := c.OpenSim(gi.FileName(simFile)); err != nil {
		log.Fatalln(err)
	}
	var ex *expt.Experiment
	if ro.exptFile != "" {
		var err error
		if ex, err = expt.OpenExperiment(ro.exptFile); err != nil {
			log.Fatalln(err)
		}
	}
	if err := os.MkdirAll(ro.out, 0755); err != nil {
		log.Fatalln(err)
	}
	if ro.store != "" {
		path := ro.storePath
		if path == "" {
			path = filepath.Join(ro.out, "runs.db")
		}
		st, err := runstore.Open(context.Background(), ro.store, path)
		if err != nil {
			log.Fatalln(err)
		}
		defer st.Close()
		c.Store = st
	}
	lf, err := os.Create(filepath.Join(ro.out, ro.name+"_trials.tsv"))
	if err != nil {
		log.Fatalln(err)
	}
	defer lf.Close()
	c.LogWriter = lf

	run := func() error {
		if ex != nil {
			return c.RunExperiment(ex)
		}
		return c.RunTrials()
	}
	outSim := gi.FileName(filepath.Join(ro.out, ro.name+"_out.sim"))

	switch ro.mode {
	case "nogui":
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		go func() {
			<-sigs
			log.Println("interrupted: stopping at the end of the trial")
			c.Stop()
		}()
		err = run()
		signal.Stop(sigs)
	case "tui":
		fe := tui.New(c, os.Stdin, os.Stdout)
		if err := fe.Open(); err != nil {
			log.Fatalln(err)
		}
		fe.Step.Run()
		err = run()
		if cerr := fe.Close(); cerr != nil {
			log.Println(cerr)
		}
	case "gui":
		fe := gui.New(c)
		fe.Expt = ex
		fe.SimFile = outSim
		gimain.Main(func() { // this starts gui -- requires valid OpenGL display connection (e.g., X11)
			win := fe.ConfigGui()
			win.StartEventLoop()
		})
		// closing the window only requests a stop
		fe.Wait()
	}
	if err != nil {
		log.Fatalln(err)
	}

	if err := c.SaveSimFile(outSim); err != nil {
		log.Fatalln(err)
	}
	if err := c.SaveRasters(ro.out, ro.name+"_"); err != nil {
		log.Fatalln(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", outSim)
	return nil
}
