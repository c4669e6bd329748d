// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cbmsim builds, runs and inspects cerebellar network simulations.
//
//	cbmsim build [--seed N | --seed-time] build.yaml out.sim
//	cbmsim run [--mode gui|tui|nogui] [--expt session.yaml] [--out dir] in.sim
//	cbmsim info in.sim
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cbmsim",
		Short: "Cerebellar spiking network simulator",
		Long: `cbmsim simulates the cerebellar cortex and deep nucleus as networks of
spiking cells, and runs eyelid conditioning trials on them.

A simulation is built from a YAML build file into a sim file, which holds the
parameters and the full network state. Runs start from a sim file and save the
trained network, spike rasters and a log of firing rates per trial.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newRunCmd(),
		newInfoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
