// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/emer/cbm/cbmstate"
	"github.com/emer/cbm/control"
	"github.com/emer/cbm/netparams"
	"github.com/goki/gi/gi"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <build.yaml> <out.sim>",
		Short: "Build a new simulation from a build file",
		Long: `Generates the connectivity and initial activity of a new network from the
parameters in a YAML build file, and saves it as a sim file (gzip compressed
if the name ends in .gz). Use --template to write a build file with the
default parameters instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, _ := cmd.Flags().GetBool("template")
			if tmpl {
				bf := &netparams.Build{}
				bf.Defaults()
				return bf.SaveBuild(args[0])
			}
			if len(args) != 2 {
				return fmt.Errorf("build needs a build file and an output sim file")
			}
			seed, _ := cmd.Flags().GetInt64("seed")
			if useTime, _ := cmd.Flags().GetBool("seed-time"); useTime {
				seed = cbmstate.SeedFromTime()
			}
			bf, err := netparams.OpenBuild(args[0])
			if err != nil {
				return err
			}
			c := control.New(nil)
			if err := c.BuildSim(bf, seed); err != nil {
				return err
			}
			fmt.Printf("built with seed %d\n%s", seed, c.State.SizeReport())
			return c.SaveSimFile(gi.FileName(args[1]))
		},
	}
	cmd.Flags().Int64("seed", 1, "random seed for connectivity and initial activity")
	cmd.Flags().Bool("seed-time", false, "seed from the current time, overriding --seed")
	cmd.Flags().Bool("template", false, "write a build file with default parameters to the first argument")
	return cmd
}
