// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/emer/cbm/control"
	"github.com/emer/cbm/netparams"
	"github.com/goki/gi/gi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <in.sim>",
		Short: "Show the parameters and state size of a sim file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := control.New(nil)
			if err := c.ReadSimFile(gi.FileName(args[0])); err != nil {
				return err
			}
			bf := &netparams.Build{Con: *c.Con, Act: *c.Act}
			out, err := yaml.Marshal(bf)
			if err != nil {
				return err
			}
			os.Stdout.Write(out)
			fmt.Printf("\nzones: %d\n%s", c.State.NumZones(), c.State.SizeReport())
			total := netparams.ConSize() + netparams.ActSize() + c.State.Size()
			fmt.Printf("sim file: %s\n", datasize.ByteSize(total).HumanReadable())
			return nil
		},
	}
}
