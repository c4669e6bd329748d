// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

import (
	"fmt"

	"github.com/emer/cbm"
)

const (
	// MaxTableLen is the largest number of entries in any one state array
	MaxTableLen = 1 << 31

	// MaxZones is the largest number of output zones
	MaxZones = 1 << 12
)

// ConParams are the connectivity parameters: population sizes, the number of
// output zones, and the fan-in of every projection. They determine the size
// of every array in the simulation state, so they are always saved ahead of
// the state and must be known before any state can be read.
// All fields are fixed-size so the block has a positional binary layout.
type ConParams struct {
	NumZones uint32 `def:"1" yaml:"num_zones" desc:"number of output zones (microzones), each with its own BC, PC, IO, NC populations"`

	NumMF uint32 `def:"4096" yaml:"num_mf" desc:"number of mossy fibers"`
	NumGR uint32 `def:"1048576" yaml:"num_gr" desc:"number of granule cells"`
	NumGO uint32 `def:"4096" yaml:"num_go" desc:"number of Golgi cells"`
	NumSC uint32 `def:"512" yaml:"num_sc" desc:"number of stellate cells"`
	NumBC uint32 `def:"128" yaml:"num_bc" desc:"number of basket cells per zone"`
	NumPC uint32 `def:"32" yaml:"num_pc" desc:"number of Purkinje cells per zone"`
	NumIO uint32 `def:"4" yaml:"num_io" desc:"number of inferior olive cells per zone"`
	NumNC uint32 `def:"8" yaml:"num_nc" desc:"number of deep nucleus cells per zone"`

	GRfromMF uint32 `def:"4" yaml:"gr_from_mf" desc:"number of MF inputs to each GR"`
	GRfromGO uint32 `def:"4" yaml:"gr_from_go" desc:"number of GO inputs to each GR"`
	GOfromMF uint32 `def:"20" yaml:"go_from_mf" desc:"number of MF inputs to each GO"`
	GOfromGR uint32 `def:"3840" yaml:"go_from_gr" desc:"number of GR inputs (parallel fibers) to each GO"`
	GOfromGO uint32 `def:"12" yaml:"go_from_go" desc:"number of GO inputs to each GO"`
	SCfromGR uint32 `def:"2048" yaml:"sc_from_gr" desc:"number of GR inputs to each SC"`
	PCfromBC uint32 `def:"16" yaml:"pc_from_bc" desc:"number of BC inputs to each PC"`
	PCfromSC uint32 `def:"100" yaml:"pc_from_sc" desc:"number of SC inputs to each PC"`
	BCfromPC uint32 `def:"4" yaml:"bc_from_pc" desc:"number of PC inputs to each BC"`
	NCfromPC uint32 `def:"16" yaml:"nc_from_pc" desc:"number of PC inputs to each NC"`
	NCfromMF uint32 `def:"5" yaml:"nc_from_mf" desc:"number of MF inputs to each NC"`
	IOfromNC uint32 `def:"8" yaml:"io_from_nc" desc:"number of NC inputs to each IO"`
	IOCouple uint32 `def:"1" yaml:"io_couple" desc:"number of gap-junction coupled IO neighbors of each IO"`
}

func (cp *ConParams) Defaults() {
	cp.NumZones = 1
	cp.NumMF = 4096
	cp.NumGR = 1048576
	cp.NumGO = 4096
	cp.NumSC = 512
	cp.NumBC = 128
	cp.NumPC = 32
	cp.NumIO = 4
	cp.NumNC = 8

	cp.GRfromMF = 4
	cp.GRfromGO = 4
	cp.GOfromMF = 20
	cp.GOfromGR = 3840
	cp.GOfromGO = 12
	cp.SCfromGR = 2048
	cp.PCfromBC = 16
	cp.PCfromSC = 100
	cp.BCfromPC = 4
	cp.NCfromPC = 16
	cp.NCfromMF = 5
	cp.IOfromNC = 8
	cp.IOCouple = 1
}

// Update clamps the fan-ins so that no projection asks for more distinct
// senders than the sending population has.
func (cp *ConParams) Update() {
	clamp := func(fan *uint32, n uint32) {
		if *fan > n {
			*fan = n
		}
	}
	clamp(&cp.GRfromMF, cp.NumMF)
	clamp(&cp.GRfromGO, cp.NumGO)
	clamp(&cp.GOfromMF, cp.NumMF)
	clamp(&cp.GOfromGR, cp.NumGR)
	if cp.NumGO > 0 {
		clamp(&cp.GOfromGO, cp.NumGO-1)
	}
	clamp(&cp.SCfromGR, cp.NumGR)
	clamp(&cp.PCfromBC, cp.NumBC)
	clamp(&cp.PCfromSC, cp.NumSC)
	clamp(&cp.BCfromPC, cp.NumPC)
	clamp(&cp.NCfromPC, cp.NumPC)
	clamp(&cp.NCfromMF, cp.NumMF)
	clamp(&cp.IOfromNC, cp.NumNC)
	if cp.NumIO > 0 {
		clamp(&cp.IOCouple, cp.NumIO-1)
	}
}

// NumCells returns the population size of given cell type.
// Zone populations are per zone.
func (cp *ConParams) NumCells(ct cbm.CellTypes) int {
	switch ct {
	case cbm.MF:
		return int(cp.NumMF)
	case cbm.GR:
		return int(cp.NumGR)
	case cbm.GO:
		return int(cp.NumGO)
	case cbm.BC:
		return int(cp.NumBC)
	case cbm.SC:
		return int(cp.NumSC)
	case cbm.PC:
		return int(cp.NumPC)
	case cbm.IO:
		return int(cp.NumIO)
	case cbm.NC:
		return int(cp.NumNC)
	}
	return 0
}

// Sizes returns the population sizes of all cell types, indexed by type.
func (cp *ConParams) Sizes() [cbm.CellTypesN]int {
	var sz [cbm.CellTypesN]int
	for ct := cbm.MF; ct < cbm.CellTypesN; ct++ {
		sz[ct] = cp.NumCells(ct)
	}
	return sz
}

// TableLen is the number of entries of a [numPost][fanIn] table, computed
// without overflow
func TableLen(numPost, fanIn uint32) uint64 {
	return uint64(numPost) * uint64(fanIn)
}

// Validate checks that every state array the parameters describe can be
// allocated and indexed: each table has at most MaxTableLen entries and
// there are 1 to MaxZones zones. Errors wrap ErrCorruptParams.
func (cp *ConParams) Validate() error {
	if cp.NumZones == 0 || cp.NumZones > MaxZones {
		return fmt.Errorf("%w: num_zones %d, want 1 to %d", ErrCorruptParams, cp.NumZones, MaxZones)
	}
	tables := []struct {
		name        string
		post, fanIn uint32
	}{
		{"mf", cp.NumMF, 1},
		{"gr", cp.NumGR, 1},
		{"go", cp.NumGO, 1},
		{"sc", cp.NumSC, 1},
		{"bc", cp.NumBC, 1},
		{"pc", cp.NumPC, 1},
		{"io", cp.NumIO, 1},
		{"nc", cp.NumNC, 1},
		{"gr_from_mf", cp.NumGR, cp.GRfromMF},
		{"gr_from_go", cp.NumGR, cp.GRfromGO},
		{"go_from_mf", cp.NumGO, cp.GOfromMF},
		{"go_from_gr", cp.NumGO, cp.GOfromGR},
		{"go_from_go", cp.NumGO, cp.GOfromGO},
		{"sc_from_gr", cp.NumSC, cp.SCfromGR},
		{"pc_from_bc", cp.NumPC, cp.PCfromBC},
		{"pc_from_sc", cp.NumPC, cp.PCfromSC},
		{"bc_from_pc", cp.NumBC, cp.BCfromPC},
		{"nc_from_pc", cp.NumNC, cp.NCfromPC},
		{"nc_from_mf", cp.NumNC, cp.NCfromMF},
		{"io_from_nc", cp.NumIO, cp.IOfromNC},
		{"io_couple", cp.NumIO, cp.IOCouple},
	}
	for _, tb := range tables {
		if n := TableLen(tb.post, tb.fanIn); n > MaxTableLen {
			return fmt.Errorf("%w: %s table has %d entries, limit %d", ErrCorruptParams, tb.name, n, uint64(MaxTableLen))
		}
	}
	return nil
}
