// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cbm

import "github.com/goki/ki/kit"

// CellTypes enumerates the cell populations of the network.
// Per-type buffers (spike counters, rasters) are fixed-size arrays
// indexed by this enum.
type CellTypes int32

//go:generate stringer -type=CellTypes

var KiT_CellTypes = kit.Enums.AddEnum(CellTypesN, kit.NotBitFlag, nil)

func (ev CellTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *CellTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The cell types
const (
	// MF are mossy fibers, the external input population
	MF CellTypes = iota

	// GR are granule cells of the input network
	GR

	// GO are Golgi cells, inhibitory feedback onto granule cells
	GO

	// BC are basket cells, one population per zone
	BC

	// SC are stellate cells of the input network
	SC

	// PC are Purkinje cells, the output of each zone's cortex
	PC

	// IO are inferior olive cells, carrying the error (US) signal
	IO

	// NC are deep cerebellar nucleus (DCN) cells, the zone output
	NC

	CellTypesN
)

// InNet returns true for the populations that belong to the input network
// rather than to an output zone.
func (ct CellTypes) InNet() bool {
	switch ct {
	case MF, GR, GO, SC:
		return true
	}
	return false
}
