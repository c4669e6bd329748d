// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cbmstate

import (
	"math/rand"

	"github.com/emer/cbm/netparams"
)

///////////////////////////////////////////////////////////////////////
//  records.go has the connectivity and activity records of the
//  input network and of each output zone

// Fan-in tables are row-major [numPost][fanIn] sender indexes, flattened.

// InNetConState is the connectivity of the input network
type InNetConState struct {
	GRfromMF []uint32 `desc:"[NumGR][GRfromMF] MF senders of each GR"`
	GRfromGO []uint32 `desc:"[NumGR][GRfromGO] GO senders of each GR"`
	GOfromMF []uint32 `desc:"[NumGO][GOfromMF] MF senders of each GO"`
	GOfromGR []uint32 `desc:"[NumGO][GOfromGR] GR senders of each GO"`
	GOfromGO []uint32 `desc:"[NumGO][GOfromGO] GO senders of each GO, excluding itself"`
	SCfromGR []uint32 `desc:"[NumSC][SCfromGR] GR senders of each SC"`
}

func (ic *InNetConState) alloc(cp *netparams.ConParams) {
	ic.GRfromMF = make([]uint32, tableLen(cp.NumGR, cp.GRfromMF))
	ic.GRfromGO = make([]uint32, tableLen(cp.NumGR, cp.GRfromGO))
	ic.GOfromMF = make([]uint32, tableLen(cp.NumGO, cp.GOfromMF))
	ic.GOfromGR = make([]uint32, tableLen(cp.NumGO, cp.GOfromGR))
	ic.GOfromGO = make([]uint32, tableLen(cp.NumGO, cp.GOfromGO))
	ic.SCfromGR = make([]uint32, tableLen(cp.NumSC, cp.SCfromGR))
}

// gen generates random connectivity from given seed
func (ic *InNetConState) gen(cp *netparams.ConParams, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	connect(rnd, ic.GRfromMF, cp.NumGR, cp.GRfromMF, cp.NumMF, false)
	connect(rnd, ic.GRfromGO, cp.NumGR, cp.GRfromGO, cp.NumGO, false)
	connect(rnd, ic.GOfromMF, cp.NumGO, cp.GOfromMF, cp.NumMF, false)
	connect(rnd, ic.GOfromGR, cp.NumGO, cp.GOfromGR, cp.NumGR, false)
	connect(rnd, ic.GOfromGO, cp.NumGO, cp.GOfromGO, cp.NumGO, true)
	connect(rnd, ic.SCfromGR, cp.NumSC, cp.SCfromGR, cp.NumGR, false)
}

func (ic *InNetConState) fields() []any {
	return []any{ic.GRfromMF, ic.GRfromGO, ic.GOfromMF, ic.GOfromGR, ic.GOfromGO, ic.SCfromGR}
}

// InNetActState is the dynamic state of the input network
type InNetActState struct {
	APMF   []uint8 `desc:"MF spikes on the current timestep"`
	HistMF []uint8 `desc:"MF spikes on the previous timestep"`

	VmGO     []float32 `desc:"GO membrane potential"`
	ThreshGO []float32 `desc:"GO threshold"`
	GSumMFGO []float32 `desc:"GO conductance from MF"`
	GSumGRGO []float32 `desc:"GO conductance from GR"`
	GSumGOGO []float32 `desc:"GO conductance from GO"`
	APGO     []uint8   `desc:"GO spikes"`

	VmGR     []float32 `desc:"GR membrane potential"`
	ThreshGR []float32 `desc:"GR threshold"`
	GESumGR  []float32 `desc:"GR excitatory conductance (MF)"`
	GISumGR  []float32 `desc:"GR inhibitory conductance (GO)"`
	APGR     []uint8   `desc:"GR spikes"`
	APBufGR  []uint32  `desc:"GR spike history, one bit per timestep, most recent in bit 0"`

	VmSC     []float32 `desc:"SC membrane potential"`
	ThreshSC []float32 `desc:"SC threshold"`
	GSumGRSC []float32 `desc:"SC conductance from GR"`
	APSC     []uint8   `desc:"SC spikes"`
}

func (ia *InNetActState) alloc(cp *netparams.ConParams) {
	ia.APMF = make([]uint8, cp.NumMF)
	ia.HistMF = make([]uint8, cp.NumMF)

	ia.VmGO = make([]float32, cp.NumGO)
	ia.ThreshGO = make([]float32, cp.NumGO)
	ia.GSumMFGO = make([]float32, cp.NumGO)
	ia.GSumGRGO = make([]float32, cp.NumGO)
	ia.GSumGOGO = make([]float32, cp.NumGO)
	ia.APGO = make([]uint8, cp.NumGO)

	ia.VmGR = make([]float32, cp.NumGR)
	ia.ThreshGR = make([]float32, cp.NumGR)
	ia.GESumGR = make([]float32, cp.NumGR)
	ia.GISumGR = make([]float32, cp.NumGR)
	ia.APGR = make([]uint8, cp.NumGR)
	ia.APBufGR = make([]uint32, cp.NumGR)

	ia.VmSC = make([]float32, cp.NumSC)
	ia.ThreshSC = make([]float32, cp.NumSC)
	ia.GSumGRSC = make([]float32, cp.NumSC)
	ia.APSC = make([]uint8, cp.NumSC)
}

// init sets all cells to rest
func (ia *InNetActState) init(ap *netparams.ActParams) {
	fill(ia.VmGO, ap.GO.ELeak)
	fill(ia.ThreshGO, ap.GO.ThrRest)
	fill(ia.VmGR, ap.GR.ELeak)
	fill(ia.ThreshGR, ap.GR.ThrRest)
	fill(ia.VmSC, ap.SC.ELeak)
	fill(ia.ThreshSC, ap.SC.ThrRest)
}

func (ia *InNetActState) fields() []any {
	return []any{
		ia.APMF, ia.HistMF,
		ia.VmGO, ia.ThreshGO, ia.GSumMFGO, ia.GSumGRGO, ia.GSumGOGO, ia.APGO,
		ia.VmGR, ia.ThreshGR, ia.GESumGR, ia.GISumGR, ia.APGR, ia.APBufGR,
		ia.VmSC, ia.ThreshSC, ia.GSumGRSC, ia.APSC,
	}
}

// MZoneConState is the connectivity of one output zone
type MZoneConState struct {
	PCfromBC []uint32 `desc:"[NumPC][PCfromBC] BC senders of each PC"`
	PCfromSC []uint32 `desc:"[NumPC][PCfromSC] SC senders of each PC"`
	BCfromPC []uint32 `desc:"[NumBC][BCfromPC] PC senders of each BC"`
	NCfromPC []uint32 `desc:"[NumNC][NCfromPC] PC senders of each NC"`
	NCfromMF []uint32 `desc:"[NumNC][NCfromMF] MF senders of each NC"`
	IOfromNC []uint32 `desc:"[NumIO][IOfromNC] NC senders of each IO"`
	IOCouple []uint32 `desc:"[NumIO][IOCouple] gap junction neighbors of each IO"`
}

func (mc *MZoneConState) alloc(cp *netparams.ConParams) {
	mc.PCfromBC = make([]uint32, tableLen(cp.NumPC, cp.PCfromBC))
	mc.PCfromSC = make([]uint32, tableLen(cp.NumPC, cp.PCfromSC))
	mc.BCfromPC = make([]uint32, tableLen(cp.NumBC, cp.BCfromPC))
	mc.NCfromPC = make([]uint32, tableLen(cp.NumNC, cp.NCfromPC))
	mc.NCfromMF = make([]uint32, tableLen(cp.NumNC, cp.NCfromMF))
	mc.IOfromNC = make([]uint32, tableLen(cp.NumIO, cp.IOfromNC))
	mc.IOCouple = make([]uint32, tableLen(cp.NumIO, cp.IOCouple))
}

func (mc *MZoneConState) gen(cp *netparams.ConParams, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	connect(rnd, mc.PCfromBC, cp.NumPC, cp.PCfromBC, cp.NumBC, false)
	connect(rnd, mc.PCfromSC, cp.NumPC, cp.PCfromSC, cp.NumSC, false)
	connect(rnd, mc.BCfromPC, cp.NumBC, cp.BCfromPC, cp.NumPC, false)
	connect(rnd, mc.NCfromPC, cp.NumNC, cp.NCfromPC, cp.NumPC, false)
	connect(rnd, mc.NCfromMF, cp.NumNC, cp.NCfromMF, cp.NumMF, false)
	connect(rnd, mc.IOfromNC, cp.NumIO, cp.IOfromNC, cp.NumNC, false)
	connect(rnd, mc.IOCouple, cp.NumIO, cp.IOCouple, cp.NumIO, true)
}

func (mc *MZoneConState) fields() []any {
	return []any{mc.PCfromBC, mc.PCfromSC, mc.BCfromPC, mc.NCfromPC, mc.NCfromMF, mc.IOfromNC, mc.IOCouple}
}

// MZoneActState is the dynamic state of one output zone, including its
// plastic PF-PC and MF-NC weights
type MZoneActState struct {
	VmBC     []float32 `desc:"BC membrane potential"`
	ThreshBC []float32 `desc:"BC threshold"`
	APBC     []uint8   `desc:"BC spikes"`

	VmPC     []float32 `desc:"PC membrane potential"`
	ThreshPC []float32 `desc:"PC threshold"`
	APPC     []uint8   `desc:"PC spikes"`
	PFPCWts  []float32 `desc:"PF-PC weights, one per GR, shared by all PCs of the zone"`
	GSumPFPC []float32 `desc:"PC conductance from parallel fibers"`

	VmIO     []float32 `desc:"IO membrane potential"`
	ThreshIO []float32 `desc:"IO threshold"`
	APIO     []uint8   `desc:"IO spikes"`
	ErrDrive float32   `desc:"error (US) drive onto the IO cells, decaying"`

	VmNC     []float32 `desc:"NC membrane potential"`
	ThreshNC []float32 `desc:"NC threshold"`
	APNC     []uint8   `desc:"NC spikes"`
	MFNCWts  []float32 `desc:"[NumNC][NCfromMF] MF-NC weights"`
}

func (ma *MZoneActState) alloc(cp *netparams.ConParams) {
	ma.VmBC = make([]float32, cp.NumBC)
	ma.ThreshBC = make([]float32, cp.NumBC)
	ma.APBC = make([]uint8, cp.NumBC)

	ma.VmPC = make([]float32, cp.NumPC)
	ma.ThreshPC = make([]float32, cp.NumPC)
	ma.APPC = make([]uint8, cp.NumPC)
	ma.PFPCWts = make([]float32, cp.NumGR)
	ma.GSumPFPC = make([]float32, cp.NumPC)

	ma.VmIO = make([]float32, cp.NumIO)
	ma.ThreshIO = make([]float32, cp.NumIO)
	ma.APIO = make([]uint8, cp.NumIO)

	ma.VmNC = make([]float32, cp.NumNC)
	ma.ThreshNC = make([]float32, cp.NumNC)
	ma.APNC = make([]uint8, cp.NumNC)
	ma.MFNCWts = make([]float32, tableLen(cp.NumNC, cp.NCfromMF))
}

// init sets the zone to rest, with initial membrane potentials jittered
// by up to 1 mV from the given seed
func (ma *MZoneActState) init(ap *netparams.ActParams, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	jitter := func(vm []float32, rest float32) {
		for i := range vm {
			vm[i] = rest + rnd.Float32()
		}
	}
	jitter(ma.VmBC, ap.BC.ELeak)
	fill(ma.ThreshBC, ap.BC.ThrRest)
	jitter(ma.VmPC, ap.PC.ELeak)
	fill(ma.ThreshPC, ap.PC.ThrRest)
	fill(ma.PFPCWts, ap.Syn.PFPCInit)
	jitter(ma.VmIO, ap.IO.ELeak)
	fill(ma.ThreshIO, ap.IO.ThrRest)
	jitter(ma.VmNC, ap.NC.ELeak)
	fill(ma.ThreshNC, ap.NC.ThrRest)
	fill(ma.MFNCWts, ap.Syn.MFNCInit)
	ma.ErrDrive = 0
}

func (ma *MZoneActState) fields() []any {
	return []any{
		ma.VmBC, ma.ThreshBC, ma.APBC,
		ma.VmPC, ma.ThreshPC, ma.APPC, ma.PFPCWts, ma.GSumPFPC,
		ma.VmIO, ma.ThreshIO, ma.APIO, &ma.ErrDrive,
		ma.VmNC, ma.ThreshNC, ma.APNC, ma.MFNCWts,
	}
}

///////////////////////////////////////////////////////////////////////
//  helpers

// tableLen is the length of a [numPost][fanIn] table. Sizes are checked
// by ConParams.Validate before any allocation.
func tableLen(numPost, fanIn uint32) int {
	return int(netparams.TableLen(numPost, fanIn))
}

func fill(vals []float32, v float32) {
	for i := range vals {
		vals[i] = v
	}
}

// connect fills the row-major [numPost][fanIn] table with distinct random
// sender indexes in [0, numPre). If noSelf, post cell i never gets sender i
// (for projections within one population). Rows are left zero-padded when
// fanIn exceeds the available senders.
func connect(rnd *rand.Rand, tbl []uint32, numPost, fanIn, numPre uint32, noSelf bool) {
	if fanIn == 0 || numPre == 0 {
		return
	}
	avail := numPre
	if noSelf {
		avail--
	}
	use := min(fanIn, avail)
	if use == 0 {
		return
	}
	dense := 2*use > avail
	chosen := make(map[uint32]struct{}, use)
	for pi := uint32(0); pi < numPost; pi++ {
		st := int(pi) * int(fanIn)
		row := tbl[st : st+int(use)]
		if dense {
			perm := rnd.Perm(int(numPre))
			ri := 0
			for _, si := range perm {
				if noSelf && uint32(si) == pi {
					continue
				}
				row[ri] = uint32(si)
				ri++
				if ri == len(row) {
					break
				}
			}
			continue
		}
		clear(chosen)
		for ri := range row {
			for {
				si := uint32(rnd.Int63n(int64(numPre)))
				if noSelf && si == pi {
					continue
				}
				if _, has := chosen[si]; has {
					continue
				}
				chosen[si] = struct{}{}
				row[ri] = si
				break
			}
		}
	}
}
