// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package simcore is a CPU reference integration kernel: it advances a
cbmstate.State by one timestep at a time using conductance-based leaky
integrate-and-fire cells with adaptive thresholds, and applies PF-PC and
MF-NC plasticity.

It is written for clarity and modest network sizes, not speed. Synaptic
conductances that are not part of the saved state are kept in the Core and
start from zero whenever a Core is created.
*/
package simcore

import (
	"io"

	"github.com/emer/cbm"
	"github.com/emer/cbm/cbmstate"
	"github.com/emer/cbm/netparams"
	"github.com/goki/mat32"
)

// decays are the per-timestep decay factors of one population
type decays struct {
	GE  float32
	GI  float32
	Thr float32
}

// zoneG are the transient conductances of one zone
type zoneG struct {
	GEBC, GIBC []float32
	GIPC       []float32
	GENC, GINC []float32
	GIIO       []float32
	PCtoNC     []int
	prevPC     []uint8
	prevVmIO   []float32
}

// Core is the reference kernel
type Core struct {
	Con   *netparams.ConParams `desc:"connectivity parameters"`
	Act   *netparams.ActParams `desc:"activity parameters"`
	State *cbmstate.State      `desc:"state advanced by the kernel"`

	Plastic  bool                   `desc:"whether plasticity is applied, in addition to Act.Plasticity not being off"`
	IsTrueMF []bool                 `desc:"MFs that fire on their own; the rest are nucleus collaterals"`
	Dec      [cbm.CellTypesN]decays `desc:"conductance and threshold decays of each population"`
	ErrDec   float32                `desc:"per-timestep decay of the IO error drive"`

	// GOfromGR in sender-major form, so only spiking GRs are visited
	grGOOff []uint32
	grGO    []uint32
	zones   []zoneG
	pfMask  uint32
	prevGO  []uint8
}

// New returns a kernel that will advance st
func New(cp *netparams.ConParams, ap *netparams.ActParams, st *cbmstate.State) *Core {
	cr := &Core{Con: cp, Act: ap, State: st, Plastic: true}
	dt := ap.MsPerTimeStep
	set := func(ct cbm.CellTypes, lp *netparams.LIFParams) {
		cr.Dec[ct] = decays{GE: netparams.Decay(lp.GETau, dt), GI: netparams.Decay(lp.GITau, dt), Thr: lp.ThrDecay(dt)}
	}
	set(cbm.GR, &ap.GR)
	set(cbm.GO, &ap.GO)
	set(cbm.SC, &ap.SC)
	set(cbm.BC, &ap.BC)
	set(cbm.PC, &ap.PC)
	set(cbm.IO, &ap.IO)
	set(cbm.NC, &ap.NC)
	cr.ErrDec = netparams.Decay(ap.Syn.ErrTau, dt)

	cr.IsTrueMF = make([]bool, cp.NumMF)
	for i := range cr.IsTrueMF {
		cr.IsTrueMF[i] = true
	}
	win := ap.Learn.PFPCWin
	if win >= 32 {
		cr.pfMask = 0xffffffff
	} else {
		cr.pfMask = (uint32(1) << win) - 1
	}
	cr.invertGOfromGR()
	cr.prevGO = make([]uint8, cp.NumGO)
	cr.zones = make([]zoneG, st.NumZones())
	for zi := range cr.zones {
		zg := &cr.zones[zi]
		zg.GEBC = make([]float32, cp.NumBC)
		zg.GIBC = make([]float32, cp.NumBC)
		zg.GIPC = make([]float32, cp.NumPC)
		zg.GENC = make([]float32, cp.NumNC)
		zg.GINC = make([]float32, cp.NumNC)
		zg.GIIO = make([]float32, cp.NumIO)
		zg.PCtoNC = make([]int, cp.NumNC)
		zg.prevPC = make([]uint8, cp.NumPC)
		zg.prevVmIO = make([]float32, cp.NumIO)
	}
	return cr
}

func (cr *Core) invertGOfromGR() {
	cp := cr.Con
	fan := cp.GOfromGR
	cr.grGOOff = make([]uint32, cp.NumGR+1)
	tbl := cr.State.InNetConState().GOfromGR
	for _, si := range tbl {
		cr.grGOOff[si+1]++
	}
	for i := uint32(1); i <= cp.NumGR; i++ {
		cr.grGOOff[i] += cr.grGOOff[i-1]
	}
	cr.grGO = make([]uint32, len(tbl))
	fill := make([]uint32, cp.NumGR)
	for gi := uint32(0); gi < cp.NumGO; gi++ {
		for _, si := range tbl[gi*fan : (gi+1)*fan] {
			cr.grGO[cr.grGOOff[si]+fill[si]] = gi
			fill[si]++
		}
	}
}

// SetPlasticity turns plasticity on or off, e.g., for homeostatic tuning trials
func (cr *Core) SetPlasticity(on bool) {
	cr.Plastic = on
}

// UpdateErrDrive sets the error (US) drive onto the IO cells of zone zi
func (cr *Core) UpdateErrDrive(zi int, mag float32) {
	cr.State.ZoneActState(zi).ErrDrive = mag
}

// UpdateTrueMFs sets which MFs fire on their own
func (cr *Core) UpdateTrueMFs(isTrue []bool) {
	copy(cr.IsTrueMF, isTrue)
}

// UpdateMFInput sets the MF spikes for the next step. Collateral MFs
// ignore ap and follow the zone 0 nucleus cell they are assigned to.
func (cr *Core) UpdateMFInput(ap []uint8) {
	ia := cr.State.InNetActState()
	copy(ia.HistMF, ia.APMF)
	nc := cr.State.ZoneActState(0).APNC
	for i := range ia.APMF {
		switch {
		case !cr.IsTrueMF[i] && len(nc) > 0:
			ia.APMF[i] = nc[i%len(nc)]
		case i < len(ap):
			ia.APMF[i] = ap[i]
		default:
			ia.APMF[i] = 0
		}
	}
}

// lif integrates one cell for one timestep and returns 1 if it spikes
func lif(lp *netparams.LIFParams, dc *decays, vm, thr *float32, gE, gI float32) uint8 {
	v := *vm
	v += lp.GLeak*(lp.ELeak-v) + gE*(lp.EExc-v) + gI*(lp.EInh-v)
	*vm = v
	*thr += (lp.ThrRest - *thr) * dc.Thr
	if v > *thr {
		*thr = lp.ThrMax
		return 1
	}
	return 0
}

func sumAP(ap []uint8, idx []uint32) float32 {
	n := 0
	for _, si := range idx {
		n += int(ap[si])
	}
	return float32(n)
}

// CalcActivity advances the network one timestep using the given input
// network gains
func (cr *Core) CalcActivity(g netparams.Gains) {
	cr.calcInNet(g)
	ia := cr.State.InNetActState()
	for zi := range cr.zones {
		cr.calcZone(zi, ia)
	}
}

func (cr *Core) calcInNet(g netparams.Gains) {
	cp, ap := cr.Con, cr.Act
	ic := cr.State.InNetConState()
	ia := cr.State.InNetActState()

	// GO: uses GR and GO spikes of the previous step
	dGO := &cr.Dec[cbm.GO]
	for gi := range ia.GSumGRGO {
		ia.GSumGRGO[gi] *= dGO.GE
	}
	for si, sp := range ia.APGR {
		if sp == 0 {
			continue
		}
		for _, gi := range cr.grGO[cr.grGOOff[si]:cr.grGOOff[si+1]] {
			ia.GSumGRGO[gi] += g.GRGO
		}
	}
	mfFan, goFan := cp.GOfromMF, cp.GOfromGO
	prevGO := cr.prevGO
	copy(prevGO, ia.APGO)
	for gi := uint32(0); gi < cp.NumGO; gi++ {
		ia.GSumMFGO[gi] = ia.GSumMFGO[gi]*dGO.GE + g.MFGO*sumAP(ia.APMF, ic.GOfromMF[gi*mfFan:(gi+1)*mfFan])
		ia.GSumGOGO[gi] = ia.GSumGOGO[gi]*dGO.GI + g.GOGO*sumAP(prevGO, ic.GOfromGO[gi*goFan:(gi+1)*goFan])
		ia.APGO[gi] = lif(&ap.GO, dGO, &ia.VmGO[gi], &ia.ThreshGO[gi], ia.GSumMFGO[gi]+ia.GSumGRGO[gi], ia.GSumGOGO[gi])
	}

	// GR: spillover adds SpillFrac of the direct GO inhibition
	dGR := &cr.Dec[cbm.GR]
	mfFan, goFan = cp.GRfromMF, cp.GRfromGO
	gogr := g.GOGR * (1 + g.SpillFrac)
	for ri := uint32(0); ri < cp.NumGR; ri++ {
		ia.GESumGR[ri] = ia.GESumGR[ri]*dGR.GE + ap.Syn.MFGR*sumAP(ia.APMF, ic.GRfromMF[ri*mfFan:(ri+1)*mfFan])
		ia.GISumGR[ri] = ia.GISumGR[ri]*dGR.GI + gogr*sumAP(ia.APGO, ic.GRfromGO[ri*goFan:(ri+1)*goFan])
		sp := lif(&ap.GR, dGR, &ia.VmGR[ri], &ia.ThreshGR[ri], ia.GESumGR[ri], ia.GISumGR[ri])
		ia.APGR[ri] = sp
		ia.APBufGR[ri] = (ia.APBufGR[ri] << 1) | uint32(sp)
	}

	// SC
	dSC := &cr.Dec[cbm.SC]
	scFan := cp.SCfromGR
	for si := uint32(0); si < cp.NumSC; si++ {
		ia.GSumGRSC[si] = ia.GSumGRSC[si]*dSC.GE + ap.Syn.GRSC*sumAP(ia.APGR, ic.SCfromGR[si*scFan:(si+1)*scFan])
		ia.APSC[si] = lif(&ap.SC, dSC, &ia.VmSC[si], &ia.ThreshSC[si], ia.GSumGRSC[si], 0)
	}
}

func (cr *Core) calcZone(zi int, ia *cbmstate.InNetActState) {
	cp, ap := cr.Con, cr.Act
	zc := cr.State.ZoneConState(zi)
	za := cr.State.ZoneActState(zi)
	zg := &cr.zones[zi]
	learn := cr.Plastic && ap.Plasticity != netparams.PlastOff

	// parallel fiber input, with PF-PC learning driven by the previous step's
	// climbing fiber (IO) spikes
	cf := false
	for _, s := range za.APIO {
		if s != 0 {
			cf = true
			break
		}
	}
	var pf float32
	nPF := 0
	for ri, sp := range ia.APGR {
		if learn {
			switch {
			case cf && ia.APBufGR[ri]&cr.pfMask != 0:
				za.PFPCWts[ri] = cr.updtWt(za.PFPCWts[ri], ap.Learn.PFPCLTD)
			case !cf && sp != 0:
				za.PFPCWts[ri] = cr.updtWt(za.PFPCWts[ri], ap.Learn.PFPCLTP)
			}
		}
		if sp != 0 {
			pf += za.PFPCWts[ri]
			nPF++
		}
	}
	pfFrac := float32(nPF) / float32(max(cp.NumGR, 1))

	prevPC := zg.prevPC
	copy(prevPC, za.APPC)

	// BC
	dBC := &cr.Dec[cbm.BC]
	fan := cp.BCfromPC
	for bi := uint32(0); bi < cp.NumBC; bi++ {
		zg.GEBC[bi] = zg.GEBC[bi]*dBC.GE + ap.Syn.GRBC*pfFrac
		zg.GIBC[bi] = zg.GIBC[bi]*dBC.GI + ap.Syn.PCBC*sumAP(prevPC, zc.BCfromPC[bi*fan:(bi+1)*fan])
		za.APBC[bi] = lif(&ap.BC, dBC, &za.VmBC[bi], &za.ThreshBC[bi], zg.GEBC[bi], zg.GIBC[bi])
	}

	// PC
	dPC := &cr.Dec[cbm.PC]
	bcFan, scFan := cp.PCfromBC, cp.PCfromSC
	for pi := uint32(0); pi < cp.NumPC; pi++ {
		za.GSumPFPC[pi] = za.GSumPFPC[pi]*dPC.GE + ap.Syn.PFPCScale*pf
		gi := ap.Syn.BCPC*sumAP(za.APBC, zc.PCfromBC[pi*bcFan:(pi+1)*bcFan]) +
			ap.Syn.SCPC*sumAP(ia.APSC, zc.PCfromSC[pi*scFan:(pi+1)*scFan])
		zg.GIPC[pi] = zg.GIPC[pi]*dPC.GI + gi
		za.APPC[pi] = lif(&ap.PC, dPC, &za.VmPC[pi], &za.ThreshPC[pi], za.GSumPFPC[pi], zg.GIPC[pi])
	}

	// NC, with MF-NC learning gated by PC pauses
	dNC := &cr.Dec[cbm.NC]
	pcFan, mfFan := cp.NCfromPC, cp.NCfromMF
	for ni := uint32(0); ni < cp.NumNC; ni++ {
		npc := sumAP(za.APPC, zc.NCfromPC[ni*pcFan:(ni+1)*pcFan])
		zg.PCtoNC[ni] = int(npc)
		var ge float32
		for k := ni * mfFan; k < (ni+1)*mfFan; k++ {
			if ia.APMF[zc.NCfromMF[k]] == 0 {
				continue
			}
			if learn {
				dw := ap.Learn.MFNCLTD
				if uint32(npc) < ap.Learn.PCPauseN {
					dw = ap.Learn.MFNCLTP
				}
				za.MFNCWts[k] = mat32.Max(za.MFNCWts[k]+dw, 0)
			}
			ge += za.MFNCWts[k]
		}
		zg.GENC[ni] = zg.GENC[ni]*dNC.GE + ge
		zg.GINC[ni] = zg.GINC[ni]*dNC.GI + ap.Syn.PCNC*npc
		za.APNC[ni] = lif(&ap.NC, dNC, &za.VmNC[ni], &za.ThreshNC[ni], zg.GENC[ni], zg.GINC[ni])
	}

	// IO: error drive excites, NC inhibits, gap junctions couple
	dIO := &cr.Dec[cbm.IO]
	ncFan, cpFan := cp.IOfromNC, cp.IOCouple
	vm := zg.prevVmIO
	copy(vm, za.VmIO)
	for oi := uint32(0); oi < cp.NumIO; oi++ {
		var cpl float32
		for _, ni := range zc.IOCouple[oi*cpFan : (oi+1)*cpFan] {
			cpl += vm[ni] - vm[oi]
		}
		za.VmIO[oi] += ap.Syn.IOCouple * cpl
		zg.GIIO[oi] = zg.GIIO[oi]*dIO.GI + ap.Syn.NCIO*sumAP(za.APNC, zc.IOfromNC[oi*ncFan:(oi+1)*ncFan])
		za.APIO[oi] = lif(&ap.IO, dIO, &za.VmIO[oi], &za.ThreshIO[oi], za.ErrDrive, zg.GIIO[oi])
	}
	za.ErrDrive *= cr.ErrDec
}

// updtWt applies weight change dw according to the plasticity type
func (cr *Core) updtWt(wt, dw float32) float32 {
	switch cr.Act.Plasticity {
	case netparams.PlastBinary:
		if dw > 0 {
			return 1
		}
		return 0
	case netparams.PlastCascade:
		if dw > 0 {
			return wt + dw*(1-wt)
		}
		return wt + dw*wt
	}
	return mat32.Min(mat32.Max(wt+dw, 0), 1)
}

// ExportAP returns the current spikes of a cell type. Zone populations are
// those of zone 0.
func (cr *Core) ExportAP(ct cbm.CellTypes) []uint8 {
	return cr.ExportZoneAP(0, ct)
}

// ExportZoneAP returns the current spikes of a cell type, with zone
// populations taken from zone zi
func (cr *Core) ExportZoneAP(zi int, ct cbm.CellTypes) []uint8 {
	ia := cr.State.InNetActState()
	switch ct {
	case cbm.MF:
		return ia.APMF
	case cbm.GR:
		return ia.APGR
	case cbm.GO:
		return ia.APGO
	case cbm.SC:
		return ia.APSC
	}
	za := cr.State.ZoneActState(zi)
	switch ct {
	case cbm.BC:
		return za.APBC
	case cbm.PC:
		return za.APPC
	case cbm.IO:
		return za.APIO
	case cbm.NC:
		return za.APNC
	}
	return nil
}

// ExportGSumMFGO returns the MF to GO conductance of each GO
func (cr *Core) ExportGSumMFGO() []float32 {
	return cr.State.InNetActState().GSumMFGO
}

// ExportGSumGRGO returns the GR to GO conductance of each GO
func (cr *Core) ExportGSumGRGO() []float32 {
	return cr.State.InNetActState().GSumGRGO
}

// WriteState writes the state the kernel is advancing
func (cr *Core) WriteState(w io.Writer) error {
	return cr.State.Write(w)
}
