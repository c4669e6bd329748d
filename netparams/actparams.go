// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

import (
	"github.com/chewxy/math32"
)

///////////////////////////////////////////////////////////////////////
//  actparams.go contains the activity params shared by all populations

// ActParams are the activity parameters of the network: the integrate-and-fire
// constants of every population, the synaptic gains, the plasticity rule and
// the mossy fiber stimulus ranges. Like ConParams, every field is fixed-size.
type ActParams struct {
	MsPerTimeStep float32    `def:"1" yaml:"ms_per_time_step" desc:"msec of simulated time per timestep"`
	Plasticity    Plasticity `yaml:"plasticity" desc:"type of plasticity at PF-PC and MF-NC synapses"`

	GR LIFParams `view:"inline" yaml:"gr" desc:"granule cell membrane parameters"`
	GO LIFParams `view:"inline" yaml:"go" desc:"Golgi cell membrane parameters"`
	SC LIFParams `view:"inline" yaml:"sc" desc:"stellate cell membrane parameters"`
	BC LIFParams `view:"inline" yaml:"bc" desc:"basket cell membrane parameters"`
	PC LIFParams `view:"inline" yaml:"pc" desc:"Purkinje cell membrane parameters"`
	IO LIFParams `view:"inline" yaml:"io" desc:"inferior olive membrane parameters"`
	NC LIFParams `view:"inline" yaml:"nc" desc:"deep nucleus membrane parameters"`

	Syn   SynParams   `view:"inline" yaml:"syn" desc:"synaptic gains of the fixed projections"`
	Learn LearnParams `view:"inline" yaml:"learn" desc:"PF-PC and MF-NC learning rates"`
	MF    MFParams    `view:"inline" yaml:"mf" desc:"mossy fiber stimulus parameters"`
}

func (ap *ActParams) Defaults() {
	ap.MsPerTimeStep = 1
	ap.Plasticity = PlastGraded
	ap.GR.Set(0.07, -64, 0, -75, -40, -20, 3, 5.5, 7)
	ap.GO.Set(0.02, -62, 0, -75, -34, -10, 20, 2, 9)
	ap.SC.Set(0.06, -60, 0, -75, -50, 0, 18, 4, 4)
	ap.BC.Set(0.06, -70, 0, -75, -65, 0, 10, 4, 4)
	ap.PC.Set(0.2, -60, 0, -80, -52, -22, 5, 4, 4)
	ap.IO.Set(0.03, -60, 0, -80, -57.4, 10, 200, 300, 3)
	ap.NC.Set(0.1, -65, 0, -80, -72, -40, 5, 3, 4)
	ap.Syn.Defaults()
	ap.Learn.Defaults()
	ap.MF.Defaults()
}

// Update must be called after any changes to parameters
func (ap *ActParams) Update() {
	if ap.MsPerTimeStep <= 0 {
		ap.MsPerTimeStep = 1
	}
	ap.MF.Update()
}

// LIFParams are conductance-based leaky integrate-and-fire parameters with an
// adaptive threshold: after a spike the threshold jumps to ThrMax and decays
// back to ThrRest.
type LIFParams struct {
	GLeak   float32 `desc:"leak conductance, as a fraction of the leak driving force applied per msec"`
	ELeak   float32 `desc:"leak reversal potential (mV)"`
	EExc    float32 `desc:"excitatory reversal potential (mV)"`
	EInh    float32 `desc:"inhibitory reversal potential (mV)"`
	ThrRest float32 `desc:"resting threshold (mV)"`
	ThrMax  float32 `desc:"threshold immediately after a spike (mV)"`
	ThrTau  float32 `desc:"time constant (msec) of threshold decay to ThrRest"`
	GETau   float32 `desc:"time constant (msec) of excitatory conductance decay"`
	GITau   float32 `desc:"time constant (msec) of inhibitory conductance decay"`
}

// Set sets all the parameters in order
func (lp *LIFParams) Set(gLeak, eLeak, eExc, eInh, thrRest, thrMax, thrTau, geTau, giTau float32) {
	lp.GLeak, lp.ELeak, lp.EExc, lp.EInh = gLeak, eLeak, eExc, eInh
	lp.ThrRest, lp.ThrMax, lp.ThrTau = thrRest, thrMax, thrTau
	lp.GETau, lp.GITau = geTau, giTau
}

// Decay returns the per-timestep multiplicative decay for time constant tau
func Decay(tau, dt float32) float32 {
	if tau <= 0 {
		return 0
	}
	return math32.Exp(-dt / tau)
}

// ThrDecay is the fraction of the distance to ThrRest recovered per timestep
func (lp *LIFParams) ThrDecay(dt float32) float32 {
	return 1 - Decay(lp.ThrTau, dt)
}

// SynParams are the gains on the fixed (non-learning) projections
type SynParams struct {
	MFGR      float32 `def:"0.0266" desc:"MF to GR gain"`
	GRSC      float32 `def:"0.008" desc:"GR to SC gain"`
	GRBC      float32 `def:"1.5" desc:"GR (parallel fiber) to BC gain, applied to the fraction of GRs spiking"`
	SCPC      float32 `def:"0.0075" desc:"SC to PC gain"`
	BCPC      float32 `def:"0.0002" desc:"BC to PC gain"`
	PCBC      float32 `def:"0.025" desc:"PC to BC gain"`
	PCNC      float32 `def:"0.05" desc:"PC to NC gain"`
	NCIO      float32 `def:"0.0325" desc:"NC to IO gain"`
	IOCouple  float32 `def:"0.04" desc:"IO gap junction coupling coefficient"`
	PFPCInit  float32 `def:"0.5" desc:"initial PF-PC weight"`
	PFPCScale float32 `def:"0.0001" desc:"scaling of summed PF-PC input into PC conductance"`
	MFNCInit  float32 `def:"0" desc:"initial MF-NC weight"`
	ErrTau    float32 `def:"20" desc:"time constant (msec) of IO error drive decay"`
}

func (sp *SynParams) Defaults() {
	sp.MFGR = 0.0266
	sp.GRSC = 0.008
	sp.GRBC = 1.5
	sp.SCPC = 0.0075
	sp.BCPC = 0.0002
	sp.PCBC = 0.025
	sp.PCNC = 0.05
	sp.NCIO = 0.0325
	sp.IOCouple = 0.04
	sp.PFPCInit = 0.5
	sp.PFPCScale = 0.0001
	sp.MFNCInit = 0
	sp.ErrTau = 20
}

// LearnParams are the learning rates of the two plastic projections.
// PF-PC synapses are depressed by PF activity coincident with an IO spike
// (LTD) and potentiated by PF activity alone (LTP). MF-NC synapses follow
// the PC: strengthened when the PC pauses, weakened when it is active.
type LearnParams struct {
	PFPCLTD  float32 `def:"-0.00275" desc:"PF-PC weight change for a PF spike within the IO climbing fiber window"`
	PFPCLTP  float32 `def:"0.00030556" desc:"PF-PC weight change for a PF spike outside the climbing fiber window"`
	PFPCWin  uint32  `def:"100" desc:"msec window of PF spike history checked on an IO spike"`
	MFNCLTD  float32 `def:"-0.000001" desc:"MF-NC weight change per MF spike while PCs are active"`
	MFNCLTP  float32 `def:"0.0001" desc:"MF-NC weight change per MF spike while PCs pause"`
	PCPauseN uint32  `def:"2" desc:"number of PC inputs spiking below which an NC treats its PCs as paused"`
}

func (lp *LearnParams) Defaults() {
	lp.PFPCLTD = -0.00275
	lp.PFPCLTP = 0.00030556
	lp.PFPCWin = 100
	lp.MFNCLTD = -0.000001
	lp.MFNCLTP = 0.0001
	lp.PCPauseN = 2
}

// MFParams are the mossy fiber stimulus parameters: the fractions of MFs
// assigned to each CS response class, and the frequency range (Hz) each
// class draws from.
type MFParams struct {
	TonicFrac   float32 `def:"0.05" desc:"fraction of MFs with tonic CS responses"`
	PhasicFrac  float32 `def:"0" desc:"fraction of MFs with phasic CS responses"`
	ContextFrac float32 `def:"0.03" desc:"fraction of context MFs, firing at context rates throughout"`
	CollFrac    float32 `def:"0.02" desc:"fraction of MFs that are nucleus collaterals"`

	BgFreqMin      float32 `def:"10" desc:"background frequency min"`
	BgFreqMax      float32 `def:"30" desc:"background frequency max"`
	CSBgFreqMin    float32 `def:"10" desc:"frequency min of non-responding MFs during the CS"`
	CSBgFreqMax    float32 `def:"30" desc:"frequency max of non-responding MFs during the CS"`
	ContextFreqMin float32 `def:"20" desc:"context frequency min"`
	ContextFreqMax float32 `def:"50" desc:"context frequency max"`
	TonicFreqMin   float32 `def:"40" desc:"tonic CS frequency min"`
	TonicFreqMax   float32 `def:"50" desc:"tonic CS frequency max"`
	PhasicFreqMin  float32 `def:"200" desc:"phasic CS frequency min"`
	PhasicFreqMax  float32 `def:"250" desc:"phasic CS frequency max"`

	ThreshDecayTau float32 `def:"4" desc:"time constant (msec) of the Poisson generator refractory threshold recovery"`
	Seed           uint32  `desc:"seed for MF class assignment and frequency draws"`
}

func (mp *MFParams) Defaults() {
	mp.TonicFrac = 0.05
	mp.PhasicFrac = 0
	mp.ContextFrac = 0.03
	mp.CollFrac = 0.02
	mp.BgFreqMin, mp.BgFreqMax = 10, 30
	mp.CSBgFreqMin, mp.CSBgFreqMax = 10, 30
	mp.ContextFreqMin, mp.ContextFreqMax = 20, 50
	mp.TonicFreqMin, mp.TonicFreqMax = 40, 50
	mp.PhasicFreqMin, mp.PhasicFreqMax = 200, 250
	mp.ThreshDecayTau = 4
}

// Update keeps the class fractions summing to at most 1
func (mp *MFParams) Update() {
	tot := mp.TonicFrac + mp.PhasicFrac + mp.ContextFrac + mp.CollFrac
	if tot > 1 {
		mp.TonicFrac /= tot
		mp.PhasicFrac /= tot
		mp.ContextFrac /= tot
		mp.CollFrac /= tot
	}
}
