// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cbmstate holds the simulation state: the connectivity and activity
records of the input network and of each output zone.

A State is built either generatively from a seed (New) or by reading a
previously written state (Read), never both. The binary layout is purely
positional, little-endian, with no header or length prefixes:

	[InNetCon][InNetAct][Zone 0 Con][Zone 0 Act] ... [Zone N-1 Con][Zone N-1 Act]

so the ConParams that size every array, including the number of zones,
must be known before reading.
*/
package cbmstate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/emer/cbm/netparams"
)

// ErrCorruptState is returned when a state stream ends before every field
// has been read
var ErrCorruptState = errors.New("cbmstate: corrupt or truncated state")

// State is the complete simulation state for a fixed number of zones.
// It owns its records; the kernel mutates them through the accessors.
type State struct {
	numZones uint32
	inNetCon *InNetConState
	inNetAct *InNetActState
	zoneCons []*MZoneConState
	zoneActs []*MZoneActState
}

// SeedFromTime returns a wall-clock seed, for runs that do not need to be
// reproducible
func SeedFromTime() int64 {
	return time.Now().UnixNano()
}

// DrawSeeds draws the record seeds from the top-level seed: the input
// network connectivity seed first, then for each zone in order its
// connectivity seed and its activity seed.
func DrawSeeds(seed int64, numZones uint32) (inNetCon int64, zoneCon, zoneAct []int64) {
	rnd := rand.New(rand.NewSource(seed))
	inNetCon = int64(rnd.Int31n(math.MaxInt32))
	zoneCon = make([]int64, numZones)
	zoneAct = make([]int64, numZones)
	for zi := range zoneCon {
		zoneCon[zi] = int64(rnd.Int31n(math.MaxInt32))
		zoneAct[zi] = int64(rnd.Int31n(math.MaxInt32))
	}
	return
}

// New generates a new state from the parameters and a top-level seed.
// Parameters that fail ConParams.Validate return an error wrapping
// netparams.ErrCorruptParams.
func New(cp *netparams.ConParams, ap *netparams.ActParams, seed int64) (*State, error) {
	if cp == nil || ap == nil {
		return nil, errors.New("cbmstate: New requires both connectivity and activity params")
	}
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	st := alloc(cp)
	icSeed, zcSeeds, zaSeeds := DrawSeeds(seed, cp.NumZones)
	st.inNetCon.gen(cp, icSeed)
	st.inNetAct.init(ap)
	for zi := range st.zoneCons {
		st.zoneCons[zi].gen(cp, zcSeeds[zi])
		st.zoneActs[zi].init(ap, zaSeeds[zi])
	}
	return st, nil
}

// Read restores a state written by Write. The stream must hold exactly the
// records sized by cp; a short stream, or cp describing arrays too large
// to allocate, returns an error wrapping ErrCorruptState.
func Read(cp *netparams.ConParams, r io.Reader) (*State, error) {
	if cp == nil {
		return nil, errors.New("cbmstate: Read requires connectivity params")
	}
	if err := cp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	st := alloc(cp)
	if err := readFields(r, "input network connectivity", st.inNetCon.fields()); err != nil {
		return nil, err
	}
	if err := readFields(r, "input network activity", st.inNetAct.fields()); err != nil {
		return nil, err
	}
	for zi := range st.zoneCons {
		if err := readFields(r, fmt.Sprintf("zone %d connectivity", zi), st.zoneCons[zi].fields()); err != nil {
			return nil, err
		}
		if err := readFields(r, fmt.Sprintf("zone %d activity", zi), st.zoneActs[zi].fields()); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func alloc(cp *netparams.ConParams) *State {
	st := &State{numZones: cp.NumZones}
	st.inNetCon = &InNetConState{}
	st.inNetCon.alloc(cp)
	st.inNetAct = &InNetActState{}
	st.inNetAct.alloc(cp)
	st.zoneCons = make([]*MZoneConState, cp.NumZones)
	st.zoneActs = make([]*MZoneActState, cp.NumZones)
	for zi := range st.zoneCons {
		st.zoneCons[zi] = &MZoneConState{}
		st.zoneCons[zi].alloc(cp)
		st.zoneActs[zi] = &MZoneActState{}
		st.zoneActs[zi].alloc(cp)
	}
	return st
}

// Write writes the state in the same order Read reads it
func (st *State) Write(w io.Writer) error {
	if err := writeFields(w, st.inNetCon.fields()); err != nil {
		return err
	}
	if err := writeFields(w, st.inNetAct.fields()); err != nil {
		return err
	}
	for zi := range st.zoneCons {
		if err := writeFields(w, st.zoneCons[zi].fields()); err != nil {
			return err
		}
		if err := writeFields(w, st.zoneActs[zi].fields()); err != nil {
			return err
		}
	}
	return nil
}

// NumZones is the number of output zones, fixed at construction
func (st *State) NumZones() uint32 { return st.numZones }

func (st *State) InNetConState() *InNetConState { return st.inNetCon }

func (st *State) InNetActState() *InNetActState { return st.inNetAct }

// ZoneConState returns the connectivity of zone zi
func (st *State) ZoneConState(zi int) *MZoneConState { return st.zoneCons[zi] }

// ZoneActState returns the activity of zone zi
func (st *State) ZoneActState(zi int) *MZoneActState { return st.zoneActs[zi] }

// Size returns the number of bytes Write produces
func (st *State) Size() int {
	n := fieldsSize(st.inNetCon.fields()) + fieldsSize(st.inNetAct.fields())
	for zi := range st.zoneCons {
		n += fieldsSize(st.zoneCons[zi].fields()) + fieldsSize(st.zoneActs[zi].fields())
	}
	return n
}

// SizeReport returns a string reporting the memory used by each record
func (st *State) SizeReport() string {
	var b strings.Builder
	tot := 0
	report := func(name string, flds []any) {
		n := fieldsSize(flds)
		tot += n
		fmt.Fprintf(&b, "%24s:\t %v\n", name, (datasize.ByteSize)(n).HumanReadable())
	}
	report("InNet Connectivity", st.inNetCon.fields())
	report("InNet Activity", st.inNetAct.fields())
	for zi := range st.zoneCons {
		report(fmt.Sprintf("Zone %d Connectivity", zi), st.zoneCons[zi].fields())
		report(fmt.Sprintf("Zone %d Activity", zi), st.zoneActs[zi].fields())
	}
	fmt.Fprintf(&b, "\n%24s:\t %v\n", "Total", (datasize.ByteSize)(tot).HumanReadable())
	return b.String()
}

///////////////////////////////////////////////////////////////////////
//  field io

func writeFields(w io.Writer, flds []any) error {
	for _, f := range flds {
		if err := binary.Write(w, netparams.Order, f); err != nil {
			return err
		}
	}
	return nil
}

func readFields(r io.Reader, name string, flds []any) error {
	for _, f := range flds {
		if binary.Size(f) == 0 {
			continue
		}
		err := binary.Read(r, netparams.Order, f)
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %s: %w", ErrCorruptState, name, err)
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

func fieldsSize(flds []any) int {
	n := 0
	for _, f := range flds {
		n += binary.Size(f)
	}
	return n
}
