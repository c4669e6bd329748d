// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/cbm"
)

func TestParamsBlocks(t *testing.T) {
	var cp ConParams
	cp.Defaults()
	cp.NumZones = 3
	var ap ActParams
	ap.Defaults()
	ap.Plasticity = PlastBinary

	var b bytes.Buffer
	if err := cp.Write(&b); err != nil {
		t.Fatal(err)
	}
	if err := ap.Write(&b); err != nil {
		t.Fatal(err)
	}
	if b.Len() != ConSize()+ActSize() {
		t.Errorf("block size: %d != %d + %d\n", b.Len(), ConSize(), ActSize())
	}

	var rcp ConParams
	var rap ActParams
	if err := rcp.Read(&b); err != nil {
		t.Fatal(err)
	}
	if err := rap.Read(&b); err != nil {
		t.Fatal(err)
	}
	if rcp != cp {
		t.Errorf("con params differ after read: %+v\n", rcp)
	}
	if rap != ap {
		t.Errorf("act params differ after read: %+v\n", rap)
	}
}

func TestParamsTruncated(t *testing.T) {
	var cp ConParams
	cp.Defaults()
	var b bytes.Buffer
	cp.Write(&b)
	short := b.Bytes()[:b.Len()-3]

	var rcp ConParams
	err := rcp.Read(bytes.NewReader(short))
	if !errors.Is(err, ErrCorruptParams) {
		t.Errorf("expected ErrCorruptParams, got: %v\n", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected wrapped ErrUnexpectedEOF, got: %v\n", err)
	}

	var ap ActParams
	err = ap.Read(bytes.NewReader(nil))
	if !errors.Is(err, ErrCorruptParams) {
		t.Errorf("empty stream: expected ErrCorruptParams, got: %v\n", err)
	}
}

func TestValidate(t *testing.T) {
	var cp ConParams
	cp.Defaults()
	if err := cp.Validate(); err != nil {
		t.Errorf("defaults should validate: %v\n", err)
	}
	if n := TableLen(65536, 65536); n != 1<<32 {
		t.Errorf("table length overflowed: %d\n", n)
	}

	big := cp
	big.NumGO = 65536
	big.NumGR = 65536
	big.GOfromGR = 65536
	if err := big.Validate(); !errors.Is(err, ErrCorruptParams) {
		t.Errorf("oversized table: expected ErrCorruptParams, got: %v\n", err)
	}
	// a saved block describing an oversized state is rejected on read
	var b bytes.Buffer
	big.Write(&b)
	var rcp ConParams
	if err := rcp.Read(&b); !errors.Is(err, ErrCorruptParams) {
		t.Errorf("oversized block: expected ErrCorruptParams, got: %v\n", err)
	}

	zones := cp
	zones.NumZones = MaxZones + 1
	if err := zones.Validate(); !errors.Is(err, ErrCorruptParams) {
		t.Errorf("too many zones: expected ErrCorruptParams, got: %v\n", err)
	}
	zones.NumZones = 0
	if err := zones.Validate(); err == nil {
		t.Errorf("zero zones should fail\n")
	}
}

func TestParseBuild(t *testing.T) {
	src := `
connectivity:
  num_zones: 2
  num_mf: 16
  num_gr: 64
  num_go: 8
  gr_from_mf: 40
activity:
  plasticity: PlastCascade
  gr:
    gleak: 0.1
`
	bf, err := ParseBuild([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if bf.Con.NumZones != 2 || bf.Con.NumMF != 16 || bf.Con.NumGR != 64 {
		t.Errorf("populations not read: %+v\n", bf.Con)
	}
	if bf.Con.GRfromMF != 16 {
		t.Errorf("gr_from_mf should be clamped to num_mf: %d\n", bf.Con.GRfromMF)
	}
	if bf.Con.NumPC != 32 {
		t.Errorf("missing fields should keep defaults: num_pc %d\n", bf.Con.NumPC)
	}
	if bf.Act.Plasticity != PlastCascade {
		t.Errorf("plasticity: %v\n", bf.Act.Plasticity)
	}
	if math32.Abs(bf.Act.GR.GLeak-0.1) > 1e-7 {
		t.Errorf("gr gleak: %v\n", bf.Act.GR.GLeak)
	}
	if bf.Act.GO.GLeak != 0.02 {
		t.Errorf("go gleak should keep default: %v\n", bf.Act.GO.GLeak)
	}

	if _, err := ParseBuild([]byte("connectivity:\n  num_zones: 0\n")); err == nil {
		t.Errorf("zero zones should fail validation\n")
	}
	if _, err := ParseBuild([]byte("activity:\n  plasticity: Hebbian\n")); err == nil {
		t.Errorf("unknown plasticity should fail to parse\n")
	}
}

func TestSizes(t *testing.T) {
	var cp ConParams
	cp.Defaults()
	sz := cp.Sizes()
	if sz[cbm.GR] != 1048576 || sz[cbm.NC] != 8 {
		t.Errorf("sizes: %v\n", sz)
	}
	if d := Decay(0, 1); d != 0 {
		t.Errorf("zero tau decay: %v\n", d)
	}
	if d := Decay(1, 1); math32.Abs(d-0.36787944) > 1e-6 {
		t.Errorf("unit tau decay: %v\n", d)
	}
}
