// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

import "github.com/goki/ki/kit"

// Plasticity is the learning rule at the PF-PC and MF-NC synapses
type Plasticity int32

//go:generate stringer -type=Plasticity

var KiT_Plasticity = kit.Enums.AddEnum(PlasticityN, kit.NotBitFlag, nil)

func (ev Plasticity) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Plasticity) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// UnmarshalText reads the plasticity from its name in build files
func (ev *Plasticity) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// MarshalText writes the plasticity name
func (ev Plasticity) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

const (
	// PlastOff disables weight changes
	PlastOff Plasticity = iota

	// PlastGraded makes weight changes proportional to the learning rates
	PlastGraded

	// PlastBinary snaps weights to the min or max after each change
	PlastBinary

	// PlastCascade is graded learning with weights bounded to [0,1]
	PlastCascade

	PlasticityN
)
