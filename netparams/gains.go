// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

// Gains are the input-network weight scalars passed to every integration
// step. They are run settings rather than saved parameters, so a saved
// simulation can be re-run under different gains.
type Gains struct {
	MFGO      float32 `yaml:"mf_go" def:"0.00315" desc:"MF to GO weight"`
	GOGR      float32 `yaml:"go_gr" def:"0.017" desc:"GO to GR weight"`
	GRGO      float32 `yaml:"gr_go" def:"0.00063" desc:"GR to GO weight"`
	GOGO      float32 `yaml:"go_go" def:"0.0125" desc:"GO to GO weight"`
	SpillFrac float32 `yaml:"spill_frac" def:"0.15" desc:"fraction of GO to GR inhibition arriving through glutamate spillover"`
}

func (gn *Gains) Defaults() {
	gn.MFGO = 0.00350 * 0.9
	gn.GOGR = 0.017
	gn.GRGO = 0.0007 * 0.9
	gn.GOGO = 0.0125
	gn.SpillFrac = 0.15
}
