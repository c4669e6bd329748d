// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Build is the content of a build file: everything needed to generate a new
// simulation from scratch. Fields missing from the file keep their defaults.
type Build struct {
	Con ConParams `yaml:"connectivity" desc:"connectivity parameters"`
	Act ActParams `yaml:"activity" desc:"activity parameters"`
}

func (bf *Build) Defaults() {
	bf.Con.Defaults()
	bf.Act.Defaults()
}

// Validate checks the parameters for values that cannot produce a network
func (bf *Build) Validate() error {
	if err := bf.Con.Validate(); err != nil {
		return err
	}
	if bf.Con.NumMF == 0 || bf.Con.NumGR == 0 || bf.Con.NumGO == 0 {
		return fmt.Errorf("input network populations must be non-empty: mf %d, gr %d, go %d", bf.Con.NumMF, bf.Con.NumGR, bf.Con.NumGO)
	}
	if bf.Act.Plasticity < 0 || bf.Act.Plasticity >= PlasticityN {
		return fmt.Errorf("invalid plasticity: %d", bf.Act.Plasticity)
	}
	return nil
}

// ParseBuild parses build file data on top of the defaults
func ParseBuild(data []byte) (*Build, error) {
	bf := &Build{}
	bf.Defaults()
	if err := yaml.Unmarshal(data, bf); err != nil {
		return nil, fmt.Errorf("parsing build file: %w", err)
	}
	bf.Con.Update()
	bf.Act.Update()
	if err := bf.Validate(); err != nil {
		return nil, err
	}
	return bf, nil
}

// OpenBuild loads a YAML build file
func OpenBuild(filename string) (*Build, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading build file: %w", err)
	}
	return ParseBuild(data)
}

// SaveBuild writes the build as YAML, e.g., to produce a template build file
func (bf *Build) SaveBuild(filename string) error {
	data, err := yaml.Marshal(bf)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
