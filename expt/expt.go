// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package expt defines conditioning experiments: an ordered list of trials,
each with its own CS and US timing, loaded from a YAML session file.

A session file defines named trial types, named blocks made of counts of
trial types, and a session made of counts of blocks:

	trials:
	  csus:
	    use_cs: true
	    cs_onset: 2000
	    cs_len: 500
	    use_us: true
	    us_onset: 2500
	  csonly:
	    use_cs: true
	    cs_onset: 2000
	    cs_len: 500
	blocks:
	  acquisition:
	    - {trial: csus, count: 9}
	    - {trial: csonly, count: 1}
	session:
	  - {block: acquisition, count: 10}

The session expands, in file order, into the flat trial list of an
Experiment.
*/
package expt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goki/kigen/ordmap"
	"gopkg.in/yaml.v3"
)

// Trial is the timing of one trial, in timesteps from trial start.
// Trials are read-only once an experiment is loaded.
type Trial struct {
	Name      string  `desc:"trial type name"`
	UseCS     bool    `desc:"whether the CS is presented"`
	CSOnset   int     `desc:"first timestep of the CS"`
	CSOffset  int     `desc:"first timestep after the CS"`
	CSPercent float32 `desc:"CS intensity, percent"`
	UseUS     bool    `desc:"whether the US is delivered"`
	USOnset   int     `desc:"timestep of US delivery"`
}

// CSLen is the number of CS timesteps
func (tr *Trial) CSLen() int {
	return tr.CSOffset - tr.CSOnset
}

// Experiment is an ordered list of trials
type Experiment struct {
	Name   string  `desc:"experiment name, from the session file name"`
	Trials []Trial `desc:"trials, run strictly in order"`
}

// NumTrials is the total number of trials
func (ex *Experiment) NumTrials() int {
	return len(ex.Trials)
}

// trialDef is a trial type as written in the session file
type trialDef struct {
	UseCS     bool    `yaml:"use_cs"`
	CSOnset   int     `yaml:"cs_onset"`
	CSLen     int     `yaml:"cs_len"`
	CSPercent float32 `yaml:"cs_percent"`
	UseUS     bool    `yaml:"use_us"`
	USOnset   int     `yaml:"us_onset"`
}

// Count is one entry of a block or a session: a trial type or block name
// repeated Count times
type Count struct {
	Trial string `yaml:"trial,omitempty"`
	Block string `yaml:"block,omitempty"`
	Count int    `yaml:"count"`
}

// Session is a parsed session file. Trial types and blocks keep the order
// of the file.
type Session struct {
	TrialDefs *ordmap.Map[string, Trial]
	Blocks    *ordmap.Map[string, []Count]
	Session   []Count
}

type sessionFile struct {
	Trials  yaml.Node `yaml:"trials"`
	Blocks  yaml.Node `yaml:"blocks"`
	Session []Count   `yaml:"session"`
}

// ParseSession parses session file data
func ParseSession(data []byte) (*Session, error) {
	var sf sessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	ss := &Session{TrialDefs: ordmap.New[string, Trial](), Blocks: ordmap.New[string, []Count]()}
	err := eachMapItem(&sf.Trials, "trials", func(name string, val *yaml.Node) error {
		td := trialDef{CSPercent: 100}
		if err := val.Decode(&td); err != nil {
			return fmt.Errorf("trial %q: %w", name, err)
		}
		if td.CSOnset < 0 || td.CSLen < 0 || td.USOnset < 0 {
			return fmt.Errorf("trial %q: negative timing", name)
		}
		ss.TrialDefs.Add(name, Trial{Name: name, UseCS: td.UseCS, CSOnset: td.CSOnset, CSOffset: td.CSOnset + td.CSLen,
			CSPercent: td.CSPercent, UseUS: td.UseUS, USOnset: td.USOnset})
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = eachMapItem(&sf.Blocks, "blocks", func(name string, val *yaml.Node) error {
		var cnts []Count
		if err := val.Decode(&cnts); err != nil {
			return fmt.Errorf("block %q: %w", name, err)
		}
		for _, c := range cnts {
			if _, has := ss.TrialDefs.ValByKey(c.Trial); !has {
				return fmt.Errorf("block %q: undefined trial %q", name, c.Trial)
			}
		}
		ss.Blocks.Add(name, cnts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, c := range sf.Session {
		if _, has := ss.Blocks.ValByKey(c.Block); !has {
			return nil, fmt.Errorf("session: undefined block %q", c.Block)
		}
	}
	ss.Session = sf.Session
	return ss, nil
}

// eachMapItem calls fun on each key, value of a mapping node in file order,
// rejecting duplicate keys
func eachMapItem(nd *yaml.Node, section string, fun func(key string, val *yaml.Node) error) error {
	if nd.Kind == 0 {
		return nil
	}
	if nd.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected a mapping, line %d", section, nd.Line)
	}
	seen := map[string]bool{}
	for i := 0; i+1 < len(nd.Content); i += 2 {
		key := nd.Content[i].Value
		if seen[key] {
			return fmt.Errorf("%s: duplicate name %q, line %d", section, key, nd.Content[i].Line)
		}
		seen[key] = true
		if err := fun(key, nd.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// Experiment expands the session into its flat trial list
func (ss *Session) Experiment(name string) *Experiment {
	ex := &Experiment{Name: name}
	for _, sc := range ss.Session {
		blk, _ := ss.Blocks.ValByKey(sc.Block)
		for bi := 0; bi < sc.Count; bi++ {
			for _, bc := range blk {
				tr, _ := ss.TrialDefs.ValByKey(bc.Trial)
				for ti := 0; ti < bc.Count; ti++ {
					ex.Trials = append(ex.Trials, tr)
				}
			}
		}
	}
	return ex
}

// OpenExperiment loads a session file and expands it into an experiment
func OpenExperiment(filename string) (*Experiment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	ss, err := ParseSession(data)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(filename)
	return ss.Experiment(strings.TrimSuffix(base, filepath.Ext(base))), nil
}
