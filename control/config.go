// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"fmt"
	"os"

	"github.com/emer/cbm/netparams"
	"gopkg.in/yaml.v3"
)

// RunConfig are the run settings: trial timing, trial counts, gains and
// outputs. Timing is in timesteps from the start of each trial.
type RunConfig struct {
	Tag string `yaml:"tag" desc:"extra tag string to identify the run in logs and the run store"`

	TrialTime    int `yaml:"trial_time" def:"5000" desc:"number of timesteps per trial"`
	CSStart      int `yaml:"cs_start" def:"2000" desc:"first timestep of the CS"`
	CSLength     int `yaml:"cs_length" def:"2000" desc:"number of CS timesteps"`
	CSPhasicSize int `yaml:"cs_phasic_size" def:"2000" desc:"number of timesteps at CS onset with phasic MF input. Tonic input follows for the rest of the CS, so with CSPhasicSize >= CSLength there is no tonic period"`
	MsPreCS      int `yaml:"ms_pre_cs" def:"400" desc:"timesteps before CS onset recorded in rasters"`
	MsPostCS     int `yaml:"ms_post_cs" def:"400" desc:"timesteps after CS offset recorded in rasters"`

	HomeoTuningTrials      int `yaml:"homeo_tuning_trials" def:"0" desc:"number of homeostatic tuning trials, run first, with no US and plasticity off"`
	GranuleActDetectTrials int `yaml:"granule_act_detect_trials" def:"0" desc:"number of granule activity detection trials, run after tuning and before training"`
	TrainingTrials         int `yaml:"training_trials" def:"100" desc:"number of training trials"`

	UseUS bool    `yaml:"use_us" def:"true" desc:"deliver the US at CS offset in training and detection trials"`
	USMag float32 `yaml:"us_mag" def:"0.3" desc:"magnitude of the error drive delivered with the US"`

	Gains netparams.Gains `yaml:"gains" view:"inline" desc:"input network gains"`

	FixedCSSecs float64 `yaml:"fixed_cs_secs" def:"0" desc:"if > 0, the CS duration in seconds used for CS firing rates, in place of the actual CS length. Set to 2 to reproduce rates computed with a fixed 2 sec CS"`

	Rasters      bool  `yaml:"rasters" def:"false" desc:"record spike rasters of training trials. Rasters take one byte per cell per recorded timestep: (GR sample + GO + zone 0 PC, NC, IO cells) x (raster window x training trials). With the default populations, window and 100 training trials that is about 2.3 GB"`
	MaxRasterMB  int   `yaml:"max_raster_mb" def:"1024" desc:"InitRun fails if the rasters would take more than this many megabytes. 0 for no limit"`
	GRSampleSize int   `yaml:"gr_sample_size" def:"4096" desc:"number of GRs sampled for the GR raster"`
	GRSampleSeed int64 `yaml:"gr_sample_seed" def:"0" desc:"seed for choosing the GR sample"`
	ReportGO     bool  `yaml:"report_go" def:"true" desc:"print GO rates and conductances at CS offset"`
}

func (rc *RunConfig) Defaults() {
	rc.TrialTime = 5000
	rc.CSStart = 2000
	rc.CSLength = 2000
	rc.CSPhasicSize = 2000
	rc.MsPreCS = 400
	rc.MsPostCS = 400
	rc.HomeoTuningTrials = 0
	rc.GranuleActDetectTrials = 0
	rc.TrainingTrials = 100
	rc.UseUS = true
	rc.USMag = 0.3
	rc.Gains.Defaults()
	rc.FixedCSSecs = 0
	rc.Rasters = false
	rc.MaxRasterMB = 1024
	rc.GRSampleSize = 4096
	rc.GRSampleSeed = 0
	rc.ReportGO = true
}

// Validate checks for settings that cannot be run
func (rc *RunConfig) Validate() error {
	if rc.TrialTime <= 0 {
		return fmt.Errorf("trial time must be positive: %d", rc.TrialTime)
	}
	if rc.CSStart < 0 || rc.CSLength < 0 || rc.CSPhasicSize < 0 {
		return fmt.Errorf("CS timing must not be negative: start %d length %d phasic %d", rc.CSStart, rc.CSLength, rc.CSPhasicSize)
	}
	if rc.HomeoTuningTrials < 0 || rc.GranuleActDetectTrials < 0 || rc.TrainingTrials < 0 {
		return fmt.Errorf("trial counts must not be negative")
	}
	if rc.MaxRasterMB < 0 {
		return fmt.Errorf("max raster size must not be negative: %d", rc.MaxRasterMB)
	}
	return nil
}

// NumTrials is the total number of trials of RunTrials
func (rc *RunConfig) NumTrials() int {
	return rc.HomeoTuningTrials + rc.GranuleActDetectTrials + rc.TrainingTrials
}

// RasterWindow returns the range of timesteps recorded in rasters,
// clipped to the trial
func (rc *RunConfig) RasterWindow() (st, ed int) {
	st = max(rc.CSStart-rc.MsPreCS, 0)
	ed = min(rc.CSStart+rc.CSLength+rc.MsPostCS, rc.TrialTime)
	if ed < st {
		ed = st
	}
	return
}

// OpenRunConfig loads run settings from a YAML file, on top of the defaults
func OpenRunConfig(filename string) (*RunConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	rc := &RunConfig{}
	rc.Defaults()
	if err := yaml.Unmarshal(data, rc); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc, nil
}
