// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"strconv"

	"github.com/emer/cbm"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// rateCols are the suffixes of the per-cell-type rate columns
var rateCols = []string{"CSMean", "CSMedian", "NonCSMean", "NonCSMedian"}

// ConfigTrialLog configures the trial log with no rows. The table is
// reused if it exists, so views of it stay valid.
func (c *Control) ConfigTrialLog() {
	if c.TrialLog == nil {
		c.TrialLog = &etable.Table{}
	}
	dt := c.TrialLog
	dt.SetMetaData("name", "TrialLog")
	dt.SetMetaData("desc", "Firing rates of each trial")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Trial", etensor.INT64, nil, nil},
		{"Name", etensor.STRING, nil, nil},
		{"Type", etensor.STRING, nil, nil},
		{"Secs", etensor.FLOAT64, nil, nil},
	}
	for ct := cbm.CellTypes(0); ct < cbm.CellTypesN; ct++ {
		for _, rc := range rateCols {
			sch = append(sch, etable.Column{ct.String() + "_" + rc, etensor.FLOAT64, nil, nil})
		}
	}
	sch = append(sch, etable.Column{"GOMeanRate", etensor.FLOAT64, nil, nil})
	sch = append(sch, etable.Column{"GRMFRatio", etensor.FLOAT64, nil, nil})
	dt.SetFromSchema(sch, 0)
}

// LogTrial adds the rates of the trial just run to the trial log, and
// writes the row to LogWriter if set
func (c *Control) LogTrial(trial int, name string, typ TrialTypes, secs float64) {
	dt := c.TrialLog
	row := dt.Rows
	dt.SetNumRows(row + 1)

	dt.SetCellFloat("Trial", row, float64(trial))
	dt.SetCellString("Name", row, name)
	dt.SetCellString("Type", row, typ.String())
	dt.SetCellFloat("Secs", row, secs)
	for ct := cbm.CellTypes(0); ct < cbm.CellTypesN; ct++ {
		fr := &c.Rates[ct]
		vals := []float64{fr.CSMean, fr.CSMedian, fr.NonCSMean, fr.NonCSMedian}
		for i, rc := range rateCols {
			dt.SetCellFloat(ct.String()+"_"+rc, row, vals[i])
		}
	}
	dt.SetCellFloat("GOMeanRate", row, c.GOStats.MeanRate)
	dt.SetCellFloat("GRMFRatio", row, c.GOStats.GRMFRatio)

	if c.LogWriter != nil {
		if row == 0 {
			dt.WriteCSVHeaders(c.LogWriter, etable.Tab)
		}
		dt.WriteCSVRow(c.LogWriter, row, etable.Tab)
	}
}
