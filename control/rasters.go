// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	"github.com/emer/cbm"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/ints"
)

// RasterTypes are the cell types recorded in rasters. GR is recorded for
// a sample of cells, the others for all cells (zone 0 for zone types).
var RasterTypes = []cbm.CellTypes{cbm.GR, cbm.GO, cbm.PC, cbm.NC, cbm.IO}

// GRSample returns size distinct GR indexes drawn from the seed, or all of
// them (in random order) if size >= numGR
func GRSample(numGR, size int, seed int64) []int {
	size = ints.MaxInt(ints.MinInt(size, numGR), 0)
	idx := make([]int, numGR)
	for i := range idx {
		idx[i] = i
	}
	erand.PermuteInts(idx, erand.NewSysRand(seed))
	return idx[:size]
}

// RasterCols is the number of raster columns: the raster window of every
// training trial, back to back
func (c *Control) RasterCols() int {
	st, ed := c.Run.RasterWindow()
	return (ed - st) * c.Run.TrainingTrials
}

// RasterBytes is the memory the rasters take when enabled: one byte per
// recorded cell per column
func (c *Control) RasterBytes() int64 {
	rows := 0
	for _, ct := range RasterTypes {
		n := c.Con.NumCells(ct)
		if ct == cbm.GR {
			n = ints.MaxInt(ints.MinInt(c.Run.GRSampleSize, n), 0)
		}
		rows += n
	}
	return int64(rows) * int64(c.RasterCols())
}

// ConfigRasters allocates zeroed rasters, if enabled. It returns an error,
// allocating nothing, if they would exceed Run.MaxRasterMB.
func (c *Control) ConfigRasters() error {
	for i := range c.Rasters {
		c.Rasters[i] = nil
	}
	c.GRSample = nil
	cols := c.RasterCols()
	if !c.Run.Rasters || cols == 0 {
		return nil
	}
	if sz := c.RasterBytes(); c.Run.MaxRasterMB > 0 && sz > int64(c.Run.MaxRasterMB)*int64(datasize.MB) {
		return fmt.Errorf("control: rasters need %v, over the %d MB limit: shorten the window or the training, or raise max_raster_mb",
			datasize.ByteSize(sz).HumanReadable(), c.Run.MaxRasterMB)
	}
	for _, ct := range RasterTypes {
		n := c.Con.NumCells(ct)
		if ct == cbm.GR {
			c.GRSample = GRSample(n, c.Run.GRSampleSize, c.Run.GRSampleSeed)
			n = len(c.GRSample)
		}
		c.Rasters[ct] = etensor.NewUint8([]int{n, cols}, nil, []string{"Cell", "Time"})
	}
	return nil
}

// recordRasters copies the current spikes into raster column col
func (c *Control) recordRasters(col int) {
	for _, ct := range RasterTypes {
		rs := c.Rasters[ct]
		if rs == nil {
			continue
		}
		ncol := rs.Dim(1)
		if col >= ncol {
			continue
		}
		spk := c.spk[ct]
		if ct == cbm.GR {
			for r, gi := range c.GRSample {
				rs.Values[r*ncol+col] = spk[gi]
			}
			continue
		}
		nr := ints.MinInt(rs.Dim(0), len(spk))
		for r := 0; r < nr; r++ {
			rs.Values[r*ncol+col] = spk[r]
		}
	}
}

// RasterFileName is the file name of the raster of a cell type
func RasterFileName(prefix string, ct cbm.CellTypes) string {
	kind := "all"
	if ct == cbm.GR {
		kind = "sample"
	}
	return prefix + kind + ct.String() + "Raster.bin"
}

// SaveRasters writes each raster to its own file in dir, as raw
// [cells][timesteps] bytes with no header
func (c *Control) SaveRasters(dir, prefix string) error {
	for _, ct := range RasterTypes {
		rs := c.Rasters[ct]
		if rs == nil {
			continue
		}
		fn := filepath.Join(dir, RasterFileName(prefix, ct))
		if err := os.WriteFile(fn, rs.Values, 0644); err != nil {
			return fmt.Errorf("control: saving %s raster: %w", ct, err)
		}
	}
	return nil
}
