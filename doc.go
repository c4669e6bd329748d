// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cbm is the overall repository for the cerebellar spiking network
simulator: mossy fiber, granule, Golgi, basket, stellate, Purkinje, inferior
olive and deep nucleus populations, organized into one input network and one
or more output zones, run in 1 msec timesteps over CS / US conditioning trials.

This top-level package only holds the CellTypes enum shared by everything
else -- the code is organized into the following sub-packages:

* netparams: the connectivity and activity parameter blocks that are loaded
from a build file and saved at the head of every simulation file.

* cbmstate: the simulation state container -- connectivity and activity
records for the input network and each output zone, with the positional
binary format used for saved states.

* spikes: CS / non-CS spike counting per cell type and the derived mean and
median firing rates.

* control: the trial engine that drives the kernel through pre-CS, CS and
post-CS timesteps, collects rasters and statistics, and saves state.

* simcore, mfinput: CPU reference versions of the integration kernel and the
mossy fiber stimulus generators.

* gui, tui: interactive front ends (goki/gi window, raw terminal).

* cmd/cbmsim: the command-line tool to build, inspect and run simulations.
*/
package cbm
