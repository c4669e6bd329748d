// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netparams

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrCorruptParams is returned when a parameter block cannot be fully read
var ErrCorruptParams = errors.New("netparams: corrupt or truncated parameter block")

// Order is the byte order of all saved parameter and state blocks
var Order = binary.LittleEndian

// Write writes the connectivity block in field order
func (cp *ConParams) Write(w io.Writer) error {
	return binary.Write(w, Order, cp)
}

// Read reads the connectivity block written by Write, and checks that the
// state it describes can be allocated
func (cp *ConParams) Read(r io.Reader) error {
	if err := readBlock(r, cp, "connectivity"); err != nil {
		return err
	}
	return cp.Validate()
}

// Write writes the activity block in field order
func (ap *ActParams) Write(w io.Writer) error {
	return binary.Write(w, Order, ap)
}

// Read reads the activity block written by Write
func (ap *ActParams) Read(r io.Reader) error {
	if err := readBlock(r, ap, "activity"); err != nil {
		return err
	}
	if ap.Plasticity < 0 || ap.Plasticity >= PlasticityN {
		return fmt.Errorf("%w: activity plasticity %d", ErrCorruptParams, ap.Plasticity)
	}
	return nil
}

// ConSize is the number of bytes in a saved ConParams block
func ConSize() int { return binary.Size(ConParams{}) }

// ActSize is the number of bytes in a saved ActParams block
func ActSize() int { return binary.Size(ActParams{}) }

func readBlock(r io.Reader, v any, name string) error {
	err := binary.Read(r, Order, v)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s params: %w", ErrCorruptParams, name, err)
	}
	return fmt.Errorf("reading %s params: %w", name, err)
}
