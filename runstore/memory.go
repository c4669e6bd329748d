// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstore

import (
	"context"
	"slices"
	"sync"
)

type runKey struct {
	tag   string
	trial int
}

// Memory is a Store that keeps records in memory
type Memory struct {
	mu   sync.RWMutex
	recs map[runKey]Record
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[runKey]Record)}
}

func (ms *Memory) Add(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.recs[runKey{rec.Tag, rec.Trial}] = *rec
	return nil
}

func (ms *Memory) Trials(ctx context.Context, tag string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	var recs []Record
	for k, r := range ms.recs {
		if k.tag == tag {
			recs = append(recs, r)
		}
	}
	slices.SortFunc(recs, func(a, b Record) int { return a.Trial - b.Trial })
	return recs, nil
}

func (ms *Memory) Close() error { return nil }
