// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skillvault/skillvault-core/storage"
)

// Key is the well-known object key the index is persisted under, at the
// root of every store.
const Key = "skills_index.json"

// ErrCorruptIndex reports that an index document exists but cannot be
// parsed. Unlike a missing index, this is fatal and never treated as
// empty.
var ErrCorruptIndex = errors.New("skills index is corrupt")

// Load reads the index from a store. A store with no index key yields an
// empty index, not an error: a fresh store is a valid empty index.
func Load(ctx context.Context, store storage.ObjectStore) (*Index, error) {
	data, err := store.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading skills index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	return &idx, nil
}

// Save serializes the whole index and overwrites the well-known key.
func Save(ctx context.Context, store storage.ObjectStore, idx *Index) error {
	// An empty index serializes as an empty array, not null, so other
	// consumers of the document always see a list.
	out := *idx
	if out.Skills == nil {
		out.Skills = []Entry{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing skills index: %w", err)
	}
	if err := store.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("saving skills index: %w", err)
	}
	return nil
}
