// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"strings"

	"github.com/wrgl/recon/pkg/dataset"
)

// KeyValue is one component of a composite match key.
type KeyValue struct {
	Column string
	Value  dataset.Value
}

// ColDiff records one comparable column whose values differ between source
// and target for a matched key.
type ColDiff struct {
	Column string
	Source dataset.Value
	Target dataset.Value
}

// RowDiff lists the differing columns for a key that is unique on and
// present in both sides. Only differing columns appear.
type RowDiff struct {
	Key  []KeyValue
	Cols []ColDiff
}

// KeyString renders the composite key for display, e.g. "id=2" or
// "id=2, region=eu".
func (d RowDiff) KeyString() string {
	parts := make([]string, len(d.Key))
	for i, kv := range d.Key {
		parts[i] = kv.Column + "=" + kv.Value.String()
	}
	return strings.Join(parts, ", ")
}

// Result is the immutable outcome of a single comparison. Every key
// appearing on a side lands in exactly one of the duplicate bucket, the
// missing set or the matched set for that side.
type Result struct {
	SourceCount int
	TargetCount int
	DiffCount   int

	Diffs []RowDiff

	// Full original rows whose key occurs more than once on that side.
	DuplicatesInSource *dataset.Dataset
	DuplicatesInTarget *dataset.Dataset

	// Full original rows present on one side only.
	MissingInSource *dataset.Dataset
	MissingInTarget *dataset.Dataset
}
