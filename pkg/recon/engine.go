// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/wrgl/recon/pkg/dataset"
	"github.com/wrgl/recon/pkg/slice"
)

// ConfigError reports key or ignore columns missing from a dataset. It is
// raised before any row is processed and is never retried.
type ConfigError struct {
	Side    string
	Kind    string
	Columns []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s column(s) %s not found in %s dataset", e.Kind, strings.Join(e.Columns, ", "), e.Side)
}

// Engine compares two canonical datasets keyed by an ordered column tuple.
// Configuration is immutable after construction and Compare holds no state
// across calls, so a single Engine may serve concurrent comparisons.
type Engine struct {
	key    []string
	ignore []glob.Glob
	rawIgn []string
}

// NewEngine configures an engine with a non-empty ordered key and a set of
// column names or glob patterns excluded from value comparison. Ignored
// columns still take part in row matching when named in the key.
func NewEngine(key []string, ignoreCols []string) (*Engine, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("key must not be empty")
	}
	if s := slice.DuplicatedString(key); s != "" {
		return nil, fmt.Errorf("duplicated key column %q", s)
	}
	e := &Engine{
		key:    make([]string, len(key)),
		rawIgn: make([]string, len(ignoreCols)),
	}
	copy(e.key, key)
	copy(e.rawIgn, ignoreCols)
	for _, pat := range ignoreCols {
		g, err := glob.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("bad ignore pattern %q: %v", pat, err)
		}
		e.ignore = append(e.ignore, g)
	}
	return e, nil
}

func (e *Engine) Key() []string {
	return e.key
}

func (e *Engine) IgnoreColumns() []string {
	return e.rawIgn
}

func (e *Engine) ignored(column string) bool {
	for _, g := range e.ignore {
		if g.Match(column) {
			return true
		}
	}
	return false
}

// comparableColumns derives the lexicographically sorted set of columns
// present on both sides, minus ignored columns, minus key columns.
func (e *Engine) comparableColumns(source, target *dataset.Dataset) []string {
	common := slice.SortedIntersect(source.Columns(), target.Columns())
	var res []string
	for _, c := range common {
		if slice.StringSliceContains(e.key, c) || e.ignored(c) {
			continue
		}
		res = append(res, c)
	}
	return res
}

func (e *Engine) validate(side string, ds *dataset.Dataset) error {
	if missing := slice.StringsNotIn(e.key, ds.Columns()); len(missing) > 0 {
		return &ConfigError{Side: side, Kind: "key", Columns: missing}
	}
	// literal ignore names must exist; glob patterns may match nothing
	var literals []string
	for _, pat := range e.rawIgn {
		if !strings.ContainsAny(pat, "*?[{") {
			literals = append(literals, pat)
		}
	}
	if missing := slice.StringsNotIn(literals, ds.Columns()); len(missing) > 0 {
		return &ConfigError{Side: side, Kind: "ignore", Columns: missing}
	}
	return nil
}

// encodeKey renders the composite key of a row into a map key. Kinds are
// tagged so that Str("1") and Int(1) never collide, except that a float
// carrying an exact integer value encodes like the int, mirroring
// Value.Equal's numeric rule. A null component encodes distinctly and
// matches only another null.
func encodeKey(row []dataset.Value, indices []int) string {
	parts := make([]string, len(indices))
	for i, j := range indices {
		v := row[j]
		switch v.Kind() {
		case dataset.KindNull:
			parts[i] = "\x00"
		case dataset.KindInt:
			parts[i] = "n" + strconv.FormatInt(v.Int(), 10)
		case dataset.KindFloat:
			f := v.Float()
			if f == float64(int64(f)) {
				parts[i] = "n" + strconv.FormatInt(int64(f), 10)
			} else {
				parts[i] = "n" + strconv.FormatFloat(f, 'f', -1, 64)
			}
		case dataset.KindBool:
			parts[i] = "b" + strconv.FormatBool(v.Bool())
		case dataset.KindDate:
			parts[i] = "d" + v.String()
		default:
			parts[i] = "s" + v.Str()
		}
	}
	return strings.Join(parts, "\x1f")
}

// keyIndex groups row indices by composite key, remembering first-seen key
// order so that iteration stays deterministic.
type keyIndex struct {
	order []string
	rows  map[string][]int
}

func indexByKey(ds *dataset.Dataset, indices []int) *keyIndex {
	idx := &keyIndex{rows: map[string][]int{}}
	for i := 0; i < ds.NumRows(); i++ {
		k := encodeKey(ds.Row(i), indices)
		if _, ok := idx.rows[k]; !ok {
			idx.order = append(idx.order, k)
		}
		idx.rows[k] = append(idx.rows[k], i)
	}
	return idx
}

// Compare reconciles source against target and returns a fresh Result. It
// is deterministic and side-effect free: identical inputs always produce an
// identical result.
func (e *Engine) Compare(source, target *dataset.Dataset) (*Result, error) {
	if err := e.validate("source", source); err != nil {
		return nil, err
	}
	if err := e.validate("target", target); err != nil {
		return nil, err
	}
	srcKeyIdx, err := slice.KeyIndices(source.Columns(), e.key)
	if err != nil {
		return nil, err
	}
	tgtKeyIdx, err := slice.KeyIndices(target.Columns(), e.key)
	if err != nil {
		return nil, err
	}
	compCols := e.comparableColumns(source, target)

	srcIdx := indexByKey(source, srcKeyIdx)
	tgtIdx := indexByKey(target, tgtKeyIdx)

	res := &Result{
		SourceCount:        source.NumRows(),
		TargetCount:        target.NumRows(),
		DuplicatesInSource: dataset.NewDataset(source.Columns()),
		DuplicatesInTarget: dataset.NewDataset(target.Columns()),
		MissingInSource:    dataset.NewDataset(target.Columns()),
		MissingInTarget:    dataset.NewDataset(source.Columns()),
	}

	// Extract duplicates: every row of a duplicated key moves to the bucket
	// and drops out of matching.
	srcUnique := extractDuplicates(source, srcIdx, res.DuplicatesInSource)
	tgtUnique := extractDuplicates(target, tgtIdx, res.DuplicatesInTarget)

	// Missing rows, computed on the deduplicated key sets.
	for _, k := range srcIdx.order {
		i, ok := srcUnique[k]
		if !ok {
			continue
		}
		if _, ok := tgtUnique[k]; !ok {
			appendRow(res.MissingInTarget, source.Row(i))
		}
	}
	for _, k := range tgtIdx.order {
		i, ok := tgtUnique[k]
		if !ok {
			continue
		}
		if _, ok := srcUnique[k]; !ok {
			appendRow(res.MissingInSource, target.Row(i))
		}
	}

	// Cell-level diff over keys unique on and present in both sides.
	for _, k := range srcIdx.order {
		si, ok := srcUnique[k]
		if !ok {
			continue
		}
		ti, ok := tgtUnique[k]
		if !ok {
			continue
		}
		var cols []ColDiff
		for _, c := range compCols {
			sv, _ := source.Value(si, c)
			tv, _ := target.Value(ti, c)
			if !sv.Equal(tv) {
				cols = append(cols, ColDiff{Column: c, Source: sv, Target: tv})
			}
		}
		if len(cols) > 0 {
			res.DiffCount++
			res.Diffs = append(res.Diffs, RowDiff{
				Key:  keyValues(source.Row(si), srcKeyIdx, e.key),
				Cols: cols,
			})
		}
	}
	return res, nil
}

// extractDuplicates moves every row of a duplicated key into bucket and
// returns the remaining unique keys mapped to their single row index.
func extractDuplicates(ds *dataset.Dataset, idx *keyIndex, bucket *dataset.Dataset) map[string]int {
	unique := make(map[string]int, len(idx.rows))
	for _, k := range idx.order {
		rows := idx.rows[k]
		if len(rows) > 1 {
			for _, i := range rows {
				appendRow(bucket, ds.Row(i))
			}
			continue
		}
		unique[k] = rows[0]
	}
	return unique
}

func keyValues(row []dataset.Value, indices []int, key []string) []KeyValue {
	kvs := make([]KeyValue, len(indices))
	for i, j := range indices {
		kvs[i] = KeyValue{Column: key[i], Value: row[j]}
	}
	return kvs
}

func appendRow(ds *dataset.Dataset, row []dataset.Value) {
	r := make([]dataset.Value, len(row))
	copy(r, row)
	// arity always matches: the bucket shares the originating dataset's schema
	_ = ds.Append(r)
}
