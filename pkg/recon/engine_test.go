// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/recon/pkg/dataset"
)

func buildDataset(t *testing.T, columns []string, rows ...[]dataset.Value) *dataset.Dataset {
	t.Helper()
	ds := dataset.NewDataset(columns)
	for _, row := range rows {
		require.NoError(t, ds.Append(row))
	}
	return ds
}

func personRow(id int64, name string, age int64) []dataset.Value {
	return []dataset.Value{dataset.Int(id), dataset.Str(name), dataset.Int(age)}
}

func compare(t *testing.T, key, ignore []string, source, target *dataset.Dataset) *Result {
	t.Helper()
	e, err := NewEngine(key, ignore)
	require.NoError(t, err)
	res, err := e.Compare(source, target)
	require.NoError(t, err)
	return res
}

func TestCompareCellDiff(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 30),
	)
	target := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 31),
	)
	res := compare(t, []string{"id"}, nil, source, target)
	assert.Equal(t, 2, res.SourceCount)
	assert.Equal(t, 2, res.TargetCount)
	assert.Equal(t, 1, res.DiffCount)
	require.Len(t, res.Diffs, 1)
	d := res.Diffs[0]
	assert.Equal(t, []KeyValue{{Column: "id", Value: dataset.Int(2)}}, d.Key)
	assert.Equal(t, []ColDiff{
		{Column: "age", Source: dataset.Int(30), Target: dataset.Int(31)},
	}, d.Cols)
	assert.Equal(t, 0, res.MissingInSource.NumRows())
	assert.Equal(t, 0, res.MissingInTarget.NumRows())
	assert.Equal(t, 0, res.DuplicatesInSource.NumRows())
	assert.Equal(t, 0, res.DuplicatesInTarget.NumRows())
}

func TestCompareDuplicates(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(1, "Alicia", 26),
		personRow(2, "Bob", 30),
	)
	target := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 30),
	)
	res := compare(t, []string{"id"}, nil, source, target)
	// all rows of the duplicated key land in the bucket, not just the extras
	require.Equal(t, 2, res.DuplicatesInSource.NumRows())
	assert.Equal(t, personRow(1, "Alice", 25), res.DuplicatesInSource.Row(0))
	assert.Equal(t, personRow(1, "Alicia", 26), res.DuplicatesInSource.Row(1))
	assert.Equal(t, 0, res.DuplicatesInTarget.NumRows())
	// id=1 is excluded from matching entirely; target's id=1 counts missing
	require.Equal(t, 1, res.MissingInSource.NumRows())
	assert.Equal(t, personRow(1, "Alice", 25), res.MissingInSource.Row(0))
	assert.Equal(t, 0, res.MissingInTarget.NumRows())
	// id=2 matches cleanly
	assert.Equal(t, 0, res.DiffCount)
}

func TestCompareMissingKeyColumn(t *testing.T) {
	source := buildDataset(t, []string{"id"}, []dataset.Value{dataset.Int(1)})
	target := buildDataset(t, []string{"id"}, []dataset.Value{dataset.Int(1)})
	e, err := NewEngine([]string{"ghost_col"}, nil)
	require.NoError(t, err)
	_, err = e.Compare(source, target)
	require.Error(t, err)
	cfgErr := &ConfigError{}
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "source", cfgErr.Side)
	assert.Equal(t, "key", cfgErr.Kind)
	assert.Equal(t, []string{"ghost_col"}, cfgErr.Columns)
}

func TestCompareMissingIgnoreColumn(t *testing.T) {
	source := buildDataset(t, []string{"id"}, []dataset.Value{dataset.Int(1)})
	target := buildDataset(t, []string{"id"}, []dataset.Value{dataset.Int(1)})
	// a literal ignore name must exist, a glob pattern may match nothing
	e, err := NewEngine([]string{"id"}, []string{"ghost_col"})
	require.NoError(t, err)
	_, err = e.Compare(source, target)
	require.Error(t, err)
	cfgErr := &ConfigError{}
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ignore", cfgErr.Kind)
	assert.Equal(t, []string{"ghost_col"}, cfgErr.Columns)

	e, err = NewEngine([]string{"id"}, []string{"ghost_*"})
	require.NoError(t, err)
	_, err = e.Compare(source, target)
	assert.NoError(t, err)
}

func TestCompareIgnoreColumns(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "updated_at"},
		[]dataset.Value{dataset.Int(1), dataset.Str("Alice"), dataset.Str("2021-01-01")},
	)
	target := buildDataset(t, []string{"id", "name", "updated_at"},
		[]dataset.Value{dataset.Int(1), dataset.Str("Alice"), dataset.Str("2022-09-09")},
	)
	res := compare(t, []string{"id"}, []string{"updated_at"}, source, target)
	assert.Equal(t, 0, res.DiffCount)
	assert.Empty(t, res.Diffs)
}

func TestCompareIgnoreGlob(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "sys_created", "sys_updated"},
		[]dataset.Value{dataset.Int(1), dataset.Str("a"), dataset.Str("x"), dataset.Str("y")},
	)
	target := buildDataset(t, []string{"id", "name", "sys_created", "sys_updated"},
		[]dataset.Value{dataset.Int(1), dataset.Str("b"), dataset.Str("p"), dataset.Str("q")},
	)
	res := compare(t, []string{"id"}, []string{"sys_*"}, source, target)
	require.Len(t, res.Diffs, 1)
	assert.Equal(t, []ColDiff{
		{Column: "name", Source: dataset.Str("a"), Target: dataset.Str("b")},
	}, res.Diffs[0].Cols)
}

func TestCompareEmptySource(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "age"})
	target := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 30),
		personRow(3, "Carol", 35),
	)
	res := compare(t, []string{"id"}, nil, source, target)
	assert.Equal(t, 0, res.SourceCount)
	assert.Equal(t, 3, res.TargetCount)
	assert.Equal(t, 0, res.DiffCount)
	assert.Equal(t, 3, res.MissingInSource.NumRows())
	assert.Equal(t, 0, res.MissingInTarget.NumRows())
}

func TestCompareNullEquality(t *testing.T) {
	source := buildDataset(t, []string{"id", "email"},
		[]dataset.Value{dataset.Int(1), dataset.Null},
		[]dataset.Value{dataset.Int(2), dataset.Null},
	)
	target := buildDataset(t, []string{"id", "email"},
		[]dataset.Value{dataset.Int(1), dataset.Null},
		[]dataset.Value{dataset.Int(2), dataset.Str("bob@x.com")},
	)
	res := compare(t, []string{"id"}, nil, source, target)
	assert.Equal(t, 1, res.DiffCount)
	require.Len(t, res.Diffs, 1)
	assert.Equal(t, dataset.Int(2), res.Diffs[0].Key[0].Value)
}

func TestCompareNullKeyComponent(t *testing.T) {
	// a null key component matches another null, like any other value
	source := buildDataset(t, []string{"id", "name"},
		[]dataset.Value{dataset.Null, dataset.Str("anon")},
	)
	target := buildDataset(t, []string{"id", "name"},
		[]dataset.Value{dataset.Null, dataset.Str("anonymous")},
	)
	res := compare(t, []string{"id"}, nil, source, target)
	assert.Equal(t, 1, res.DiffCount)
	assert.Equal(t, 0, res.MissingInSource.NumRows())
	assert.Equal(t, 0, res.MissingInTarget.NumRows())
}

func TestCompareCompositeKey(t *testing.T) {
	source := buildDataset(t, []string{"region", "id", "qty"},
		[]dataset.Value{dataset.Str("eu"), dataset.Int(1), dataset.Int(10)},
		[]dataset.Value{dataset.Str("us"), dataset.Int(1), dataset.Int(20)},
	)
	target := buildDataset(t, []string{"region", "id", "qty"},
		[]dataset.Value{dataset.Str("eu"), dataset.Int(1), dataset.Int(10)},
		[]dataset.Value{dataset.Str("us"), dataset.Int(1), dataset.Int(25)},
	)
	res := compare(t, []string{"region", "id"}, nil, source, target)
	assert.Equal(t, 1, res.DiffCount)
	require.Len(t, res.Diffs, 1)
	assert.Equal(t, "region=us, id=1", res.Diffs[0].KeyString())
}

func TestCompareNoTypeCoercion(t *testing.T) {
	source := buildDataset(t, []string{"id", "v"},
		[]dataset.Value{dataset.Int(1), dataset.Str("1")},
		[]dataset.Value{dataset.Int(2), dataset.Int(10)},
	)
	target := buildDataset(t, []string{"id", "v"},
		[]dataset.Value{dataset.Int(1), dataset.Int(1)},
		[]dataset.Value{dataset.Int(2), dataset.Float(10)},
	)
	res := compare(t, []string{"id"}, nil, source, target)
	// string "1" != int 1, but int 10 == float 10.0
	require.Equal(t, 1, res.DiffCount)
	assert.Equal(t, dataset.Int(1), res.Diffs[0].Key[0].Value)
}

func TestCompareColumnOrderIndependent(t *testing.T) {
	source := buildDataset(t, []string{"id", "b", "a"},
		[]dataset.Value{dataset.Int(1), dataset.Str("x"), dataset.Str("y")},
	)
	target := buildDataset(t, []string{"a", "id", "b"},
		[]dataset.Value{dataset.Str("q"), dataset.Int(1), dataset.Str("p")},
	)
	res := compare(t, []string{"id"}, nil, source, target)
	require.Len(t, res.Diffs, 1)
	// diff records list columns lexicographically regardless of input order
	assert.Equal(t, []ColDiff{
		{Column: "a", Source: dataset.Str("y"), Target: dataset.Str("q")},
		{Column: "b", Source: dataset.Str("x"), Target: dataset.Str("p")},
	}, res.Diffs[0].Cols)
}

func TestCompareNoComparableColumns(t *testing.T) {
	source := buildDataset(t, []string{"id", "only_src"},
		[]dataset.Value{dataset.Int(1), dataset.Str("x")},
	)
	target := buildDataset(t, []string{"id", "only_tgt"},
		[]dataset.Value{dataset.Int(1), dataset.Str("y")},
	)
	res := compare(t, []string{"id"}, nil, source, target)
	assert.Equal(t, 0, res.DiffCount)
}

func TestCompareSymmetry(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 30),
		personRow(3, "Carol", 35),
		personRow(4, "Dan", 40),
		personRow(4, "Daniel", 41),
	)
	target := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 26),
		personRow(2, "Bob", 30),
		personRow(5, "Eve", 50),
	)
	e, err := NewEngine([]string{"id"}, nil)
	require.NoError(t, err)
	fwd, err := e.Compare(source, target)
	require.NoError(t, err)
	rev, err := e.Compare(target, source)
	require.NoError(t, err)

	assert.Equal(t, fwd.DiffCount, rev.DiffCount)
	assert.Equal(t, fwd.SourceCount, rev.TargetCount)
	assert.Equal(t, fwd.TargetCount, rev.SourceCount)
	assert.Equal(t, fwd.MissingInTarget, rev.MissingInSource)
	assert.Equal(t, fwd.MissingInSource, rev.MissingInTarget)
	assert.Equal(t, fwd.DuplicatesInSource, rev.DuplicatesInTarget)
	assert.Equal(t, fwd.DuplicatesInTarget, rev.DuplicatesInSource)
}

// every key on each side must land in exactly one of duplicate, missing or
// matched for that side
func TestComparePartition(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 30),
		personRow(2, "Robert", 31),
		personRow(3, "Carol", 35),
		personRow(4, "Dan", 40),
	)
	target := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alice", 27),
		personRow(3, "Carol", 35),
		personRow(3, "Caroline", 36),
		personRow(5, "Eve", 50),
	)
	res := compare(t, []string{"id"}, nil, source, target)

	accounted := res.DuplicatesInSource.NumRows() +
		res.DuplicatesInTarget.NumRows() +
		res.MissingInSource.NumRows() +
		res.MissingInTarget.NumRows()
	// source: id=2 twice (dup), id=3 missing in target (target's 3 is dup),
	// id=4 missing in target; target: id=3 twice (dup), id=5 missing in
	// source; matched: id=1 on both sides
	assert.Equal(t, 2, res.DuplicatesInSource.NumRows())
	assert.Equal(t, 2, res.DuplicatesInTarget.NumRows())
	assert.Equal(t, 2, res.MissingInTarget.NumRows())
	assert.Equal(t, 1, res.MissingInSource.NumRows())
	assert.Equal(t, 1, res.DiffCount)
	matched := 2 // id=1 on each side
	assert.Equal(t, res.SourceCount+res.TargetCount, accounted+matched)
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.Error(t, err)
	_, err = NewEngine([]string{"id", "id"}, nil)
	assert.Error(t, err)
	_, err = NewEngine([]string{"id"}, []string{"[bad"})
	assert.Error(t, err)
}

func TestCompareDeterministic(t *testing.T) {
	source := buildDataset(t, []string{"id", "name", "age"},
		personRow(3, "Carol", 35),
		personRow(1, "Alice", 25),
		personRow(2, "Bob", 30),
	)
	target := buildDataset(t, []string{"id", "name", "age"},
		personRow(1, "Alicia", 25),
		personRow(2, "Bob", 31),
		personRow(3, "Carol", 36),
	)
	e, err := NewEngine([]string{"id"}, nil)
	require.NoError(t, err)
	first, err := e.Compare(source, target)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Compare(source, target)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
