// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/recon/pkg/dataset"
)

// BuildDataset assembles a dataset from Go literals: int/int64 become ints,
// float64 floats, string strings, bool bools and nil null.
func BuildDataset(t *testing.T, columns []string, rows ...[]interface{}) *dataset.Dataset {
	t.Helper()
	ds := dataset.NewDataset(columns)
	for _, row := range rows {
		vals := make([]dataset.Value, len(row))
		for i, v := range row {
			switch x := v.(type) {
			case nil:
				vals[i] = dataset.Null
			case int:
				vals[i] = dataset.Int(int64(x))
			case int64:
				vals[i] = dataset.Int(x)
			case float64:
				vals[i] = dataset.Float(x)
			case string:
				vals[i] = dataset.Str(x)
			case bool:
				vals[i] = dataset.Bool(x)
			case dataset.Value:
				vals[i] = x
			default:
				t.Fatalf("unsupported literal type %T", v)
			}
		}
		require.NoError(t, ds.Append(vals))
	}
	return ds
}

// RandomPersonDataset builds n rows of fake people keyed by a sequential id.
func RandomPersonDataset(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	ds := dataset.NewDataset([]string{"id", "name", "email", "age"})
	for i := 0; i < n; i++ {
		require.NoError(t, ds.Append([]dataset.Value{
			dataset.Int(int64(i + 1)),
			dataset.Str(gofakeit.Name()),
			dataset.Str(gofakeit.Email()),
			dataset.Int(int64(gofakeit.Number(18, 90))),
		}))
	}
	return ds
}
