// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteCSVFile writes records to a temp CSV file and returns its path. The
// first record is the header.
func WriteCSVFile(t *testing.T, records [][]string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "data.csv")
	f, err := os.Create(fp)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	w.Flush()
	require.NoError(t, w.Error())
	return fp
}
