// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package report

import (
	"encoding/csv"
	"io"

	"github.com/wrgl/recon/pkg/recon"
)

// WriteDiffCSV writes the diff table as CSV: one line per differing column,
// key columns first.
func WriteDiffCSV(w io.Writer, key []string, res *recon.Result) error {
	writer := csv.NewWriter(w)
	header := append(append([]string{}, key...), "column", "source", "target")
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, d := range res.Diffs {
		keyVals := make([]string, len(d.Key))
		for i, kv := range d.Key {
			keyVals[i] = kv.Value.String()
		}
		for _, cd := range d.Cols {
			rec := append(append([]string{}, keyVals...), cd.Column, cd.Source.String(), cd.Target.String())
			if err := writer.Write(rec); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
