// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/wrgl/recon/pkg/dataset"
)

// CSVSource loads a CSV file. The first record is the column schema. Every
// cell loads as a string value except empty cells, which load as null;
// typing beyond that is the normalizer's job.
type CSVSource struct {
	Path      string
	Delimiter rune
}

func (s *CSVSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, s.Delimiter)
}

// ReadCSV reads an entire CSV stream into a dataset.
func ReadCSV(r io.Reader, delimiter rune) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	columns, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV error: %v", err)
	}
	ds := dataset.NewDataset(columns)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV error: %v", err)
		}
		row := make([]dataset.Value, len(rec))
		for i, s := range rec {
			if s == "" {
				row[i] = dataset.Null
			} else {
				row[i] = dataset.Str(s)
			}
		}
		if err := ds.Append(row); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
