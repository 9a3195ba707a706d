// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/wrgl/recon/pkg/dataset"
)

// JSONSource loads a JSON file holding an array of flat objects. The column
// schema is the sorted union of all object keys; objects missing a key load
// null for it.
type JSONSource struct {
	Path string
}

func (s *JSONSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var objects []map[string]interface{}
	if err := json.Unmarshal(b, &objects); err != nil {
		return nil, fmt.Errorf("read JSON error: %v", err)
	}
	colSet := map[string]struct{}{}
	for _, obj := range objects {
		for k := range obj {
			colSet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(colSet))
	for k := range colSet {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	ds := dataset.NewDataset(columns)
	for _, obj := range objects {
		row := make([]dataset.Value, len(columns))
		for i, c := range columns {
			v, err := jsonValue(obj[c])
			if err != nil {
				return nil, fmt.Errorf("read JSON error: column %q: %v", c, err)
			}
			row[i] = v
		}
		if err := ds.Append(row); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func jsonValue(v interface{}) (dataset.Value, error) {
	switch t := v.(type) {
	case nil:
		return dataset.Null, nil
	case bool:
		return dataset.Bool(t), nil
	case float64:
		return dataset.Float(t), nil
	case string:
		return dataset.Str(t), nil
	}
	return dataset.Null, fmt.Errorf("unsupported value type %T", v)
}
