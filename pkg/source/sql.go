// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wrgl/recon/pkg/dataset"
)

// SQLSource loads the result set of a query. The driver must be registered
// by the importer (tests use sqlite3, the CLI also links pq for Postgres
// DSNs).
type SQLSource struct {
	DriverName string
	DSN        string
	Query      string
}

func (s *SQLSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	db, err := sqlx.Open(s.DriverName, s.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	rows, err := db.QueryxContext(ctx, s.Query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	ds := dataset.NewDataset(columns)
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		row := make([]dataset.Value, len(vals))
		for i, v := range vals {
			row[i], err = sqlValue(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %v", columns[i], err)
			}
		}
		if err := ds.Append(row); err != nil {
			return nil, err
		}
	}
	return ds, rows.Err()
}

func sqlValue(v interface{}) (dataset.Value, error) {
	switch t := v.(type) {
	case nil:
		return dataset.Null, nil
	case bool:
		return dataset.Bool(t), nil
	case int64:
		return dataset.Int(t), nil
	case float64:
		return dataset.Float(t), nil
	case []byte:
		return dataset.Str(string(t)), nil
	case string:
		return dataset.Str(t), nil
	case time.Time:
		return dataset.Date(t), nil
	}
	return dataset.Null, fmt.Errorf("unsupported value type %T", v)
}
