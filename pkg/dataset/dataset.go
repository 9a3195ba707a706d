// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package dataset

import (
	"fmt"
)

// Dataset is a fully materialized relation: an ordered column schema over an
// ordered sequence of rows. Every row carries a value (possibly null) for
// every declared column.
type Dataset struct {
	columns []string
	colIdx  map[string]int
	rows    [][]Value
}

func NewDataset(columns []string) *Dataset {
	d := &Dataset{
		columns: make([]string, len(columns)),
		colIdx:  map[string]int{},
	}
	copy(d.columns, columns)
	for i, c := range d.columns {
		d.colIdx[c] = i
	}
	return d
}

func (d *Dataset) Columns() []string {
	return d.columns
}

func (d *Dataset) NumRows() int {
	return len(d.rows)
}

func (d *Dataset) ColIndex(name string) (int, bool) {
	i, ok := d.colIdx[name]
	return i, ok
}

// Append adds a row. The row must have exactly one value per declared column.
func (d *Dataset) Append(row []Value) error {
	if len(row) != len(d.columns) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(row), len(d.columns))
	}
	d.rows = append(d.rows, row)
	return nil
}

func (d *Dataset) Row(i int) []Value {
	return d.rows[i]
}

// Value returns the value at row i for the named column.
func (d *Dataset) Value(i int, column string) (Value, bool) {
	j, ok := d.colIdx[column]
	if !ok {
		return Null, false
	}
	return d.rows[i][j], true
}

// Clone returns a deep copy sharing nothing with the original.
func (d *Dataset) Clone() *Dataset {
	c := NewDataset(d.columns)
	c.rows = make([][]Value, len(d.rows))
	for i, row := range d.rows {
		r := make([]Value, len(row))
		copy(r, row)
		c.rows[i] = r
	}
	return c
}
