// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package normalize

import (
	"fmt"

	"github.com/wrgl/recon/pkg/dataset"
)

// Rule transforms a single cell value. Rules must be pure and either handle
// null input or pass it through unchanged.
type Rule func(dataset.Value) (dataset.Value, error)

// RuleError reports a custom rule failing on a value it cannot handle. No
// partial dataset is returned alongside it.
type RuleError struct {
	Column string
	Row    int
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("normalize column %q row %d: %v", e.Column, e.Row, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Normalizer maps a raw dataset to canonical form before comparison. Each
// instance owns its own configuration; there is no shared state between
// instances.
type Normalizer struct {
	generalize func(string) string
	mapping    map[string]string
	rules      map[string]Rule
}

type Option func(*Normalizer)

// WithColGeneralizer replaces the default column name generalizer. The
// function must be pure. Callers are responsible for avoiding name
// collisions after generalization.
func WithColGeneralizer(fn func(string) string) Option {
	return func(n *Normalizer) {
		n.generalize = fn
	}
}

// WithColMapping renames columns after generalization, canonical name to
// final name.
func WithColMapping(mapping map[string]string) Option {
	return func(n *Normalizer) {
		for k, v := range mapping {
			n.mapping[k] = v
		}
	}
}

// WithRule applies rule element-wise to the named column. The name refers to
// the column after generalization and mapping.
func WithRule(column string, rule Rule) Option {
	return func(n *Normalizer) {
		n.rules[column] = rule
	}
}

// WithRules registers one rule per column.
func WithRules(rules map[string]Rule) Option {
	return func(n *Normalizer) {
		for k, v := range rules {
			n.rules[k] = v
		}
	}
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		generalize: GeneralizeColumn,
		mapping:    map[string]string{},
		rules:      map[string]Rule{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the canonical form of ds. The input is never mutated.
func (n *Normalizer) Normalize(ds *dataset.Dataset) (*dataset.Dataset, error) {
	columns := make([]string, len(ds.Columns()))
	for i, c := range ds.Columns() {
		name := c
		if n.generalize != nil {
			name = n.generalize(name)
		}
		if final, ok := n.mapping[name]; ok {
			name = final
		}
		columns[i] = name
	}
	out := dataset.NewDataset(columns)
	ruleIdx := make(map[int]Rule)
	for col, rule := range n.rules {
		if i, ok := out.ColIndex(col); ok {
			ruleIdx[i] = rule
		}
	}
	for i := 0; i < ds.NumRows(); i++ {
		src := ds.Row(i)
		row := make([]dataset.Value, len(src))
		copy(row, src)
		for j, rule := range ruleIdx {
			v, err := rule(row[j])
			if err != nil {
				return nil, &RuleError{Column: columns[j], Row: i, Err: err}
			}
			row[j] = v
		}
		if err := out.Append(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}
