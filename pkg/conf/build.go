// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wrgl/recon/pkg/check"
	"github.com/wrgl/recon/pkg/normalize"
	"github.com/wrgl/recon/pkg/source"
)

// ParseRule resolves a named value rule from a config file.
func ParseRule(spec string) (normalize.Rule, error) {
	name, args, _ := cutRule(spec)
	switch name {
	case "lower":
		return normalize.Lowercase(), nil
	case "upper":
		return normalize.Uppercase(), nil
	case "trim":
		return normalize.TrimSpace(), nil
	case "collapse":
		return normalize.CollapseWhitespace(), nil
	case "number":
		return normalize.ParseNumber(), nil
	case "date":
		return normalize.CanonicalDate(args...), nil
	}
	return nil, fmt.Errorf("unknown rule %q", name)
}

func cutRule(spec string) (name string, args []string, hasArgs bool) {
	if i := strings.Index(spec, ":"); i >= 0 {
		name = spec[:i]
		for _, a := range strings.Split(spec[i+1:], ",") {
			if a = strings.TrimSpace(a); a != "" {
				args = append(args, a)
			}
		}
		return name, args, true
	}
	return spec, nil, false
}

// BuildSource turns a source spec into a loadable source.
func BuildSource(spec *SourceSpec) (source.Source, error) {
	if spec == nil {
		return nil, fmt.Errorf("source is not declared")
	}
	switch spec.Type {
	case "csv":
		if spec.Path == "" {
			return nil, fmt.Errorf("csv source needs a path")
		}
		var delim rune
		if spec.Delimiter != "" {
			if utf8.RuneCountInString(spec.Delimiter) != 1 {
				return nil, fmt.Errorf("delimiter must be a single character")
			}
			delim, _ = utf8.DecodeRuneInString(spec.Delimiter)
		}
		return &source.CSVSource{Path: spec.Path, Delimiter: delim}, nil
	case "json":
		if spec.Path == "" {
			return nil, fmt.Errorf("json source needs a path")
		}
		return &source.JSONSource{Path: spec.Path}, nil
	case "sql":
		if spec.Driver == "" || spec.DSN == "" || spec.Query == "" {
			return nil, fmt.Errorf("sql source needs driver, dsn and query")
		}
		return &source.SQLSource{DriverName: spec.Driver, DSN: spec.DSN, Query: spec.Query}, nil
	}
	return nil, fmt.Errorf("unknown source type %q", spec.Type)
}

// BuildCheck turns a declared check into a runnable one.
func BuildCheck(c *Check) (*check.Check, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("check needs a name")
	}
	if len(c.PrimaryKey) == 0 {
		return nil, fmt.Errorf("check %q: primaryKey must not be empty", c.Name)
	}
	src, err := BuildSource(c.Source)
	if err != nil {
		return nil, fmt.Errorf("check %q: source: %v", c.Name, err)
	}
	tgt, err := BuildSource(c.Target)
	if err != nil {
		return nil, fmt.Errorf("check %q: target: %v", c.Name, err)
	}
	opts := []normalize.Option{}
	if len(c.ColumnMapping) > 0 {
		opts = append(opts, normalize.WithColMapping(c.ColumnMapping))
	}
	for col, spec := range c.Rules {
		rule, err := ParseRule(spec)
		if err != nil {
			return nil, fmt.Errorf("check %q: column %q: %v", c.Name, col, err)
		}
		opts = append(opts, normalize.WithRule(col, rule))
	}
	return &check.Check{
		Name:       c.Name,
		Source:     src,
		Target:     tgt,
		Key:        c.PrimaryKey,
		IgnoreCols: c.IgnoreColumns,
		Normalizer: normalize.New(opts...),
	}, nil
}
