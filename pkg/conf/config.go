// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"fmt"

	"github.com/imdario/mergo"
)

// SourceSpec declares where one side of a check loads from.
type SourceSpec struct {
	// Type is one of "csv", "json" and "sql".
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// Path is the file to load for csv and json sources.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Delimiter overrides the CSV field delimiter. Defaults to comma.
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`

	// Driver is the database/sql driver name for sql sources, e.g.
	// "postgres" or "sqlite3".
	Driver string `yaml:"driver,omitempty" json:"driver,omitempty"`

	// DSN is the driver-specific connection string.
	DSN string `yaml:"dsn,omitempty" json:"dsn,omitempty"`

	// Query produces the table to reconcile.
	Query string `yaml:"query,omitempty" json:"query,omitempty"`
}

// Check declares a single reconciliation between a source and a target.
type Check struct {
	Name   string      `yaml:"name,omitempty" json:"name,omitempty"`
	Source *SourceSpec `yaml:"source,omitempty" json:"source,omitempty"`
	Target *SourceSpec `yaml:"target,omitempty" json:"target,omitempty"`

	// PrimaryKey is the ordered column tuple rows match on.
	PrimaryKey []string `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`

	// IgnoreColumns are excluded from value comparison but not from row
	// matching. Names may be glob patterns.
	IgnoreColumns []string `yaml:"ignoreColumns,omitempty" json:"ignoreColumns,omitempty"`

	// ColumnMapping renames columns after generalization, canonical name
	// to final name.
	ColumnMapping map[string]string `yaml:"columnMapping,omitempty" json:"columnMapping,omitempty"`

	// Rules maps a column to a named value rule: "lower", "upper", "trim",
	// "collapse", "number", or "date" with optional layouts such as
	// "date:02.01.2006".
	Rules map[string]string `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Config is the root of a batch configuration file.
type Config struct {
	// Defaults is merged into every check; values set on a check win.
	Defaults *Check `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	Checks []*Check `yaml:"checks,omitempty" json:"checks,omitempty"`
}

// MergeDefaults folds Defaults into each check.
func (c *Config) MergeDefaults() error {
	if c.Defaults == nil {
		return nil
	}
	for i, chk := range c.Checks {
		if err := mergo.Merge(chk, *c.Defaults); err != nil {
			return fmt.Errorf("check %d: %v", i, err)
		}
	}
	return nil
}
