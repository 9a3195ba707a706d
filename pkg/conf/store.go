// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Store reads and writes a config file on disk.
type Store struct {
	fp string
}

func NewStore(fp string) *Store {
	return &Store{fp: fp}
}

// Open reads, parses and default-merges the config.
func (s *Store) Open() (*Config, error) {
	b, err := os.ReadFile(s.fp)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if err := c.MergeDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) Save(c *Config) error {
	f, err := os.OpenFile(s.fp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewEncoder(f).Encode(c)
}
