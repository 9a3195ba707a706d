// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package check

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/wrgl/recon/pkg/normalize"
	"github.com/wrgl/recon/pkg/recon"
	"github.com/wrgl/recon/pkg/source"
)

// Check reconciles one source against one target under a shared normalizer.
type Check struct {
	Name       string
	Source     source.Source
	Target     source.Source
	Key        []string
	IgnoreCols []string
	Normalizer *normalize.Normalizer
}

// Outcome pairs a check name with its reconciliation result.
type Outcome struct {
	Name   string
	Result *recon.Result
}

// Run loads both sides, normalizes them and compares. Load errors surface
// unwrapped: they are the provider's failure to report.
func (c *Check) Run(ctx context.Context) (*Outcome, error) {
	src, err := c.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	tgt, err := c.Target.Load(ctx)
	if err != nil {
		return nil, err
	}
	n := c.Normalizer
	if n == nil {
		n = normalize.New()
	}
	src, err = n.Normalize(src)
	if err != nil {
		return nil, err
	}
	tgt, err = n.Normalize(tgt)
	if err != nil {
		return nil, err
	}
	e, err := recon.NewEngine(c.Key, c.IgnoreCols)
	if err != nil {
		return nil, err
	}
	res, err := e.Compare(src, tgt)
	if err != nil {
		return nil, err
	}
	return &Outcome{Name: c.Name, Result: res}, nil
}

// Session runs a batch of checks in order. The session fails fast: a check
// error aborts the batch, tagged with the check's name.
type Session struct {
	ID     string
	checks []*Check
	logger logr.Logger
}

func NewSession(logger logr.Logger) *Session {
	return &Session{
		ID:     uuid.New().String(),
		logger: logger,
	}
}

func (s *Session) Add(c *Check) {
	s.checks = append(s.checks, c)
}

func (s *Session) Len() int {
	return len(s.checks)
}

// RunAll runs every check in insertion order. Each completed check invokes
// done, if set, before the next check starts.
func (s *Session) RunAll(ctx context.Context, done func(*Outcome)) ([]*Outcome, error) {
	outcomes := make([]*Outcome, 0, len(s.checks))
	for _, c := range s.checks {
		s.logger.V(1).Info("running check", "session", s.ID, "check", c.Name)
		o, err := c.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", c.Name, err)
		}
		s.logger.V(1).Info("check complete",
			"check", c.Name,
			"diffCount", o.Result.DiffCount,
			"missingInSource", o.Result.MissingInSource.NumRows(),
			"missingInTarget", o.Result.MissingInTarget.NumRows(),
		)
		outcomes = append(outcomes, o)
		if done != nil {
			done(o)
		}
	}
	return outcomes, nil
}
