// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Container renders progress bars to a single writer. A quiet container
// hands out no-op bars.
type Container struct {
	p     *mpb.Progress
	out   io.Writer
	quiet bool
}

func NewContainer(out io.Writer, quiet bool) *Container {
	return &Container{out: out, quiet: quiet}
}

func (c *Container) NewBar(total int64, name string) Bar {
	if c.quiet {
		return &noopBar{}
	}
	if c.p == nil {
		c.p = mpb.New(mpb.WithOutput(c.out))
	}
	options := []mpb.BarOption{
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DidentRight}),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
		mpb.BarRemoveOnComplete(),
	}
	b := c.p.New(total,
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		options...,
	)
	b.EnableTriggerComplete()
	return &bar{b: b, total: total}
}

func (c *Container) Wait() {
	if c.p == nil {
		return
	}
	c.p.Wait()
	c.p = nil
}

type reader struct {
	bar Bar
	r   io.Reader
}

func (r *reader) Read(b []byte) (n int, err error) {
	n, err = r.r.Read(b)
	if n > 0 {
		r.bar.IncrBy(n)
	}
	if err != nil {
		if err == io.EOF {
			r.bar.Done()
		} else {
			r.bar.Abort()
		}
	}
	return
}

// NewReader advances bar by the number of bytes read from r.
func NewReader(bar Bar, r io.Reader) io.Reader {
	return &reader{bar: bar, r: r}
}
