// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package source

import (
	"context"

	"github.com/wrgl/recon/pkg/dataset"
)

// Source loads a fully materialized table. Load failures are fatal to the
// comparison that needs them; callers must not retry or suppress them.
type Source interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}
