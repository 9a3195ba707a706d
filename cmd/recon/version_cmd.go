// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set via -ldflags at release time
var version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "recon %s\n", version)
			return err
		},
	}
}
