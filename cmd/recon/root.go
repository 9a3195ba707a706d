// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/recon/cmd/recon/utils"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recon",
		Short:         "Reconcile tabular datasets keyed by a primary key",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	viper.SetEnvPrefix("recon")
	rootCmd.PersistentFlags().Bool("quiet", false, "don't display progress bars")
	viper.BindEnv("quiet")
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	utils.AddLoggerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
