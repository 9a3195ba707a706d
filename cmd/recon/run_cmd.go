// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/spf13/cobra"
	"github.com/wrgl/recon/cmd/recon/utils"
	"github.com/wrgl/recon/pkg/check"
	"github.com/wrgl/recon/pkg/conf"
	"github.com/wrgl/recon/pkg/pbar"
	"github.com/wrgl/recon/pkg/report"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run CONFIG_FILE",
		Short: "Run a batch of reconciliation checks from a YAML config",
		Example: strings.Join([]string{
			`  # run all checks and write the report`,
			`  recon run checks.yaml --output report.xlsx`,
		}, "\n"),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := utils.SetupLogger(cmd)
			if err != nil {
				return err
			}
			if cleanup != nil {
				defer cleanup()
			}
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			quiet, err := cmd.Flags().GetBool("quiet")
			if err != nil {
				return err
			}
			logger := utils.MustGetLogger(cmd)

			cfg, err := conf.NewStore(args[0]).Open()
			if err != nil {
				return err
			}
			session := check.NewSession(logger)
			for _, c := range cfg.Checks {
				chk, err := conf.BuildCheck(c)
				if err != nil {
					return err
				}
				session.Add(chk)
			}
			logger.V(1).Info("session starting", "session", session.ID, "checks", session.Len())

			container := pbar.NewContainer(cmd.ErrOrStderr(), quiet)
			bar := container.NewBar(int64(session.Len()), "checks")
			outcomes, err := session.RunAll(cmd.Context(), func(*check.Outcome) {
				bar.Incr()
			})
			if err != nil {
				bar.Abort()
				container.Wait()
				return err
			}
			bar.Done()
			container.Wait()

			out := cmd.OutOrStdout()
			for _, o := range outcomes {
				if clean(o) {
					colorstring.Fprintf(out, "[green]ok[reset]    %s: %s\n", o.Name, report.Summary(o))
				} else {
					colorstring.Fprintf(out, "[red]issue[reset] %s: %s\n", o.Name, report.Summary(o))
				}
			}
			if err := report.WriteExcel(outcomes, output); err != nil {
				return err
			}
			colorstring.Fprintf(out, "report written to [bold]%s[reset]\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "recon-report.xlsx", "path of the report workbook")
	return cmd
}

func clean(o *check.Outcome) bool {
	r := o.Result
	return r.DiffCount == 0 &&
		r.MissingInSource.NumRows() == 0 &&
		r.MissingInTarget.NumRows() == 0 &&
		r.DuplicatesInSource.NumRows() == 0 &&
		r.DuplicatesInTarget.NumRows() == 0
}
