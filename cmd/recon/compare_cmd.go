// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package recon

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/colorstring"
	"github.com/spf13/cobra"
	"github.com/wrgl/recon/cmd/recon/utils"
	"github.com/wrgl/recon/pkg/dataset"
	"github.com/wrgl/recon/pkg/normalize"
	"github.com/wrgl/recon/pkg/pbar"
	"github.com/wrgl/recon/pkg/recon"
	"github.com/wrgl/recon/pkg/report"
	"github.com/wrgl/recon/pkg/source"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare SOURCE_CSV TARGET_CSV",
		Short: "Compare two CSV files keyed by a primary key",
		Example: strings.Join([]string{
			`  # compare on a single key column`,
			`  recon compare old.csv new.csv --primary-key id`,
			``,
			`  # composite key, ignoring bookkeeping columns`,
			`  recon compare old.csv new.csv -p region,id --ignore-cols updated_at,"sys_*"`,
			``,
			`  # write the cell-level diff to a CSV file`,
			`  recon compare old.csv new.csv -p id --output diff.csv`,
		}, "\n"),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := utils.SetupLogger(cmd)
			if err != nil {
				return err
			}
			if cleanup != nil {
				defer cleanup()
			}
			pk, err := cmd.Flags().GetStringSlice("primary-key")
			if err != nil {
				return err
			}
			ignoreCols, err := cmd.Flags().GetStringSlice("ignore-cols")
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			quiet, err := cmd.Flags().GetBool("quiet")
			if err != nil {
				return err
			}
			delim1, err := getDelimiter(cmd, "delimiter-1")
			if err != nil {
				return err
			}
			delim2, err := getDelimiter(cmd, "delimiter-2")
			if err != nil {
				return err
			}
			logger := utils.MustGetLogger(cmd)

			engine, err := recon.NewEngine(pk, ignoreCols)
			if err != nil {
				return err
			}
			container := pbar.NewContainer(cmd.ErrOrStderr(), quiet)
			src, err := loadCSV(container, args[0], delim1)
			if err != nil {
				return err
			}
			tgt, err := loadCSV(container, args[1], delim2)
			if err != nil {
				return err
			}
			container.Wait()
			n := normalize.New()
			if src, err = n.Normalize(src); err != nil {
				return err
			}
			if tgt, err = n.Normalize(tgt); err != nil {
				return err
			}
			logger.V(1).Info("datasets loaded", "sourceRows", src.NumRows(), "targetRows", tgt.NumRows())

			res, err := engine.Compare(src, tgt)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteDiffCSV(f, engine.Key(), res); err != nil {
					return err
				}
				colorstring.Fprintf(cmd.OutOrStdout(), "diff written to [bold]%s[reset]\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceP("primary-key", "p", nil, "ordered column names defining the match key")
	cmd.Flags().StringSlice("ignore-cols", nil, "column names or glob patterns excluded from value comparison")
	cmd.Flags().StringP("output", "o", "", "write the cell-level diff to a CSV file")
	cmd.Flags().String("delimiter-1", "", "CSV delimiter of the first file. Defaults to comma.")
	cmd.Flags().String("delimiter-2", "", "CSV delimiter of the second file. Defaults to comma.")
	return cmd
}

func getDelimiter(cmd *cobra.Command, flag string) (rune, error) {
	s, err := cmd.Flags().GetString(flag)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character", flag)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// loadCSV reads a CSV file with a progress bar over bytes read.
func loadCSV(container *pbar.Container, path string, delimiter rune) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	bar := container.NewBar(fi.Size(), path)
	ds, err := source.ReadCSV(pbar.NewReader(bar, f), delimiter)
	if err != nil {
		bar.Abort()
		return nil, err
	}
	bar.Done()
	return ds, nil
}

func printResult(cmd *cobra.Command, res *recon.Result) {
	out := cmd.OutOrStdout()
	colorstring.Fprintf(out, "source rows  [bold]%d[reset]\n", res.SourceCount)
	colorstring.Fprintf(out, "target rows  [bold]%d[reset]\n", res.TargetCount)
	printCount(out, "rows with diffs", res.DiffCount)
	printCount(out, "missing in target", res.MissingInTarget.NumRows())
	printCount(out, "missing in source", res.MissingInSource.NumRows())
	printCount(out, "duplicates in source", res.DuplicatesInSource.NumRows())
	printCount(out, "duplicates in target", res.DuplicatesInTarget.NumRows())
	for _, d := range res.Diffs {
		colorstring.Fprintf(out, "  [yellow]%s[reset]\n", d.KeyString())
		for _, cd := range d.Cols {
			colorstring.Fprintf(out, "    %s: [red]%s[reset] -> [green]%s[reset]\n",
				cd.Column, cd.Source.String(), cd.Target.String())
		}
	}
}

func printCount(out io.Writer, label string, n int) {
	if n > 0 {
		colorstring.Fprintf(out, "%s  [red]%d[reset]\n", label, n)
	} else {
		colorstring.Fprintf(out, "%s  [green]0[reset]\n", label)
	}
}
