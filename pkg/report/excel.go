// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package report

import (
	"fmt"
	"strings"

	"github.com/wrgl/recon/pkg/check"
	"github.com/wrgl/recon/pkg/dataset"
	"github.com/xuri/excelize/v2"
)

// Issue labels used in the consolidated sheet.
const (
	IssueMissingInTarget   = "missing-in-target"
	IssueMissingInSource   = "missing-in-source"
	IssueDuplicateInSource = "duplicate-in-source"
	IssueDuplicateInTarget = "duplicate-in-target"
)

const (
	summarySheet = "Summary"
	issuesSheet  = "Missing and Duplicates"
)

// WriteExcel writes a workbook with one summary row per outcome, one diff
// sheet per outcome with a non-empty diff table, and a consolidated sheet
// of missing and duplicate rows tagged with their check name and issue.
func WriteExcel(outcomes []*check.Outcome, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, outcomes); err != nil {
		return err
	}
	for _, o := range outcomes {
		if len(o.Result.Diffs) == 0 {
			continue
		}
		if err := writeDiffSheet(f, o); err != nil {
			return err
		}
	}
	if err := writeIssues(f, outcomes); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, vals []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

func writeSummary(f *excelize.File, outcomes []*check.Outcome) error {
	if err := setRow(f, summarySheet, 1, []interface{}{
		"test", "source count", "target count", "diff count",
		"missing in target", "missing in source",
		"duplicates in source", "duplicates in target",
	}); err != nil {
		return err
	}
	for i, o := range outcomes {
		r := o.Result
		if err := setRow(f, summarySheet, i+2, []interface{}{
			o.Name, r.SourceCount, r.TargetCount, r.DiffCount,
			r.MissingInTarget.NumRows(), r.MissingInSource.NumRows(),
			r.DuplicatesInSource.NumRows(), r.DuplicatesInTarget.NumRows(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// diffSheetName keeps sheet names within Excel's 31 character limit and
// strips characters Excel rejects.
func diffSheetName(name string) string {
	repl := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	s := repl.Replace(name)
	if len(s) > 25 {
		s = s[:25]
	}
	return s + " diffs"
}

func writeDiffSheet(f *excelize.File, o *check.Outcome) error {
	sheet := diffSheetName(o.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, []interface{}{"key", "column", "source", "target"}); err != nil {
		return err
	}
	row := 2
	for _, d := range o.Result.Diffs {
		key := d.KeyString()
		for _, cd := range d.Cols {
			if err := setRow(f, sheet, row, []interface{}{
				key, cd.Column, cd.Source.String(), cd.Target.String(),
			}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

type issueRows struct {
	test  string
	issue string
	ds    *dataset.Dataset
}

func writeIssues(f *excelize.File, outcomes []*check.Outcome) error {
	var entries []issueRows
	for _, o := range outcomes {
		r := o.Result
		for _, e := range []issueRows{
			{o.Name, IssueMissingInTarget, r.MissingInTarget},
			{o.Name, IssueMissingInSource, r.MissingInSource},
			{o.Name, IssueDuplicateInSource, r.DuplicatesInSource},
			{o.Name, IssueDuplicateInTarget, r.DuplicatesInTarget},
		} {
			if e.ds.NumRows() > 0 {
				entries = append(entries, e)
			}
		}
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := f.NewSheet(issuesSheet); err != nil {
		return err
	}
	// schemas differ across checks: the sheet carries the union of columns
	// in first-seen order
	var columns []string
	seen := map[string]struct{}{}
	for _, e := range entries {
		for _, c := range e.ds.Columns() {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				columns = append(columns, c)
			}
		}
	}
	header := []interface{}{"test", "issue"}
	for _, c := range columns {
		header = append(header, c)
	}
	if err := setRow(f, issuesSheet, 1, header); err != nil {
		return err
	}
	row := 2
	for _, e := range entries {
		for i := 0; i < e.ds.NumRows(); i++ {
			vals := []interface{}{e.test, e.issue}
			for _, c := range columns {
				if v, ok := e.ds.Value(i, c); ok {
					vals = append(vals, v.String())
				} else {
					vals = append(vals, "")
				}
			}
			if err := setRow(f, issuesSheet, row, vals); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

// Summary renders a one-line textual summary of an outcome.
func Summary(o *check.Outcome) string {
	r := o.Result
	return fmt.Sprintf("%d diffs, %d missing in target, %d missing in source, %d+%d duplicates",
		r.DiffCount, r.MissingInTarget.NumRows(), r.MissingInSource.NumRows(),
		r.DuplicatesInSource.NumRows(), r.DuplicatesInTarget.NumRows())
}
