package main

import (
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable renders history rows in a rounded-border table. Columns named
// in rightAligned (numeric ones like DURATION) are right-aligned; everything
// else stays left. Short rows are padded with empty cells.
func renderTable(headers []string, rows [][]string, rightAligned ...string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for i, h := range headers {
		if slices.Contains(rightAligned, h) {
			configs = append(configs, table.ColumnConfig{
				Number:      i + 1,
				Align:       text.AlignRight,
				AlignHeader: text.AlignLeft,
			})
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
