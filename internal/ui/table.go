package ui

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/idilsaglam/bikerental/internal/model"
)

// Table renders t with go-pretty, styled after the current theme.
func Table(title string, t model.Table) {
	w := table.NewWriter()
	w.SetOutputMirror(stdout)
	if title != "" {
		w.SetTitle(title)
	}
	switch current.Name {
	case "mono":
		w.SetStyle(table.StyleDefault)
	case "neon":
		w.SetStyle(table.StyleRounded)
	default:
		w.SetStyle(table.StyleLight)
	}

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	w.AppendHeader(header)
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		w.AppendRow(row)
	}
	w.Render()
}
