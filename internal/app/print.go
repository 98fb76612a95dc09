package app

import (
	"fmt"
	"strings"

	"github.com/vk/memscope/internal/treegrid"
	"github.com/zclconf/go-cty/cty"
)

// printRecords writes the flattened records to the output writer as a plain
// indented table, depth rendered as leading whitespace on the first column.
func (a *App) printRecords(columns []treegrid.Column, records []Record) {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	fmt.Fprintln(a.outW, strings.Join(names, "\t"))

	for _, rec := range records {
		cells := make([]string, len(rec.Values))
		for i, val := range rec.Values {
			cells[i] = formatValue(val)
		}
		indent := strings.Repeat("  ", rec.Depth)
		fmt.Fprintln(a.outW, indent+strings.Join(cells, "\t"))
	}
}

// formatValue converts a cell value to its printable representation.
func formatValue(val cty.Value) string {
	if val.IsNull() || !val.IsKnown() {
		return "-"
	}
	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Number:
		return val.AsBigFloat().Text('f', -1)
	case cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		return val.GoString()
	}
}
