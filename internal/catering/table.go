package catering

import (
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// Align controls how a column's cells are padded when rendered.
type Align int

const (
	// AlignLeft pads cells on the right. Default for text columns.
	AlignLeft Align = iota

	// AlignRight pads cells on the left. Used for numeric columns.
	AlignRight
)

// Column describes one table column.
type Column struct {
	// Title is the header text.
	Title string

	// Width is the render width in cells.
	Width int

	// Align is the cell alignment.
	Align Align
}

// Row is one drillable table row.
type Row struct {
	// ID uniquely identifies the row within its table. It is the value
	// toggled into the selection set at a multi-select level.
	ID string

	// Cells holds the formatted cell text, one per column.
	Cells []string

	// Delta holds the context keys drilling into this row contributes,
	// nil for rows at leaf levels.
	Delta drill.Context
}

// Table is the payload every hierarchy level produces. It implements
// drill.Data so navigation history can snapshot it.
type Table struct {
	// Columns describe the table layout.
	Columns []Column

	// Rows hold the data, already formatted for display.
	Rows []Row

	// Footer holds an optional totals row, one cell per column.
	Footer []string
}

// EmptyTable returns the placeholder payload rendered when a fetch fails
// or a restored view never loaded.
func EmptyTable() *Table { return &Table{} }

// CloneData deep-copies the table.
func (t *Table) CloneData() drill.Data {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]Column(nil), t.Columns...),
		Footer:  append([]string(nil), t.Footer...),
	}
	if t.Rows != nil {
		out.Rows = make([]Row, len(t.Rows))
		for i, r := range t.Rows {
			out.Rows[i] = Row{
				ID:    r.ID,
				Cells: append([]string(nil), r.Cells...),
			}
			if r.Delta != nil {
				out.Rows[i].Delta = r.Delta.Clone()
			}
		}
	}
	return out
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t == nil || len(t.Rows) == 0 }
