// Package export turns report results into normalized row sets and ships
// them to spreadsheet sinks. Sinks only render: every cell they receive is a
// raw value, never a pre-formatted string.
package export

import "context"

type (
	// Sheet is one named tab of rows ready for a spreadsheet sink.
	Sheet struct {
		Name string
		Rows [][]interface{}
	}

	// SheetWriter ships a set of sheets to a destination workbook.
	SheetWriter interface {
		WriteSheets(ctx context.Context, title string, sheets []Sheet) error
	}
)
