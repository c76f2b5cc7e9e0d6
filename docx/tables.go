package docx

import (
	"github.com/tsawler/docxtree/model"
)

// TranscribeTable converts a w:tbl element into a table node. Each direct
// w:tr becomes a row and each direct w:tc of that row a cell, so the row
// and cell counts follow the source exactly. Merged cells are left as
// they appear in the markup.
//
// Cell text is every w:t inside the cell concatenated with no separator,
// including text from nested tables.
func TranscribeTable(tbl *Node) *model.Table {
	trs := tbl.Elements(nsW, "tr")
	rows := make([][]string, len(trs))
	for i, tr := range trs {
		tcs := tr.Elements(nsW, "tc")
		cells := make([]string, len(tcs))
		for j, tc := range tcs {
			cells[j] = tc.TextOf(nsW, "t")
		}
		rows[i] = cells
	}
	return &model.Table{Rows: rows}
}
