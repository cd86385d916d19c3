// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"

	"github.com/google/safehtml/template"

	"github.com/mpisort/sortperf/internal/texttab"
)

// ToText writes t as a text table. With grid set, the cells are
// framed by box-drawing characters.
func (t *Table) ToText(w io.Writer, grid bool) error {
	var tab texttab.Table
	for i := 1; i < len(t.Columns)+4; i++ {
		tab.SetAlign(i, texttab.Right)
	}
	for i, row := range t.Cells() {
		tab.Row()
		for _, v := range row {
			if i == 0 {
				tab.Cell(v, texttab.Center)
			} else {
				tab.Cell(v)
			}
		}
	}
	if grid {
		return tab.FormatGrid(w)
	}
	return tab.Format(w)
}

// ToCSV writes t as CSV with ';' as the field delimiter.
func (t *Table) ToCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return cw.WriteAll(t.Cells())
}

var htmlTemplate = template.Must(template.New("table").Parse(`
<table class='sortperf'>
<caption>{{.Caption}}</caption>
<thead>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows -}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end -}}
</tbody>
</table>
`))

// ToHTML writes t as an HTML table.
func (t *Table) ToHTML(w io.Writer) error {
	cells := t.Cells()
	return htmlTemplate.Execute(w, struct {
		Caption string
		Header  []string
		Rows    [][]string
	}{
		Caption: t.Name() + ": " + t.TargetName(),
		Header:  cells[0],
		Rows:    cells[1:],
	})
}
