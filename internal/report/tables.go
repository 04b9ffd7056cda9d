// Package report assembles the human-readable impact summary and table
// attached to result layers, and exports tables to spreadsheet files.
package report

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/rotisserie/eris"
)

// Row is one table row. Header rows render as <th> cells.
type Row struct {
	Cells  []string `json:"cells"`
	Header bool     `json:"header,omitempty"`
}

// Table is a simple report table rendered as a newline-free HTML string for
// embedding in layer keywords.
type Table struct {
	Caption string `json:"caption,omitempty"`
	Rows    []Row  `json:"rows"`
}

// Add appends a body row.
func (t *Table) Add(cells ...string) *Table {
	t.Rows = append(t.Rows, Row{Cells: cells})
	return t
}

// AddHeader appends a header row.
func (t *Table) AddHeader(cells ...string) *Table {
	t.Rows = append(t.Rows, Row{Cells: cells, Header: true})
	return t
}

// HTML renders the table as a single-line HTML string.
func (t *Table) HTML() string {
	var b strings.Builder
	b.WriteString(`<table class="table table-striped condensed">`)
	if t.Caption != "" {
		b.WriteString("<caption>")
		b.WriteString(html.EscapeString(t.Caption))
		b.WriteString("</caption>")
	}
	b.WriteString("<tbody>")
	for _, row := range t.Rows {
		tag := "td"
		if row.Header {
			tag = "th"
		}
		b.WriteString("<tr>")
		for _, cell := range row.Cells {
			b.WriteString("<" + tag + ">")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</" + tag + ">")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// MarshalTable serializes a table for persistence in the run store.
func MarshalTable(t *Table) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", eris.Wrap(err, "report: marshal table")
	}
	return string(data), nil
}

// UnmarshalTable restores a table persisted by MarshalTable.
func UnmarshalTable(data string) (*Table, error) {
	var t Table
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, eris.Wrap(err, "report: unmarshal table")
	}
	return &t, nil
}
