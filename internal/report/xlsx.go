package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX writes the table to an XLSX workbook with a single sheet.
func WriteXLSX(path, sheetName string, t *Table) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %q", sheetName)
	}

	if t.Caption != "" {
		row := sheet.AddRow()
		row.AddCell().SetString(t.Caption)
	}

	for _, r := range t.Rows {
		row := sheet.AddRow()
		for _, cell := range r.Cells {
			row.AddCell().SetString(cell)
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}
