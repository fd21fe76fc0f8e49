package report

import (
	"github.com/xuri/excelize/v2"
)

var xlsxColumnWidths = map[string]float64{
	"A": 28, "B": 12, "C": 10, "D": 36, "E": 10, "F": 36, "G": 12, "H": 14,
}

// EncodeXLSX writes the same rows and totals as the CSV into a single sheet.
func EncodeXLSX(doc Document) (data []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			data, err = nil, xlsxError(cerr)
		}
	}()

	sheet := doc.Labels.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, xlsxError(err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, xlsxError(err)
	}

	row := 1
	writeRow := func(fields []string, styled bool) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(fields))
		for i, v := range fields {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if styled {
			if err := f.SetRowStyle(sheet, row, row, bold); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	if err := writeRow(doc.Labels.Header, true); err != nil {
		return nil, xlsxError(err)
	}
	for _, s := range doc.Sections {
		for _, r := range s.Rows {
			if err := writeRow(r.Fields(), false); err != nil {
				return nil, xlsxError(err)
			}
		}
		if err := writeRow(s.TotalFields(doc.Labels), true); err != nil {
			return nil, xlsxError(err)
		}
	}

	for col, width := range xlsxColumnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, xlsxError(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, xlsxError(err)
	}
	return buf.Bytes(), nil
}

func xlsxError(err error) error {
	return &EncodingError{Kind: KindGeneric, Format: FormatXLSX, Err: err}
}
