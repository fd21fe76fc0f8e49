package report

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const (
	csvDelimiter = ';'
	csvLineEnd   = "\r\n"
)

// EncodeCSV writes the document as a spreadsheet-friendly CSV: UTF-8 BOM,
// semicolon separated, every field quoted. Each employee's rows are followed
// by a monthly total line.
func EncodeCSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writeCSVLine(&buf, doc.Labels.Header)
	for _, s := range doc.Sections {
		for _, r := range s.Rows {
			writeCSVLine(&buf, r.Fields())
		}
		writeCSVLine(&buf, s.TotalFields(doc.Labels))
	}
	return buf.Bytes(), nil
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(csvDelimiter)
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString(csvLineEnd)
}
