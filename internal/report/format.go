package report

import (
	"strconv"
	"strings"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv, pdf and xlsx in any case. An empty value means pdf.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPDF, nil
	case FormatCSV, FormatPDF, FormatXLSX:
		return f, nil
	default:
		return "", ErrUnknownFormat
	}
}

func (f Format) MimeType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/pdf"
	}
}

// FileName is the suggested download name, e.g. relatorio-3-2024.csv.
func (f Format) FileName(p Period) string {
	return "relatorio-" + strconv.Itoa(int(p.Month)) + "-" + strconv.Itoa(p.Year) + "." + string(f)
}

func (f Format) encoder() func(Document) ([]byte, error) {
	switch f {
	case FormatCSV:
		return EncodeCSV
	case FormatXLSX:
		return EncodeXLSX
	default:
		return EncodePDF
	}
}
