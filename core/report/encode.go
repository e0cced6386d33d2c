package report

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/classbook/core"
)

// Format is a download format of the report.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	MimeCSV  = "text/csv; charset=utf-8"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	bom       = "\uFEFF"
	sheetName = "Report"
)

// Header is the first line of every export.
var Header = []string{"date", "category", "studentNumber", "studentName", "item", "status", "mood", "memo"}

func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

func (f Format) Ext() string { return "." + string(f) }

func (f Format) MimeType() string {
	if f == FormatXLSX {
		return MimeXLSX
	}
	return MimeCSV
}

// Filename names a download: prefix, then the date, then the extension.
func Filename(prefix string, today core.DateKey, ext string) string {
	return prefix + string(today) + ext
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// EncodeCSV renders rows as UTF-8 text with a leading byte-order mark so spreadsheets detect the encoding.
// Every field is double-quoted.
func EncodeCSV(rows []Row) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)
	buf.WriteString(strings.Join(Header, ","))
	buf.WriteByte('\n')

	fields := make([]string, len(Header))
	for _, row := range rows {
		for i, cell := range row.Strings() {
			fields[i] = quote(cell)
		}
		buf.WriteString(strings.Join(fields, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// EncodeXLSX writes rows as a single-sheet workbook.
func EncodeXLSX(rows []Row, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row.Strings()); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, cells []string) error {
	for i, val := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return errors.Wrap(err, "resolving cell name")
		}
		if err := f.SetCellValue(sheetName, cell, val); err != nil {
			return errors.Wrapf(err, "setting cell %s", cell)
		}
	}
	return nil
}

// Encode renders rows in the given format.
func Encode(rows []Row, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return EncodeCSV(rows), nil
	case FormatXLSX:
		var buf bytes.Buffer
		if err := EncodeXLSX(rows, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, core.NewArgumentError("invalid report format %q", format)
	}
}
