// Package report maps the in-memory collections to flat row projections and
// emits them as delimited text.
package report

import (
	"strings"
)

// FilenamePrefix is prepended to every exported report filename.
const FilenamePrefix = "LOG-SGB"

// Table is one flat report: an ordered header and its rows. The whole table
// is built in memory; there is no streaming.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Filename returns the download filename for a report name:
// <prefix>_<REPORT_NAME>.csv.
func Filename(name string) string {
	return FilenamePrefix + "_" + name + ".csv"
}

// quote wraps a field in double quotes, doubling internal quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// EncodeCSV renders the table as semicolon-separated text prefixed with a
// UTF-8 byte-order mark. Every field is quoted; lines are joined with \n.
func EncodeCSV(t Table) []byte {
	var b strings.Builder
	b.WriteString("\ufeff")

	lines := make([]string, 0, len(t.Rows)+1)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = quote(c)
	}
	lines = append(lines, strings.Join(header, ";"))

	for _, row := range t.Rows {
		fields := make([]string, len(row))
		for i, f := range row {
			fields[i] = quote(f)
		}
		lines = append(lines, strings.Join(fields, ";"))
	}

	b.WriteString(strings.Join(lines, "\n"))
	return []byte(b.String())
}
