// Package tabular parses raw delimited text exports into named-field rows.
// It auto-detects the delimiter, tolerates quoted fields and both newline
// conventions, and never fails: malformed rows degrade to empty values.
package tabular

import "strings"

// Row maps a column header to the raw string value parsed for that column.
// Columns missing from a short row are simply absent; lookups yield "".
type Row map[string]string

// Table is the result of parsing one delimited export.
type Table struct {
	Headers []string
	Rows    []Row
}

// Parse splits text into a header row and data rows. The delimiter is a tab
// when the header line contains one, otherwise a comma. Blank lines are
// discarded and fields are trimmed of surrounding whitespace.
func Parse(text string) Table {
	lines := splitLines(text)
	if len(lines) == 0 {
		return Table{Headers: []string{}, Rows: []Row{}}
	}

	delim := byte(',')
	if strings.ContainsRune(lines[0], '\t') {
		delim = '\t'
	}

	headers := splitFields(lines[0], delim)

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line, delim)

		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields is a quote-aware positional splitter: a double quote toggles the
// in-quotes flag, and the delimiter only ends a field outside quotes.
func splitFields(line string, delim byte) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))

	return fields
}
