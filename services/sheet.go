// Package services contains the deterministic estimation core: configuration
// sheet parsing, fuzzy key resolution, technical quantity calculation,
// logistics resolution and cost aggregation.
package services

import (
	"regexp"
	"strconv"
	"strings"
)

// ConfigTable is an ordered mapping from a free-text row key (a model name,
// a ballast type) to its numeric columns, keyed by normalized header.
// It is built once from a fetched sheet and never mutated afterwards.
type ConfigTable struct {
	keys []string
	rows map[string]map[string]float64
}

// Keys returns the row keys in sheet order.
func (t *ConfigTable) Keys() []string {
	return t.keys
}

// Row returns the column map for an exact row key.
func (t *ConfigTable) Row(key string) (map[string]float64, bool) {
	row, ok := t.rows[key]
	return row, ok
}

// Len returns the number of rows.
func (t *ConfigTable) Len() int {
	return len(t.keys)
}

// LogisticsTable maps a two-letter province code to tariff label -> cost.
// Rows whose key is not exactly two letters are rejected during parsing.
type LogisticsTable struct {
	regions map[string]map[string]float64
}

// Region returns the tariff map for a province code (case-insensitive).
func (t *LogisticsTable) Region(code string) (map[string]float64, bool) {
	if t == nil || t.regions == nil {
		return nil, false
	}
	tariffs, ok := t.regions[strings.ToUpper(strings.TrimSpace(code))]
	return tariffs, ok
}

// Len returns the number of provinces loaded.
func (t *LogisticsTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.regions)
}

// detectDelimiter picks the field separator for the whole document by
// counting commas vs. semicolons in the header line.
func detectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// splitFields splits one line on the delimiter, honoring double quotes:
// a delimiter inside a quoted field is not a separator. Surrounding quotes
// are stripped from every field.
func splitFields(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())

	for i, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.Trim(f, `"'`)
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

var headerSpaceRun = regexp.MustCompile(`\s+`)
var headerInvalid = regexp.MustCompile(`[^A-Z0-9_]`)

// NormalizeHeader turns a raw column header into the canonical column key
// used everywhere downstream: trimmed, uppercased, BOM stripped, periods and
// parentheses removed, whitespace runs collapsed to a single underscore.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.TrimSpace(h)
	h = strings.ToUpper(h)
	h = strings.NewReplacer(".", "", "(", "", ")", "").Replace(h)
	h = headerSpaceRun.ReplaceAllString(h, "_")
	h = headerInvalid.ReplaceAllString(h, "")
	return h
}

var cellNoise = strings.NewReplacer(
	"€", "", "$", "", "£", "", "%", "",
	" ", "", " ", "",
)

// ParseNumericCell parses a sheet cell that may use either 1234.56 or the
// European 1.234,56 / 1234,56 notation, possibly with currency symbols,
// percent signs or a unit suffix. Empty or non-numeric cells parse to 0:
// operator typos degrade to zero, they never abort the table.
func ParseNumericCell(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	s = cellNoise.Replace(s)
	lower := strings.ToLower(s)
	for _, suffix := range []string{"kg", "km", "h", "hr", "ore"} {
		if strings.HasSuffix(lower, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			// 1.234,56 -> dot is a thousands separator
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		// 1234,56
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// nonEmptyLines splits raw sheet text into trimmed, non-blank lines.
func nonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseConfigTable builds a ConfigTable from raw delimited text. The first
// line holds the headers; keyCol selects the key column (normally 0). Fewer
// than two non-empty lines yields an empty table, not an error: callers fall
// back to defaults when a sheet is missing or blank.
func ParseConfigTable(raw string, keyCol int) *ConfigTable {
	table := &ConfigTable{rows: make(map[string]map[string]float64)}

	lines := nonEmptyLines(raw)
	if len(lines) < 2 {
		return table
	}

	delim := detectDelimiter(lines[0])
	headers := splitFields(lines[0], delim)
	for i, h := range headers {
		headers[i] = NormalizeHeader(h)
	}
	if keyCol < 0 || keyCol >= len(headers) {
		keyCol = 0
	}

	for _, line := range lines[1:] {
		fields := splitFields(line, delim)
		if keyCol >= len(fields) {
			continue
		}
		key := strings.TrimPrefix(fields[keyCol], "\uFEFF")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		row := make(map[string]float64)
		for i, field := range fields {
			if i == keyCol || i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = ParseNumericCell(field)
		}

		if _, dup := table.rows[key]; !dup {
			table.keys = append(table.keys, key)
		}
		table.rows[key] = row
	}
	return table
}

var provinceCode = regexp.MustCompile(`^[A-Z]{2}$`)

// ParseLogisticsTable builds a LogisticsTable from raw delimited text. The
// province column is located by header (PROVINCIA / SIGLA / PROV), falling
// back to the first column. Rows whose key is not a two-letter code violate
// the table invariant and are dropped here, never at lookup time.
func ParseLogisticsTable(raw string) *LogisticsTable {
	table := &LogisticsTable{regions: make(map[string]map[string]float64)}

	lines := nonEmptyLines(raw)
	if len(lines) < 2 {
		return table
	}

	delim := detectDelimiter(lines[0])
	headers := splitFields(lines[0], delim)
	for i, h := range headers {
		headers[i] = NormalizeHeader(h)
	}

	keyCol := 0
	for i, h := range headers {
		if strings.Contains(h, "PROVINCIA") || h == "SIGLA" || h == "PROV" {
			keyCol = i
			break
		}
	}

	for _, line := range lines[1:] {
		fields := splitFields(line, delim)
		if keyCol >= len(fields) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(fields[keyCol], "\uFEFF")))
		if !provinceCode.MatchString(code) {
			continue
		}

		tariffs := make(map[string]float64)
		for i, field := range fields {
			if i == keyCol || i >= len(headers) || headers[i] == "" {
				continue
			}
			tariffs[headers[i]] = ParseNumericCell(field)
		}
		table.regions[code] = tariffs
	}
	return table
}
