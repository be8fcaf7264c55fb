package pipeline

import "strings"

// Separator markers: a header row is only recognized when the next line
// contains one of these.
const (
	separatorDashes = "---"
	separatorAlign  = ":--"
)

// ConvertTables replaces every pipe table in text with <table> markup.
// Non-table lines pass through unchanged and in order.
//
// Line i starts a table when it contains "|" and line i+1 exists, contains
// "|", and contains "---" or ":--". The separator line is consumed. Data
// rows follow while lines contain "|"; the first line without one ends the
// table and is emitted as ordinary text.
func ConvertTables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if !isTableStart(lines, i) {
			out = append(out, lines[i])
			continue
		}

		out = append(out, "<table>", "<thead>", "<tr>")
		for _, cell := range headerCells(lines[i]) {
			out = append(out, "<th>"+cell+"</th>")
		}
		out = append(out, "</tr>", "</thead>", "<tbody>")

		j := i + 2
		for ; j < len(lines) && strings.Contains(lines[j], "|"); j++ {
			cells := rowCells(lines[j])
			if cells == nil {
				continue
			}
			out = append(out, "<tr>")
			for _, cell := range cells {
				out = append(out, "<td>"+cell+"</td>")
			}
			out = append(out, "</tr>")
		}
		out = append(out, "</tbody>", "</table>")

		i = j - 1
	}

	return strings.Join(out, "\n")
}

func isTableStart(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	line, next := lines[i], lines[i+1]
	return strings.Contains(line, "|") &&
		strings.Contains(next, "|") &&
		(strings.Contains(next, separatorDashes) || strings.Contains(next, separatorAlign))
}

// headerCells splits a header row on pipes and drops every empty cell.
func headerCells(line string) []string {
	var cells []string
	for _, part := range strings.Split(line, "|") {
		if cell := strings.TrimSpace(part); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// rowCells splits a data row on pipes. A leading pipe drops the empty
// first piece and a trailing pipe drops the empty last piece; interior
// empty cells are kept so columns stay aligned. Returns nil for a row made
// only of pipes, which emits no <tr>.
func rowCells(line string) []string {
	row := strings.TrimSpace(line)
	if strings.Trim(row, "|") == "" {
		return nil
	}

	parts := strings.Split(row, "|")
	if strings.HasPrefix(row, "|") {
		parts = parts[1:]
	}
	if strings.HasSuffix(row, "|") {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}
