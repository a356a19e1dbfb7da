package wikitext

import "strings"

// tableWriter renders {| ... |} tables. Cell and table attributes are
// dropped.
type tableWriter struct {
	r       *Renderer
	b       strings.Builder
	rowOpen bool
	cellTag string
}

func newTableWriter(r *Renderer) *tableWriter {
	t := &tableWriter{r: r}
	t.b.WriteString("<table>")
	return t
}

func (t *tableWriter) line(line string) {
	switch {
	case strings.HasPrefix(line, "|+"):
		t.closeCell()
		t.b.WriteString("<caption>" + t.r.inline(strings.TrimSpace(line[2:])) + "</caption>")
	case strings.HasPrefix(line, "|-"):
		t.closeRow()
		t.b.WriteString("<tr>")
		t.rowOpen = true
	case strings.HasPrefix(line, "!"):
		t.cells("th", strings.Split(strings.ReplaceAll(line[1:], "||", "!!"), "!!"))
	case strings.HasPrefix(line, "|"):
		t.cells("td", strings.Split(line[1:], "||"))
	case t.cellTag != "":
		t.b.WriteString("\n" + t.r.inline(line))
	}
}

func (t *tableWriter) cells(tag string, cells []string) {
	if !t.rowOpen {
		t.b.WriteString("<tr>")
		t.rowOpen = true
	}
	for _, cell := range cells {
		t.closeCell()
		t.b.WriteString("<" + tag + ">" + t.r.inline(strings.TrimSpace(dropAttributes(cell))))
		t.cellTag = tag
	}
}

// dropAttributes strips a leading `attr="x" |` section from a cell.
func dropAttributes(cell string) string {
	i := strings.Index(cell, "|")
	if i < 0 {
		return cell
	}
	attrs := cell[:i]
	if strings.Contains(attrs, "[[") || !strings.Contains(attrs, "=") {
		return cell
	}
	return cell[i+1:]
}

func (t *tableWriter) closeCell() {
	if t.cellTag != "" {
		t.b.WriteString("</" + t.cellTag + ">")
		t.cellTag = ""
	}
}

func (t *tableWriter) closeRow() {
	t.closeCell()
	if t.rowOpen {
		t.b.WriteString("</tr>")
		t.rowOpen = false
	}
}

func (t *tableWriter) close() string {
	t.closeRow()
	t.b.WriteString("</table>")
	return t.b.String()
}
