// Package wikitext renders the subset of MediaWiki markup found in
// property summaries and value descriptions into HTML fragments.
//
// Input is expected to be entity-escaped already (see cssdocs.EscapeTags),
// so text is emitted as-is. Fragment links ([[#x]]) and bracketed external
// links are left untouched for cssdocs.FixLinks, and images are never
// emitted as <img>.
package wikitext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/cssdocs"
)

// DefaultArticlePath is the base URL internal links resolve against.
const DefaultArticlePath = "https://docs.webplatform.org/wiki/"

// Ensure Renderer implements cssdocs.Renderer at compile time.
var _ cssdocs.Renderer = (*Renderer)(nil)

var (
	headingRe      = regexp.MustCompile(`^(={1,6})\s*(.+?)\s*={1,6}\s*$`)
	ruleRe         = regexp.MustCompile(`^-{4,}\s*$`)
	internalLinkRe = regexp.MustCompile(`\[\[([^\]\[|#][^\]\[|]*)(?:\|([^\]\[]*))?\]\](\w*)`)
	boldItalicRe   = regexp.MustCompile(`'''''(.+?)'''''`)
	boldRe         = regexp.MustCompile(`'''(.+?)'''`)
	italicRe       = regexp.MustCompile(`''(.+?)''`)
)

// Renderer converts wikitext to HTML.
type Renderer struct {
	articlePath string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithArticlePath sets the base URL for internal links.
// Defaults to DefaultArticlePath.
func WithArticlePath(path string) Option {
	return func(r *Renderer) {
		r.articlePath = path
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{articlePath: DefaultArticlePath}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts markup to an HTML fragment. Blocks are separated by newlines.
func (r *Renderer) Render(markup string) (string, error) {
	markup = strings.ToValidUTF8(markup, "\uFFFD")
	markup = strings.ReplaceAll(markup, "\r\n", "\n")

	b := &blockWriter{r: r}
	for _, line := range strings.Split(markup, "\n") {
		b.line(line)
	}
	b.flushAll()
	return strings.Join(b.out, "\n"), nil
}

// inline applies links and emphasis.
func (r *Renderer) inline(s string) string {
	s = internalLinkRe.ReplaceAllStringFunc(s, r.link)
	s = boldItalicRe.ReplaceAllString(s, "<b><i>$1</i></b>")
	s = boldRe.ReplaceAllString(s, "<b>$1</b>")
	return italicRe.ReplaceAllString(s, "<i>$1</i>")
}

func (r *Renderer) link(match string) string {
	m := internalLinkRe.FindStringSubmatch(match)
	target := strings.TrimSpace(strings.TrimPrefix(m[1], ":"))
	label, trailing := m[2], m[3]
	lower := strings.ToLower(m[1])
	if strings.HasPrefix(lower, "category:") {
		return trailing
	}
	if strings.HasPrefix(lower, "image:") || strings.HasPrefix(lower, "file:") {
		if i := strings.LastIndex(label, "|"); i >= 0 {
			label = label[i+1:]
		}
		return label + trailing
	}
	if label == "" {
		label = target
	}
	href := r.articlePath + strings.ReplaceAll(target, " ", "_")
	return `<a href="` + href + `">` + label + trailing + `</a>`
}

// blockWriter accumulates block-level structure line by line.
type blockWriter struct {
	r   *Renderer
	out []string

	para     []string
	indented []string
	pre      []string
	inPre    bool

	lists string
	list  strings.Builder

	table *tableWriter
}

func (b *blockWriter) line(line string) {
	if b.inPre {
		b.pre = append(b.pre, line)
		if strings.Contains(line, "</pre>") {
			b.out = append(b.out, strings.Join(b.pre, "\n"))
			b.pre, b.inPre = nil, false
		}
		return
	}

	trimmed := strings.TrimSpace(line)

	if b.table != nil {
		if strings.HasPrefix(trimmed, "|}") {
			b.out = append(b.out, b.table.close())
			b.table = nil
			return
		}
		b.table.line(trimmed)
		return
	}

	switch {
	case strings.HasPrefix(line, "<pre>"):
		b.flushAll()
		if strings.Contains(line, "</pre>") {
			b.out = append(b.out, line)
			return
		}
		b.pre, b.inPre = []string{line}, true
	case strings.HasPrefix(trimmed, "{|"):
		b.flushAll()
		b.table = newTableWriter(b.r)
	case trimmed == "":
		b.flushAll()
	case strings.HasPrefix(line, " "):
		b.flushPara()
		b.flushLists()
		b.indented = append(b.indented, line[1:])
	case headingRe.MatchString(line):
		b.flushAll()
		m := headingRe.FindStringSubmatch(line)
		level := strconv.Itoa(len(m[1]))
		b.out = append(b.out, "<h"+level+">"+b.r.inline(m[2])+"</h"+level+">")
	case ruleRe.MatchString(line):
		b.flushAll()
		b.out = append(b.out, "<hr>")
	case strings.ContainsRune("*#;:", rune(line[0])):
		b.flushPara()
		b.flushIndented()
		prefix := line[:len(line)-len(strings.TrimLeft(line, "*#;:"))]
		b.listItem(prefix, strings.TrimSpace(line[len(prefix):]))
	default:
		b.flushLists()
		b.flushIndented()
		b.para = append(b.para, line)
	}
}

func (b *blockWriter) listItem(prefix, content string) {
	common := commonListPrefix(b.lists, prefix)
	for i := len(b.lists) - 1; i >= common; i-- {
		b.list.WriteString(closeItem(b.lists[i]) + closeList(b.lists[i]))
	}
	if common == len(prefix) && common > 0 {
		b.list.WriteString(closeItem(b.lists[common-1]) + openItem(prefix[common-1]))
	}
	for i := common; i < len(prefix); i++ {
		b.list.WriteString(openList(prefix[i]) + openItem(prefix[i]))
	}
	b.list.WriteString(b.r.inline(content))
	b.lists = prefix
}

func (b *blockWriter) flushPara() {
	if len(b.para) == 0 {
		return
	}
	b.out = append(b.out, "<p>"+b.r.inline(strings.Join(b.para, "\n"))+"</p>")
	b.para = nil
}

func (b *blockWriter) flushIndented() {
	if len(b.indented) == 0 {
		return
	}
	b.out = append(b.out, "<pre>"+b.r.inline(strings.Join(b.indented, "\n"))+"</pre>")
	b.indented = nil
}

func (b *blockWriter) flushLists() {
	if b.lists == "" {
		return
	}
	for i := len(b.lists) - 1; i >= 0; i-- {
		b.list.WriteString(closeItem(b.lists[i]) + closeList(b.lists[i]))
	}
	b.out = append(b.out, b.list.String())
	b.list.Reset()
	b.lists = ""
}

func (b *blockWriter) flushAll() {
	b.flushPara()
	b.flushIndented()
	b.flushLists()
	if b.inPre {
		b.out = append(b.out, strings.Join(b.pre, "\n"))
		b.pre, b.inPre = nil, false
	}
	if b.table != nil {
		b.out = append(b.out, b.table.close())
		b.table = nil
	}
}

// commonListPrefix treats ';' and ':' as the same definition list.
func commonListPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && listKind(a[n]) == listKind(b[n]) {
		n++
	}
	return n
}

func listKind(c byte) byte {
	if c == ';' {
		return ':'
	}
	return c
}

func openList(c byte) string {
	switch c {
	case '*':
		return "<ul>"
	case '#':
		return "<ol>"
	}
	return "<dl>"
}

func closeList(c byte) string {
	switch c {
	case '*':
		return "</ul>"
	case '#':
		return "</ol>"
	}
	return "</dl>"
}

func openItem(c byte) string {
	switch c {
	case ';':
		return "<dt>"
	case ':':
		return "<dd>"
	}
	return "<li>"
}

func closeItem(c byte) string {
	switch c {
	case ';':
		return "</dt>"
	case ':':
		return "</dd>"
	}
	return "</li>"
}
