// Package goquery converts HTML gazette pages to plain text using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/negarit"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements negarit.Converter at compile time.
var _ negarit.Converter = (*Converter)(nil)

// DefaultContentSelectors locate the gazette body on common publishing
// sites, most specific first. The document body is used when none match.
var DefaultContentSelectors = []string{
	".entry-content",
	"article",
	"main",
	"#content",
}

// removedSelector matches page chrome that never carries gazette text.
const removedSelector = "script, style, noscript, template, nav, header, footer"

// blockElements start a new line of text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Table: true, atom.Tr: true, atom.Ul: true,
}

// Converter extracts the text of HTML gazette pages, one block element per
// line.
type Converter struct {
	contentSelectors []string
}

// NewConverter creates a Converter that looks for the gazette body with
// selectors, falling back to DefaultContentSelectors when none are given.
func NewConverter(selectors ...string) *Converter {
	if len(selectors) == 0 {
		selectors = DefaultContentSelectors
	}
	return &Converter{contentSelectors: selectors}
}

// Convert returns the text content of markup. Script, style and page chrome
// (navigation, header, footer) are dropped.
func (c *Converter) Convert(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", negarit.Errorf(negarit.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(removedSelector).Remove()

	var b strings.Builder
	for _, n := range c.contentRoot(doc).Nodes {
		writeText(&b, n)
	}
	return tidyLines(b.String()), nil
}

// contentRoot returns the first element matched by the content selectors,
// or the body.
func (c *Converter) contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range c.contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// writeText appends the text under n, surrounding block elements with
// newlines.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode, html.DocumentNode:
	default:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(b, child)
	}
	if block {
		b.WriteByte('\n')
	} else if n.DataAtom == atom.Td || n.DataAtom == atom.Th {
		b.WriteByte(' ')
	}
}

// tidyLines squeezes whitespace within lines and drops empty ones.
func tidyLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
