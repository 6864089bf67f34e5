// Package extract implements the per-page fact extractors. Each extractor is
// a pure function of (html, sourceURL): it parses its own document, never
// touches the network, and returns the facts it found. Heuristic rules are
// ordered matcher functions combined first-success-wins so each rule stays
// independently testable.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseDoc parses an HTML string into a goquery document. Extractors parse
// independently because several of them mutate the tree (script/style
// removal) before reading text.
func parseDoc(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// blockTags end a text flow. Selection.Text() concatenates adjacent blocks
// with no separator, gluing "...SAS</p><p>Capital" into a single token.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "tr": true, "td": true, "th": true, "br": true,
	"section": true, "article": true, "header": true, "footer": true,
	"address": true, "blockquote": true,
}

// visibleText returns the document text with script/style/noscript content
// removed, block boundaries kept as spaces, and whitespace collapsed.
// Dropping script nodes first keeps inline JS tokens from gluing onto
// adjacent emails and phone numbers.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			b.WriteByte(' ')
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// AnalysisText reduces a page to the plain text worth sending to an LLM:
// scripts, styles, frames, and forms dropped, main content preferred over the
// full body when the page marks one.
func AnalysisText(html string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, iframe, embed, form").Remove()

	main := doc.Find("main, article, .content, .main-content").First()
	if main.Length() > 0 {
		return strings.TrimSpace(main.Text())
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

// snippetAround returns the text surrounding [start,end) with up to pad
// characters on each side, trimmed to byte-safe bounds.
func snippetAround(text string, start, end, pad int) string {
	lo := start - pad
	if lo < 0 {
		lo = 0
	}
	hi := end + pad
	if hi > len(text) {
		hi = len(text)
	}
	for lo < hi && !utf8.RuneStart(text[lo]) {
		lo++
	}
	for hi > lo && hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi--
	}
	return strings.TrimSpace(text[lo:hi])
}
