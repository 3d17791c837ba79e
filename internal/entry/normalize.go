package entry

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries separate words in the visible
// text. Inline elements (b, em, span, a, ...) do not.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true,
	"ul": true,
}

// skippedTags are elements whose text content is never visible.
var skippedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// StripHTML reduces rich-text markup to plain text for searching: tags are
// removed, entities decoded, and block boundaries collapse to single
// spaces so the relative order and word boundaries of visible text
// survive. Empty or malformed markup yields "" rather than an error.
func StripHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	tok := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	skipDepth := 0

	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			// The tokenizer is forgiving; any error (io.EOF included)
			// ends the walk and we keep whatever text was collected.
			return collapseWhitespace(b.String())
		case html.TextToken:
			if skipDepth == 0 {
				// Text() returns the token with entities decoded.
				b.Write(tok.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := tok.TagName()
			tag := string(name)
			if skippedTags[tag] {
				if tt == html.StartTagToken {
					skipDepth++
				} else if tt == html.EndTagToken && skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

// collapseWhitespace trims and squeezes runs of whitespace to one space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
