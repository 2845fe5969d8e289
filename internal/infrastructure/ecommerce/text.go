package ecommerce

import (
	"html"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	xhtml "golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// blockElements end a line of text when stripped.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "section": true, "article": true, "blockquote": true,
}

// PlainText strips markup from a rich-text description and returns trimmed,
// whitespace-collapsed, NFC-normalized text. Script and style bodies are dropped.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			// io.EOF or malformed input; keep what was read
			return collapseWhitespace(norm.NFC.String(b.String()))
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tt == xhtml.StartTagToken && (tag == "script" || tag == "style") {
				skip++
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

// collapseWhitespace folds every whitespace run into one space and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// richText wraps plain text as a single escaped HTML paragraph.
func richText(s string) string {
	if s == "" {
		return ""
	}
	return "<p>" + html.EscapeString(s) + "</p>"
}

// SplitTags splits a comma-joined tag string into trimmed, non-empty tags.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// ---------------------------------------------------------------------------
// Decimal helpers
// ---------------------------------------------------------------------------

// ParseDecimal safely parses a string to decimal. Missing or unparsable
// values become zero.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseDecimalPtr parses an optional decimal. Empty or invalid input returns nil.
func parseDecimalPtr(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// formatPrice renders a price the way both platforms expect: a two-place string.
func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatPricePtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := formatPrice(*d)
	return &s
}
