package ecommerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "  just   text ", "just text"},
		{"paragraphs", "<p>Soft cotton.</p><p>Machine  washable</p>", "Soft cotton. Machine washable"},
		{"entities", "<p>Fish &amp; Chips &lt;3</p>", "Fish & Chips <3"},
		{"script dropped", "<p>Hi</p><script>alert(1)</script><style>p{}</style>", "Hi"},
		{"line breaks", "Line one<br/>Line\n\ttwo", "Line one Line two"},
		{"inline tags", "<strong>Bold</strong><em>er</em>", "Bolder"},
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.input))
		})
	}
}

func TestRichTextRoundTrip(t *testing.T) {
	s := "Fish & Chips <3"
	assert.Equal(t, s, PlainText(richText(s)))
	assert.Empty(t, richText(""))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"summer", "sale", "summer"}, SplitTags(" summer, sale,,summer ,"))
	assert.Empty(t, SplitTags(""))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected decimal.Decimal
	}{
		{"99.00", decimal.NewFromFloat(99.00)},
		{"0.01", decimal.NewFromFloat(0.01)},
		{" 29.99 ", decimal.NewFromFloat(29.99)},
		{"", decimal.Zero},
		{"invalid", decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseDecimal(tt.input)
			assert.True(t, result.Equal(tt.expected), "expected %s but got %s", tt.expected.String(), result.String())
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.00", formatPrice(decimal.NewFromInt(10)))
	assert.Equal(t, "29.99", formatPrice(decimal.RequireFromString("29.99")))
	assert.Nil(t, formatPricePtr(nil))
}
