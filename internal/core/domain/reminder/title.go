package reminder

import (
	"regexp"
)

type quoteFamily struct {
	opening string
	closing string
}

// Ordered by priority, the first family that matches wins.
var quoteFamilies = []quoteFamily{
	{opening: `"`, closing: `"`},
	{opening: "“", closing: "”"},
	{opening: `'`, closing: `'`},
	{opening: "‘", closing: "’"},
	{opening: "«", closing: "»"},
	{opening: "‹", closing: "›"},
	{opening: "„", closing: "“"},
	{opening: "‚", closing: "‘"},
	{opening: "「", closing: "」"},
	{opening: "『", closing: "』"},
	{opening: "《", closing: "》"},
	{opening: "”", closing: "”"},
}

var quotePatterns = compileQuotePatterns(quoteFamilies)

func compileQuotePatterns(families []quoteFamily) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(families))
	for _, f := range families {
		opening := regexp.QuoteMeta(f.opening)
		closing := regexp.QuoteMeta(f.closing)
		patterns = append(patterns, regexp.MustCompile(opening+`([^`+closing+`]+)`+closing))
	}
	return patterns
}

// ExtractTitle returns the interior of the first quoted span in text.
// A title can't contain the closing glyph of its own quote family.
func ExtractTitle(text string) (string, error) {
	for _, pattern := range quotePatterns {
		match := pattern.FindStringSubmatch(text)
		if match != nil {
			return match[1], nil
		}
	}
	return "", ErrTitleNotFound
}
