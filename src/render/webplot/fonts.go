package webplot

import (
	"fmt"
	"net/url"
	"regexp"
)

var headTag = regexp.MustCompile(`(?i)<head[^>]*>`)

// injectFontLink adds a Google Fonts stylesheet link for the configured
// family to the page head and applies the family to the whole document. The
// page is left untouched when no family is set or no head element exists.
func injectFontLink(html []byte, family string) []byte {
	if family == "" {
		return html
	}
	loc := headTag.FindIndex(html)
	if loc == nil {
		return html
	}
	snippet := fmt.Sprintf(
		"\n<link href=\"https://fonts.googleapis.com/css2?family=%s&display=swap\" rel=\"stylesheet\">"+
			"\n<style>body { font-family: '%s', sans-serif; }</style>",
		url.QueryEscape(family), family)
	out := make([]byte, 0, len(html)+len(snippet))
	out = append(out, html[:loc[1]]...)
	out = append(out, snippet...)
	out = append(out, html[loc[1]:]...)
	return out
}
