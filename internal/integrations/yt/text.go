package yt

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var extraSpace = regexp.MustCompile(`\s+`)

// A complete tag at the start of the input, i.e. <i> or </font>
var leadingTag = regexp.MustCompile(`^</?[a-zA-Z][^<>]*>`)

// Strip every tag, keep the text
var strictPolicy = bluemonday.StrictPolicy()

// cleanText turns the raw inner XML of a caption line into plain text.
// Markup arrives escaped once (&lt;i&gt;), text entities often twice (&amp;#39;).
func cleanText(raw string) string {
	text := html.UnescapeString(raw)
	text = escapeStrayLT(text)
	text = strictPolicy.Sanitize(text)
	text = html.UnescapeString(text)
	text = extraSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// escapeStrayLT escapes every '<' that does not open a complete tag,
// so a literal "x<y" is kept as text and not parsed as the tag <y>.
func escapeStrayLT(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && !leadingTag.MatchString(s[i:]) {
			sb.WriteString("&lt;")
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
