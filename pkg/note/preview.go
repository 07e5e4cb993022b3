package note

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/muesli/reflow/truncate"
)

// PreviewWidth is the default preview length used by list views.
const PreviewWidth = 30

var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from the serialized content.
func PlainText(content string) string {
	text := html.UnescapeString(strict.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// Preview returns the first width cells of the note's plain text, or
// "Empty note" when there is nothing to show.
func (n *Note) Preview(width int) string {
	if width <= 0 {
		width = PreviewWidth
	}
	text := PlainText(n.Content)
	if text == "" {
		return "Empty note"
	}
	return truncate.String(text, uint(width))
}

// FromText serializes plain text as editor content, one paragraph per
// blank-line separated block.
func FromText(text string) string {
	var b strings.Builder
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(para))
		b.WriteString("</p>")
	}
	if b.Len() == 0 {
		return EmptyContent
	}
	return b.String()
}
