// Package highlight splits simplified text into plain and highlighted segments.
//
// A highlighted span is text wrapped in a pair of "~" markers. Only fully paired
// markers are recognised; an unmatched marker stays in the surrounding plain text.
package highlight

import (
	"html"
	"regexp"
	"strings"

	"docsimplify/internal/domain"
)

var spanPattern = regexp.MustCompile(`~.*?~`)

// Split breaks text into segments in source order. Empty pieces are dropped.
func Split(text string) []domain.Segment {
	var segments []domain.Segment

	last := 0
	for _, loc := range spanPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, domain.Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, classify(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, domain.Segment{Text: text[last:]})
	}

	return compact(segments)
}

func classify(chunk string) domain.Segment {
	if len(chunk) >= 2 && strings.HasPrefix(chunk, domain.Marker) && strings.HasSuffix(chunk, domain.Marker) {
		return domain.Segment{
			Text:        strings.ReplaceAll(chunk, domain.Marker, ""),
			Highlighted: true,
		}
	}
	return domain.Segment{Text: chunk}
}

func compact(segments []domain.Segment) []domain.Segment {
	out := segments[:0]
	for _, s := range segments {
		if s.Text != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Tag wraps highlighted segments in HTML
type Tag struct {
	Open  string
	Close string
}

var (
	// WebTag renders highlights as a styled span
	WebTag = Tag{Open: `<span class="highlight">`, Close: `</span>`}

	// TelegramTag renders highlights with Telegram's strikethrough markup
	TelegramTag = Tag{Open: "<s>", Close: "</s>"}
)

// HTML renders segments as escaped HTML
func HTML(segments []domain.Segment, tag Tag) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Highlighted {
			b.WriteString(tag.Open)
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString(tag.Close)
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	return b.String()
}

// Render is Split followed by HTML
func Render(text string, tag Tag) string {
	return HTML(Split(text), tag)
}
