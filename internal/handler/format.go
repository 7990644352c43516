package handler

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"docsimplify/internal/highlight"
	"docsimplify/internal/view"
)

const (
	// Telegram caps messages at 4096 characters
	maxMessageRunes = 4000
	maxEntryRunes   = 500
)

// truncateRunes shortens s to at most n runes, marking the cut with an ellipsis
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

// formatReveal renders revealed text as Telegram HTML
func formatReveal(text string) string {
	return highlight.Render(truncateRunes(text, maxMessageRunes), highlight.TelegramTag)
}

// formatHistory renders the history list as one Telegram HTML message
func formatHistory(s view.HistorySnapshot) string {
	var b strings.Builder
	b.WriteString("📚 <b>Document History</b>\n\n")

	if s.Err != "" {
		b.WriteString("⚠️ Could not load history. Tap History to retry.\n\n")
	}
	if s.Empty() {
		b.WriteString(view.NoDocumentsMessage)
		return b.String()
	}

	size := utf8.RuneCountInString(b.String())
	for i, doc := range s.Documents {
		entry := fmt.Sprintf("<b>Original</b>\n%s\n<b>Simplified</b>\n%s\n<i>Saved on: %s</i>\n\n",
			html.EscapeString(truncateRunes(doc.OriginalText, maxEntryRunes)),
			highlight.Render(truncateRunes(doc.SimplifiedText, maxEntryRunes), highlight.TelegramTag),
			doc.SavedOnString(),
		)
		n := utf8.RuneCountInString(entry)
		if size+n > maxMessageRunes {
			fmt.Fprintf(&b, "…and %d more", len(s.Documents)-i)
			break
		}
		b.WriteString(entry)
		size += n
	}

	return strings.TrimRight(b.String(), "\n")
}

// isNotModified reports whether an edit failed only because nothing changed
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
