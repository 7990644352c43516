package handler

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"docsimplify/internal/domain"
	"docsimplify/internal/testutil"
	"docsimplify/internal/view"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{name: "shorter", input: "abc", n: 5, expected: "abc"},
		{name: "exact", input: "abcde", n: 5, expected: "abcde"},
		{name: "longer", input: "abcdef", n: 5, expected: "abcd…"},
		{name: "multibyte", input: "привет мир", n: 4, expected: "при…"},
		{name: "zero", input: "abc", n: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateRunes(tt.input, tt.n))
		})
	}
}

func TestFormatReveal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Hello", expected: "Hello"},
		{name: "highlight", input: "a ~b~ c", expected: "a <s>b</s> c"},
		{name: "partial marker", input: "a ~b", expected: "a ~b"},
		{name: "escapes", input: "1 < 2 & ~x>y~", expected: "1 &lt; 2 &amp; <s>x&gt;y</s>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatReveal(tt.input))
		})
	}
}

func TestFormatHistory(t *testing.T) {
	createdAt := time.Date(2024, 12, 12, 15, 0, 0, 0, time.Local)

	t.Run("empty", func(t *testing.T) {
		text := formatHistory(view.HistorySnapshot{})
		assert.Contains(t, text, view.NoDocumentsMessage)
		assert.NotContains(t, text, "retry")
	})

	t.Run("error keeps list and offers retry", func(t *testing.T) {
		text := formatHistory(view.HistorySnapshot{
			Documents: []domain.Document{testutil.NewTestDocument(1, "orig", "simple", createdAt)},
			Err:       "connection refused",
		})
		assert.Contains(t, text, "retry")
		assert.Contains(t, text, "orig")
	})

	t.Run("rows in order", func(t *testing.T) {
		text := formatHistory(view.HistorySnapshot{Documents: []domain.Document{
			testutil.NewTestDocument(2, "newer <doc>", "newer ~simple~", createdAt),
			testutil.NewTestDocument(1, "older doc", "older simple", createdAt.Add(-time.Hour)),
		}})

		assert.NotContains(t, text, view.NoDocumentsMessage)
		assert.Contains(t, text, "newer &lt;doc&gt;")
		assert.Contains(t, text, "newer <s>simple</s>")
		assert.Contains(t, text, "Saved on: 12/12/2024, 3:00:00 PM")
		assert.Less(t, strings.Index(text, "newer"), strings.Index(text, "older"))
	})

	t.Run("long history is cut", func(t *testing.T) {
		docs := make([]domain.Document, 50)
		for i := range docs {
			docs[i] = testutil.NewTestDocument(int64(i), strings.Repeat("o", 200), strings.Repeat("s", 200), createdAt)
		}

		text := formatHistory(view.HistorySnapshot{Documents: docs})

		assert.LessOrEqual(t, utf8.RuneCountInString(text), maxMessageRunes+20)
		assert.Regexp(t, `…and \d+ more$`, text)
		assert.NotContains(t, text, fmt.Sprintf("…and %d more", len(docs)))
	})
}
