package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocument_SavedOnString(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "afternoon",
			date:     time.Date(2024, 12, 12, 15, 4, 5, 0, time.Local),
			expected: "12/12/2024, 3:04:05 PM",
		},
		{
			name:     "midnight",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			expected: "1/1/2024, 12:00:00 AM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{CreatedAt: tt.date}
			assert.Equal(t, tt.expected, doc.SavedOnString())
		})
	}
}
