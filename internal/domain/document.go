package domain

import "time"

// Document is a processed original/simplified text pair from the documents table
type Document struct {
	ID             int64
	OriginalText   string
	SimplifiedText string
	CreatedAt      time.Time
}

// SavedOnString returns the timestamp shown under a history entry
func (d Document) SavedOnString() string {
	return d.CreatedAt.Local().Format("1/2/2006, 3:04:05 PM")
}
