package testutil

import (
	"time"

	"docsimplify/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestDocument creates a test document
func NewTestDocument(id int64, original, simplified string, createdAt time.Time) domain.Document {
	return domain.Document{
		ID:             id,
		OriginalText:   original,
		SimplifiedText: simplified,
		CreatedAt:      createdAt,
	}
}

// NewTestFile creates a test upload with a small body
func NewTestFile(name string) *domain.FileUpload {
	return &domain.FileUpload{
		Name:        name,
		ContentType: "application/octet-stream",
		Content:     []byte("%PDF-1.4 test"),
	}
}
