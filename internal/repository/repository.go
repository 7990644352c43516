package repository

import (
	"context"

	"docsimplify/internal/domain"
)

// DocumentRepository defines read access to processed documents
type DocumentRepository interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
