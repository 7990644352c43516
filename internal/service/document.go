package service

import (
	"context"
	"fmt"

	"docsimplify/internal/domain"
	"docsimplify/internal/repository"
)

// DocumentService handles document history
type DocumentService struct {
	docRepo repository.DocumentRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo repository.DocumentRepository) *DocumentService {
	return &DocumentService{docRepo: docRepo}
}

// ListHistory returns all processed documents, newest first.
// The repository order is kept as is.
func (s *DocumentService) ListHistory(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.docRepo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return docs, nil
}
