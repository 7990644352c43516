package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docsimplify/internal/domain"
)

// DocumentRepo implements repository.DocumentRepository
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// ListDocuments returns every document, newest first
func (r *DocumentRepo) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	query := `
		SELECT id, original_text, simplified_text, created_at
		FROM documents
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var d domain.Document
		var original, simplified sql.NullString
		if err := rows.Scan(&d.ID, &original, &simplified, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.OriginalText = original.String
		d.SimplifiedText = simplified.String
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}
