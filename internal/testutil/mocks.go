package testutil

import (
	"context"

	"docsimplify/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock for DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

// MockSimplifier is a mock for Simplifier
type MockSimplifier struct {
	mock.Mock
}

func (m *MockSimplifier) Simplify(ctx context.Context, file *domain.FileUpload) (*domain.SimplifyResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimplifyResult), args.Error(1)
}
