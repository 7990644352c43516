package service

import (
	"context"
	"time"

	"docsimplify/internal/domain"

	"go.uber.org/zap"
)

// DefaultUploadDelay is the simulated processing latency
const DefaultUploadDelay = 2000 * time.Millisecond

// Simplifier turns an uploaded file into original and simplified text
type Simplifier interface {
	Simplify(ctx context.Context, file *domain.FileUpload) (*domain.SimplifyResult, error)
}

// MockSimplifier waits a fixed delay and returns placeholder text.
// File content is never read.
type MockSimplifier struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewMockSimplifier creates a mock simplifier
func NewMockSimplifier(delay time.Duration, logger *zap.Logger) *MockSimplifier {
	if delay < 0 {
		delay = DefaultUploadDelay
	}
	return &MockSimplifier{delay: delay, logger: logger}
}

// Simplify implements Simplifier
func (s *MockSimplifier) Simplify(ctx context.Context, file *domain.FileUpload) (*domain.SimplifyResult, error) {
	if !file.Present() {
		return nil, domain.ErrNoFile
	}

	s.logger.Debug("Simulating document processing",
		zap.String("file_name", file.Name),
		zap.Int("size", len(file.Content)),
		zap.Duration("delay", s.delay),
	)

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, &domain.SimplifyError{FileName: file.Name, Err: ctx.Err()}
	case <-timer.C:
	}

	return &domain.SimplifyResult{
		OriginalText:   domain.PlaceholderOriginalText,
		SimplifiedText: domain.PlaceholderSimplifiedText,
	}, nil
}
