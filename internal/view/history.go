package view

import (
	"context"
	"sync"

	"docsimplify/internal/domain"

	"go.uber.org/zap"
)

// NoDocumentsMessage is shown when the history is empty
const NoDocumentsMessage = "No documents found yet."

// HistorySource lists processed documents newest first
type HistorySource interface {
	ListHistory(ctx context.Context) ([]domain.Document, error)
}

// HistorySnapshot is what the history screen renders
type HistorySnapshot struct {
	Documents []domain.Document
	Err       string
}

// Empty reports whether there is nothing to list
func (s HistorySnapshot) Empty() bool {
	return len(s.Documents) == 0
}

// HistoryView is the history controller
type HistoryView struct {
	source HistorySource
	logger *zap.Logger

	mu        sync.Mutex
	documents []domain.Document
	lastErr   error
	gen       uint64
}

// NewHistoryView creates an empty history view
func NewHistoryView(source HistorySource, logger *zap.Logger) *HistoryView {
	return &HistoryView{source: source, logger: logger}
}

// Activate fetches the full history once. On failure the previous list is
// kept. When activations overlap only the latest one applies its result.
func (v *HistoryView) Activate(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	docs, err := v.source.ListHistory(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		v.logger.Debug("Discarding stale history fetch", zap.Uint64("generation", gen))
		return nil
	}

	if err != nil {
		v.logger.Error("Error fetching history", zap.Error(err))
		v.lastErr = err
		return err
	}

	v.documents = docs
	v.lastErr = nil
	v.logger.Debug("History loaded", zap.Int("count", len(docs)))
	return nil
}

// Snapshot returns a copy of the current list
func (v *HistoryView) Snapshot() HistorySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := HistorySnapshot{Documents: append([]domain.Document(nil), v.documents...)}
	if v.lastErr != nil {
		s.Err = v.lastErr.Error()
	}
	return s
}
