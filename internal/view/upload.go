package view

import (
	"context"
	"errors"
	"sync"

	"docsimplify/internal/domain"
	"docsimplify/internal/export"
	"docsimplify/internal/reveal"
	"docsimplify/internal/service"

	"go.uber.org/zap"
)

// ErrClosed is returned by operations on a closed view
var ErrClosed = errors.New("view closed")

const subscriberBuffer = 64

// EventType identifies what changed in an UploadView
type EventType string

const (
	EventState  EventType = "state"
	EventReveal EventType = "reveal"
)

// Event is pushed to subscribers on every state change and reveal tick
type Event struct {
	Type   EventType
	State  domain.UploadState
	Reveal domain.RevealState
}

// UploadView is the upload-and-reveal controller
type UploadView struct {
	simplifier service.Simplifier
	engine     *reveal.Engine
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        domain.UploadState
	task         *reveal.Task
	typed        string
	gen          uint64
	cancelUpload context.CancelFunc
	closed       bool

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// NewUploadView creates a view in its initial state
func NewUploadView(simplifier service.Simplifier, engine *reveal.Engine, logger *zap.Logger) *UploadView {
	ctx, cancel := context.WithCancel(context.Background())
	return &UploadView{
		simplifier: simplifier,
		engine:     engine,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		state:      domain.UploadState{OriginalText: domain.InitialOriginalText},
		subs:       make(map[int]chan Event),
	}
}

// Context is cancelled when the view closes
func (v *UploadView) Context() context.Context {
	return v.ctx
}

// State returns a snapshot including the currently revealed text
func (v *UploadView) State() domain.UploadState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *UploadView) snapshotLocked() domain.UploadState {
	s := v.state
	if v.task != nil {
		s.TypedOutput = v.task.State().Revealed
	} else {
		s.TypedOutput = v.typed
	}
	return s
}

// stopRevealLocked cancels the running reveal and keeps what was shown so far.
func (v *UploadView) stopRevealLocked() {
	if v.task == nil {
		return
	}
	v.task.Stop()
	v.typed = v.task.State().Revealed
	v.task = nil
}

// Upload processes a selected file. A missing file is a no-op.
// It blocks until processing finishes. Only the most recent upload may update
// the view; results of superseded uploads are dropped.
func (v *UploadView) Upload(ctx context.Context, file *domain.FileUpload) error {
	if !file.Present() {
		return nil
	}
	if !file.HasAcceptedExtension() {
		v.logger.Warn("File outside accepted extensions",
			zap.String("file_name", file.Name),
			zap.Strings("accepted", domain.AcceptedExtensions),
		)
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if v.cancelUpload != nil {
		v.cancelUpload()
	}
	v.cancelUpload = cancel
	v.gen++
	gen := v.gen
	v.stopRevealLocked()
	v.state.Loading = true
	v.state.FileName = file.Name
	v.state.Err = ""
	snapshot := v.snapshotLocked()
	v.mu.Unlock()

	v.publish(Event{Type: EventState, State: snapshot})

	v.logger.Info("Upload started",
		zap.String("file_name", file.Name),
		zap.Uint64("generation", gen),
	)

	stop := context.AfterFunc(v.ctx, cancel)
	defer stop()

	result, err := v.simplifier.Simplify(ctx, file)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if gen != v.gen {
		v.mu.Unlock()
		v.logger.Debug("Dropping superseded upload result",
			zap.String("file_name", file.Name),
			zap.Uint64("generation", gen),
		)
		return nil
	}

	v.cancelUpload = nil
	v.state.Loading = false
	if err != nil {
		v.state.Err = err.Error()
		snapshot = v.snapshotLocked()
		v.mu.Unlock()

		v.logger.Error("Upload failed", zap.String("file_name", file.Name), zap.Error(err))
		v.publish(Event{Type: EventState, State: snapshot})
		return err
	}

	v.state.OriginalText = result.OriginalText
	v.state.TranslatedText = result.SimplifiedText
	v.typed = ""
	v.task = v.engine.Start(v.ctx, result.SimplifiedText, v.onTick)
	snapshot = v.snapshotLocked()
	v.mu.Unlock()

	v.logger.Info("Upload completed",
		zap.String("file_name", file.Name),
		zap.Int("simplified_length", len(result.SimplifiedText)),
	)
	v.publish(Event{Type: EventState, State: snapshot})
	return nil
}

// onTick runs on the reveal goroutine and must not take v.mu.
func (v *UploadView) onTick(state domain.RevealState) {
	v.publish(Event{Type: EventReveal, Reveal: state})
}

// Download packages the final simplified text
func (v *UploadView) Download() (*export.Artifact, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.state.CanDownload() {
		return nil, domain.ErrEmptyText
	}
	return export.New(v.state.TranslatedText)
}

// Subscribe returns a channel of events and a function that ends the
// subscription. Slow subscribers miss events; every reveal event carries the
// full prefix so a later event supersedes a missed one.
func (v *UploadView) Subscribe() (<-chan Event, func()) {
	v.subMu.Lock()
	defer v.subMu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if v.subs == nil {
		close(ch)
		return ch, func() {}
	}

	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.subMu.Lock()
			defer v.subMu.Unlock()
			if c, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(c)
			}
		})
	}
}

func (v *UploadView) publish(e Event) {
	v.subMu.Lock()
	defer v.subMu.Unlock()

	for id, ch := range v.subs {
		select {
		case ch <- e:
		default:
			v.logger.Debug("Subscriber lagging, event dropped", zap.Int("subscriber", id))
		}
	}
}

// Close stops the reveal, cancels a pending upload and ends all subscriptions
func (v *UploadView) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.stopRevealLocked()
	v.mu.Unlock()

	v.cancel()

	v.subMu.Lock()
	for id, ch := range v.subs {
		delete(v.subs, id)
		close(ch)
	}
	v.subs = nil
	v.subMu.Unlock()
}
