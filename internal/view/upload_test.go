package view

import (
	"context"
	"fmt"
	"testing"
	"time"

	"docsimplify/internal/domain"
	"docsimplify/internal/reveal"
	"docsimplify/internal/service"
	"docsimplify/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTick = time.Millisecond

func newTestUploadView(s service.Simplifier) *UploadView {
	return NewUploadView(s, reveal.NewEngine(testTick), testutil.NewTestLogger())
}

// gatedSimplifier blocks each call until released
type gatedSimplifier struct {
	calls   chan *domain.FileUpload
	release chan *domain.SimplifyResult
}

func newGatedSimplifier() *gatedSimplifier {
	return &gatedSimplifier{
		calls:   make(chan *domain.FileUpload, 4),
		release: make(chan *domain.SimplifyResult, 4),
	}
}

func (g *gatedSimplifier) Simplify(ctx context.Context, file *domain.FileUpload) (*domain.SimplifyResult, error) {
	g.calls <- file
	select {
	case <-ctx.Done():
		return nil, &domain.SimplifyError{FileName: file.Name, Err: ctx.Err()}
	case r := <-g.release:
		return r, nil
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 5*time.Second, time.Millisecond)
}

func TestUploadView_InitialState(t *testing.T) {
	v := newTestUploadView(new(testutil.MockSimplifier))
	defer v.Close()

	s := v.State()
	assert.False(t, s.Loading)
	assert.Empty(t, s.FileName)
	assert.Equal(t, domain.InitialOriginalText, s.OriginalText)
	assert.Empty(t, s.TranslatedText)
	assert.Empty(t, s.TypedOutput)
}

func TestUploadView_NoFileIsNoop(t *testing.T) {
	tests := []struct {
		name string
		file *domain.FileUpload
	}{
		{name: "nil file", file: nil},
		{name: "empty selection", file: &domain.FileUpload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSimplifier := new(testutil.MockSimplifier)
			v := newTestUploadView(mockSimplifier)
			defer v.Close()

			err := v.Upload(context.Background(), tt.file)

			assert.NoError(t, err)
			assert.Equal(t, domain.InitialOriginalText, v.State().OriginalText)
			assert.False(t, v.State().Loading)
			mockSimplifier.AssertNotCalled(t, "Simplify", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadView_ReportScenario(t *testing.T) {
	v := newTestUploadView(service.NewMockSimplifier(10*time.Millisecond, testutil.NewTestLogger()))
	defer v.Close()

	events, unsubscribe := v.Subscribe()
	defer unsubscribe()

	err := v.Upload(context.Background(), testutil.NewTestFile("report.pdf"))
	require.NoError(t, err)

	s := v.State()
	assert.Equal(t, "report.pdf", s.FileName)
	assert.False(t, s.Loading)
	assert.Equal(t, domain.PlaceholderOriginalText, s.OriginalText)
	assert.Equal(t, domain.PlaceholderSimplifiedText, s.TranslatedText)

	var prefixes []string
	var loadingSeen bool
	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case e := <-events:
			switch e.Type {
			case EventState:
				if e.State.Loading {
					loadingSeen = true
					assert.Equal(t, "report.pdf", e.State.FileName)
				}
			case EventReveal:
				prefixes = append(prefixes, e.Reveal.Revealed)
				done = e.Reveal.Finished()
			}
		case <-deadline:
			t.Fatal("reveal did not finish")
		}
	}

	assert.True(t, loadingSeen)
	require.NotEmpty(t, prefixes)
	assert.Equal(t, "S", prefixes[0])
	assert.Equal(t, domain.PlaceholderSimplifiedText, prefixes[len(prefixes)-1])
	assert.Equal(t, domain.PlaceholderSimplifiedText, v.State().TypedOutput)
}

func TestUploadView_LoadingWhilePending(t *testing.T) {
	g := newGatedSimplifier()
	v := newTestUploadView(g)
	defer v.Close()

	errc := make(chan error, 1)
	go func() { errc <- v.Upload(context.Background(), testutil.NewTestFile("scan.png")) }()

	<-g.calls
	s := v.State()
	assert.True(t, s.Loading)
	assert.Equal(t, "scan.png", s.FileName)
	assert.False(t, s.CanDownload())

	g.release <- &domain.SimplifyResult{OriginalText: "o", SimplifiedText: "ab"}
	require.NoError(t, <-errc)

	waitFor(t, func() bool { return v.State().TypedOutput == "ab" })
}

func TestUploadView_SupersededUploadIsDropped(t *testing.T) {
	g := newGatedSimplifier()
	v := newTestUploadView(g)
	defer v.Close()

	first := make(chan error, 1)
	go func() { first <- v.Upload(context.Background(), testutil.NewTestFile("first.pdf")) }()
	<-g.calls

	second := make(chan error, 1)
	go func() { second <- v.Upload(context.Background(), testutil.NewTestFile("second.pdf")) }()
	<-g.calls

	// The first upload is cancelled once the second one starts.
	assert.NoError(t, <-first)
	assert.True(t, v.State().Loading)

	g.release <- &domain.SimplifyResult{OriginalText: "second", SimplifiedText: "two"}
	require.NoError(t, <-second)

	s := v.State()
	assert.Equal(t, "second.pdf", s.FileName)
	assert.Equal(t, "second", s.OriginalText)
	assert.Equal(t, "two", s.TranslatedText)
}

func TestUploadView_NewUploadRestartsReveal(t *testing.T) {
	g := newGatedSimplifier()
	v := NewUploadView(g, reveal.NewEngine(5*time.Millisecond), testutil.NewTestLogger())
	defer v.Close()

	go func() { _ = v.Upload(context.Background(), testutil.NewTestFile("a.pdf")) }()
	<-g.calls
	g.release <- &domain.SimplifyResult{SimplifiedText: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	waitFor(t, func() bool { return len(v.State().TypedOutput) >= 2 })

	errc := make(chan error, 1)
	go func() { errc <- v.Upload(context.Background(), testutil.NewTestFile("b.pdf")) }()
	<-g.calls

	// The old reveal is stopped but what it showed stays until the new text arrives.
	frozen := v.State().TypedOutput
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frozen, v.State().TypedOutput)

	events, unsubscribe := v.Subscribe()
	defer unsubscribe()

	g.release <- &domain.SimplifyResult{SimplifiedText: "bbb"}
	require.NoError(t, <-errc)

	for e := range events {
		if e.Type == EventReveal {
			assert.NotContains(t, e.Reveal.Revealed, "a")
			if e.Reveal.Finished() {
				break
			}
		}
	}
	assert.Equal(t, "bbb", v.State().TypedOutput)
}

func TestUploadView_FailureSetsError(t *testing.T) {
	mockSimplifier := new(testutil.MockSimplifier)
	file := testutil.NewTestFile("report.pdf")
	mockSimplifier.On("Simplify", mock.Anything, file).Return(nil, fmt.Errorf("service unavailable"))

	v := newTestUploadView(mockSimplifier)
	defer v.Close()

	err := v.Upload(context.Background(), file)

	assert.Error(t, err)
	s := v.State()
	assert.False(t, s.Loading)
	assert.Equal(t, "service unavailable", s.Err)
	assert.Equal(t, domain.InitialOriginalText, s.OriginalText)
	mockSimplifier.AssertExpectations(t)
}

func TestUploadView_Download(t *testing.T) {
	mockSimplifier := new(testutil.MockSimplifier)
	file := testutil.NewTestFile("report.pdf")
	mockSimplifier.On("Simplify", mock.Anything, file).Return(&domain.SimplifyResult{
		OriginalText:   "original",
		SimplifiedText: "simple ~text~",
	}, nil)

	v := newTestUploadView(mockSimplifier)
	defer v.Close()

	_, err := v.Download()
	assert.ErrorIs(t, err, domain.ErrEmptyText)

	require.NoError(t, v.Upload(context.Background(), file))

	artifact, err := v.Download()
	require.NoError(t, err)
	assert.Equal(t, "simplified.txt", artifact.Name)
	assert.Equal(t, len("simple ~text~"), artifact.Size())
}

func TestUploadView_CloseStopsEverything(t *testing.T) {
	g := newGatedSimplifier()
	v := NewUploadView(g, reveal.NewEngine(5*time.Millisecond), testutil.NewTestLogger())

	events, _ := v.Subscribe()

	go func() { _ = v.Upload(context.Background(), testutil.NewTestFile("a.pdf")) }()
	<-g.calls
	g.release <- &domain.SimplifyResult{SimplifiedText: "a long text that will still be revealing"}
	waitFor(t, func() bool { return v.State().TypedOutput != "" })

	v.Close()
	frozen := v.State().TypedOutput
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, v.State().TypedOutput)

	// Drain: the channel must be closed.
	for range events {
	}

	assert.ErrorIs(t, v.Upload(context.Background(), testutil.NewTestFile("b.pdf")), ErrClosed)
	v.Close()
}

func TestUploadView_CloseCancelsPendingUpload(t *testing.T) {
	g := newGatedSimplifier()
	v := newTestUploadView(g)

	errc := make(chan error, 1)
	go func() { errc <- v.Upload(context.Background(), testutil.NewTestFile("a.pdf")) }()
	<-g.calls

	v.Close()
	assert.ErrorIs(t, <-errc, ErrClosed)
}

func TestUploadView_SubscribeAfterClose(t *testing.T) {
	v := newTestUploadView(new(testutil.MockSimplifier))
	v.Close()

	events, unsubscribe := v.Subscribe()
	_, open := <-events
	assert.False(t, open)
	unsubscribe()
}
