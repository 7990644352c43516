package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"docsimplify/internal/reveal"
	"docsimplify/internal/service"
	"docsimplify/internal/testutil"
	"docsimplify/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func newTestStore(ttl time.Duration) *SessionStore {
	logger := testutil.NewTestLogger()
	return NewSessionStore(ttl, NewSessionFactory(
		service.NewMockSimplifier(time.Millisecond, logger),
		reveal.NewEngine(time.Millisecond),
		staticHistory{},
		logger,
	), logger)
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := newTestStore(time.Minute)
	defer store.Close()

	s := store.Create()
	got, ok := store.Get(s.ID)

	assert.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, store.Count())

	_, ok = store.Get("unknown")
	assert.False(t, ok)
}

func TestSessionStore_CloseTearsDownViews(t *testing.T) {
	store := newTestStore(time.Minute)
	s := store.Create()

	store.Close()

	assert.Equal(t, 0, store.Count())
	assert.ErrorIs(t, s.Upload.Upload(context.Background(), testutil.NewTestFile("a.pdf")), view.ErrClosed)
	assert.Error(t, s.Upload.Context().Err())
}

func TestSessionStore_ExpiredSessionsAreClosed(t *testing.T) {
	store := newTestStore(20 * time.Millisecond)
	defer store.Close()

	s := store.Create()

	require.Eventually(t, func() bool {
		return s.Upload.Context().Err() != nil
	}, 5*time.Second, 5*time.Millisecond)
}

func TestSessionStore_Middleware(t *testing.T) {
	store := newTestStore(time.Minute)
	defer store.Close()

	var seen *Session
	handler := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, seen)
	first := seen

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, first.ID, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Same(t, first, seen)
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotSame(t, first, seen)
}
