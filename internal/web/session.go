package web

import (
	"context"
	"net/http"
	"time"

	"docsimplify/internal/reveal"
	"docsimplify/internal/service"
	"docsimplify/internal/view"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// SessionCookie names the cookie holding the session ID
const SessionCookie = "docsimplify_session"

// Session groups the views of one browser
type Session struct {
	ID      string
	Upload  *view.UploadView
	History *view.HistoryView
}

// Close tears down the session's views
func (s *Session) Close() {
	s.Upload.Close()
}

// SessionFactory builds fresh views for a new session
type SessionFactory func(id string) *Session

// SessionStore keeps sessions in memory. Idle sessions expire after the TTL
// and are closed on eviction.
type SessionStore struct {
	sessions *cache.Cache
	factory  SessionFactory
	logger   *zap.Logger
}

// NewSessionStore creates a session store
func NewSessionStore(ttl time.Duration, factory SessionFactory, logger *zap.Logger) *SessionStore {
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, v interface{}) {
		logger.Debug("Session closed", zap.String("session_id", id))
		v.(*Session).Close()
	})
	return &SessionStore{sessions: c, factory: factory, logger: logger}
}

// Get returns a live session and refreshes its expiry
func (st *SessionStore) Get(id string) (*Session, bool) {
	v, ok := st.sessions.Get(id)
	if !ok {
		return nil, false
	}
	st.sessions.SetDefault(id, v)
	return v.(*Session), true
}

// Create starts a new session
func (st *SessionStore) Create() *Session {
	s := st.factory(uuid.New().String())
	st.sessions.SetDefault(s.ID, s)
	st.logger.Debug("Session created", zap.String("session_id", s.ID))
	return s
}

// Count returns the number of live sessions
func (st *SessionStore) Count() int {
	return st.sessions.ItemCount()
}

// Close closes every session
func (st *SessionStore) Close() {
	for id := range st.sessions.Items() {
		st.sessions.Delete(id)
	}
}

type sessionKey struct{}

// Middleware attaches the caller's session to the request context,
// creating one when the cookie is missing or stale.
func (st *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if c, err := r.Cookie(SessionCookie); err == nil {
			sess, _ = st.Get(c.Value)
		}
		if sess == nil {
			sess = st.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

// SessionFrom returns the session attached by Middleware
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// NewSessionFactory builds sessions backed by the given collaborators
func NewSessionFactory(
	simplifier service.Simplifier,
	engine *reveal.Engine,
	history view.HistorySource,
	logger *zap.Logger,
) SessionFactory {
	return func(id string) *Session {
		l := logger.With(zap.String("session_id", id))
		return &Session{
			ID:      id,
			Upload:  view.NewUploadView(simplifier, engine, l),
			History: view.NewHistoryView(history, l),
		}
	}
}
