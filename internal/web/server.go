// Package web serves the upload-and-reveal and history screens over HTTP.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"docsimplify/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxUploadSize bounds the multipart body of an upload
const maxUploadSize = 20 << 20

// Server holds the HTTP handlers
type Server struct {
	sessions  *SessionStore
	limiter   *middleware.RateLimiter
	logger    *zap.Logger
	templates *template.Template
	upgrader  websocket.Upgrader
}

// NewServer parses the page templates and creates a server
func NewServer(sessions *SessionStore, limiter *middleware.RateLimiter, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		sessions:  sessions,
		limiter:   limiter,
		logger:    logger,
		templates: tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	r.Use(middleware.RequestLogging(s.logger))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)

		r.Get("/", s.handleIndex)
		r.Get("/state", s.handleState)
		r.Get("/ws", s.handleWebSocket)
		r.Get("/download", s.handleDownload)
		r.Get("/history", s.handleHistory)

		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(middleware.RateLimit(s.limiter))
			}
			r.Post("/upload", s.handleUpload)
		})
	})

	return r
}
