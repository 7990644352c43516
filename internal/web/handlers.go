package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"docsimplify/internal/domain"
	"docsimplify/internal/highlight"
	"docsimplify/internal/view"

	"go.uber.org/zap"
)

// stateResponse is the JSON form of an upload state
type stateResponse struct {
	Loading        bool   `json:"loading"`
	FileName       string `json:"fileName"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	TypedOutput    string `json:"typedOutput"`
	TypedHTML      string `json:"typedHTML"`
	CanDownload    bool   `json:"canDownload"`
	Error          string `json:"error,omitempty"`
}

func newStateResponse(s domain.UploadState) stateResponse {
	return stateResponse{
		Loading:        s.Loading,
		FileName:       s.FileName,
		OriginalText:   s.OriginalText,
		TranslatedText: s.TranslatedText,
		TypedOutput:    s.TypedOutput,
		TypedHTML:      highlight.Render(s.TypedOutput, highlight.WebTag),
		CanDownload:    s.CanDownload(),
		Error:          s.Err,
	}
}

type uploadPage struct {
	State     domain.UploadState
	TypedHTML template.HTML
	Accept    string
}

type historyPage struct {
	History      view.HistorySnapshot
	EmptyMessage string
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := SessionFrom(r.Context()).Upload.State()
	s.render(w, "upload.html", uploadPage{
		State:     state,
		TypedHTML: template.HTML(highlight.Render(state.TypedOutput, highlight.WebTag)),
		Accept:    strings.Join(domain.AcceptedExtensions, ","),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newStateResponse(SessionFrom(r.Context()).Upload.State()))
}

// handleUpload accepts the selected file and processes it in the background.
// A request without a file changes nothing.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			w.WriteHeader(http.StatusNoContent)
		default:
			s.writeError(w, http.StatusBadRequest, "Invalid upload")
		}
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	upload := &domain.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}
	if !upload.Present() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	uv := sess.Upload
	go func() {
		if err := uv.Upload(uv.Context(), upload); err != nil && !errors.Is(err, view.ErrClosed) {
			s.logger.Warn("Background upload failed",
				zap.String("session_id", sess.ID),
				zap.String("file_name", upload.Name),
				zap.Error(err),
			)
		}
	}()

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]string{"fileName": upload.Name})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	artifact, err := SessionFrom(r.Context()).Upload.Download()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "Download failed")
		return
	}
	artifact.ServeHTTP(w, r)
}

// handleHistory fetches the history once per page load. Fetch errors are
// logged by the view and shown next to a retry link.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	hv := SessionFrom(r.Context()).History
	_ = hv.Activate(r.Context())

	s.render(w, "history.html", historyPage{
		History:      hv.Snapshot(),
		EmptyMessage: view.NoDocumentsMessage,
	})
}
