// Package export builds the downloadable simplified.txt artifact.
package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"docsimplify/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	// FileName is the name of the downloaded artifact
	FileName = "simplified.txt"

	// ContentType is the MIME type of the artifact
	ContentType = "text/plain; charset=utf-8"
)

// Artifact is the final simplified text packaged as a file
type Artifact struct {
	Name        string
	ContentType string
	body        []byte
}

// New packages text. Empty text yields domain.ErrEmptyText.
func New(text string) (*Artifact, error) {
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	return &Artifact{
		Name:        FileName,
		ContentType: ContentType,
		body:        []byte(text),
	}, nil
}

// Size returns the artifact length in bytes
func (a *Artifact) Size() int {
	return len(a.body)
}

// ServeHTTP sends the artifact as an attachment
func (a *Artifact) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.body)
}

// Document wraps the artifact for sending through Telegram.
// The reader is released with the artifact once the upload completes.
func (a *Artifact) Document() *tele.Document {
	return &tele.Document{
		File:     tele.FromReader(bytes.NewReader(a.body)),
		FileName: a.Name,
		MIME:     "text/plain",
	}
}
