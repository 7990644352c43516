package domain

import (
	"path/filepath"
	"strings"
)

const (
	// InitialOriginalText is shown before any document has been uploaded
	InitialOriginalText = "Upload a document to preview its contents here."

	// PlaceholderOriginalText stands in for extracted document text
	PlaceholderOriginalText = "Uploaded file content preview...\n\nThis would be the extracted text from the file."

	// PlaceholderSimplifiedText stands in for the simplifier's output
	PlaceholderSimplifiedText = "Simplified and AI-enhanced version of the document."
)

// AcceptedExtensions is the file picker filter hint. It is not enforced.
var AcceptedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// FileUpload is a user-selected file
type FileUpload struct {
	Name        string
	ContentType string
	Content     []byte
}

// Present reports whether a file was actually selected
func (f *FileUpload) Present() bool {
	return f != nil && f.Name != ""
}

// HasAcceptedExtension reports whether the file name matches the picker filter
func (f *FileUpload) HasAcceptedExtension() bool {
	if f == nil {
		return false
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// UploadState is the upload-and-reveal view's state
type UploadState struct {
	Loading        bool
	FileName       string
	OriginalText   string
	TranslatedText string
	TypedOutput    string
	Err            string
}

// CanDownload reports whether the final simplified text is ready for export
func (s UploadState) CanDownload() bool {
	return !s.Loading && s.TranslatedText != ""
}

// SimplifyResult is the outcome of processing one document
type SimplifyResult struct {
	OriginalText   string
	SimplifiedText string
}
