// Package extract provides text extraction from resume documents.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoText is returned when no extraction strategy yields non-empty text.
// Callers treat it as a failed parse, not a fatal fault.
var ErrNoText = errors.New("no text could be extracted")

// Extractor extracts plain text from resume files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content.
// The extraction strategy is chosen by file extension.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the declared extension.
// ext should include the leading dot (e.g. ".pdf").
// For PDF, a layout-preserving strategy is tried first with a plain-stream
// fallback, and the result goes through a cleanup pass that repairs common
// extraction artifacts. For DOCX, paragraph and table-cell text is collected
// in document order. Anything else is read as lenient plain text.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		text, err := extractPDF(content)
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	case ".docx", ".doc":
		return extractDOCX(content)
	default:
		// .txt and unknown extensions: treat as plain text
		return extractPlain(content)
	}
}
