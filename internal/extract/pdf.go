package extract

import (
	"bytes"
	"fmt"
	"strings"

	dslipak "github.com/dslipak/pdf"
	"github.com/ledongthuc/pdf"
)

// extractPDF extracts text from PDF bytes. A row-grouping strategy runs
// first because it preserves line structure, which the section segmenter
// depends on; when it errors or yields nothing, a plain content-stream
// strategy is tried. ErrNoText is returned when both come back empty.
func extractPDF(content []byte) (string, error) {
	text, layoutErr := extractPDFRows(content)
	if layoutErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, plainErr := extractPDFPlain(content)
	if plainErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	if layoutErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, layoutErr)
	}
	if plainErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, plainErr)
	}
	return "", ErrNoText
}

// extractPDFRows groups page text by row so each visual line becomes one
// text line. Fragments within a row are concatenated as-is; merged words
// are repaired later by CleanText.
func extractPDFRows(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var buf strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

// extractPDFPlain reads the concatenated content streams without layout.
func extractPDFPlain(content []byte) (string, error) {
	r, err := dslipak.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read PDF text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read PDF text: %w", err)
	}
	return buf.String(), nil
}
