package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor yields the ordered per-page plain text of one document.
type Extractor interface {
	Pages(path string) ([]string, error)
}

// ErrUnsupported is returned by ForFile for extensions no extractor handles.
var ErrUnsupported = errors.New("unsupported file extension")

// Known lists file extensions an extractor exists for. Which of these the
// index builder actually accepts is configured separately.
var Known = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// Options tunes extractor construction.
type Options struct {
	// PDFFallbackPdftotext enables the pdftotext subprocess fallback for
	// PDFs the Go library cannot decode.
	PDFFallbackPdftotext bool
}

// ForFile returns the extractor for a filename's extension.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}
