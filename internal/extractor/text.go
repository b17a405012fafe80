package extractor

import (
	"fmt"
	"os"
	"strings"
)

// TextExtractor handles plain text files. Form feeds act as page
// separators; a file without any is a single page.
type TextExtractor struct{}

func (e *TextExtractor) Pages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	return strings.Split(string(data), "\f"), nil
}
