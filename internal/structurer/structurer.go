// Package structurer turns raw per-page law text into an ordered list of
// chapter and article units.
package structurer

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/lawsearch/internal/lawdoc"
)

// ErrNoStructure means the document opened fine but contained no chapter
// or article markers, so there is nothing to index.
var ErrNoStructure = errors.New("no chapter or article markers found")

// DefaultTitle is used when a filename has no "_"-delimited name segment.
const DefaultTitle = "未知法律"

// Structure builds a Document from ordered per-page plain text.
//
// A line containing both "第" and "章" starts a chapter; one containing both
// "第" and "条" starts an article. Every later non-empty line is appended to
// the open article until the next marker. A chapter closes the open article
// without accumulating anything itself.
func Structure(pages []string, filename string, modified time.Time) (*lawdoc.Document, error) {
	var units []lawdoc.ContentUnit
	current := -1 // index into units of the open article, -1 if none

	for pageNum, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.Contains(line, "第") && strings.Contains(line, "章"):
				units = append(units, lawdoc.ContentUnit{
					Kind: lawdoc.KindChapter,
					Text: line,
					Page: pageNum + 1,
				})
				current = -1
			case strings.Contains(line, "第") && strings.Contains(line, "条"):
				units = append(units, lawdoc.ContentUnit{
					Kind: lawdoc.KindArticle,
					Text: line + " ",
					Page: pageNum + 1,
				})
				current = len(units) - 1
			case current >= 0 && line != "":
				units[current].Text += line + " "
			}
		}
	}

	if len(units) == 0 {
		return nil, ErrNoStructure
	}

	title, year := ParseFilename(filename)
	return &lawdoc.Document{
		Title:        title,
		Year:         lawdoc.Year(year),
		Filename:     filename,
		Content:      units,
		TotalPages:   len(pages),
		LastModified: modified.Format("2006-01-02"),
	}, nil
}

// ParseFilename derives the law title and year from a filename like
// "刑法_1997.docx". Missing segments fall back to DefaultTitle and the
// current calendar year.
func ParseFilename(filename string) (title, year string) {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(name, "_")

	title = DefaultTitle
	if len(parts) > 0 && parts[0] != "" {
		title = parts[0]
	}
	year = strconv.Itoa(time.Now().Year())
	if len(parts) > 1 && parts[1] != "" {
		year = parts[1]
	}
	return title, year
}
