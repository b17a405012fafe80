package search

import (
	"regexp"
	"sort"
	"strings"
)

// Span is one keyword occurrence as a half-open byte range into the
// original unit text.
type Span struct {
	Start int
	End   int
}

const (
	highlightOpen  = `<span class="highlight">`
	highlightClose = `</span>`
)

var (
	articleLabelRE = regexp.MustCompile(`第[零一二三四五六七八九十百千]+条`)
	chapterLabelRE = regexp.MustCompile(`第[零一二三四五六七八九十百千]+章`)
)

// labelPrefixRunes caps the fallback label length when a unit has no
// article or chapter marker in its text.
const labelPrefixRunes = 30

// ExtractLabel derives the grouping label for a content unit: the first
// "第…条" article marker, else the first "第…章" chapter marker, else a
// truncated prefix of the text.
func ExtractLabel(text string) string {
	if m := articleLabelRE.FindString(text); m != "" {
		return m
	}
	if m := chapterLabelRE.FindString(text); m != "" {
		return m
	}
	runes := []rune(text)
	if len(runes) > labelPrefixRunes {
		return string(runes[:labelPrefixRunes]) + "..."
	}
	return text
}

// Highlight wraps every span of text in highlight markers. Spans are
// applied from the highest start offset down so earlier insertions never
// shift offsets still to be processed. Spans that do not fit inside text
// are dropped.
func Highlight(text string, spans []Span) string {
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	var b strings.Builder
	highlighted := text
	for _, s := range ordered {
		// Bounds are checked against the original text: descending order
		// means the region before s.End is still untouched.
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			continue
		}
		b.Reset()
		b.WriteString(highlighted[:s.Start])
		b.WriteString(highlightOpen)
		b.WriteString(highlighted[s.Start:s.End])
		b.WriteString(highlightClose)
		b.WriteString(highlighted[s.End:])
		highlighted = b.String()
	}
	return highlighted
}
