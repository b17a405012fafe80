// Package search executes keyword queries against the law index. Matches
// are grouped by article label and documents are ranked by how many
// occurrences of the keyword they contain.
package search

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/lawsearch/internal/index"
	"github.com/dgallion1/lawsearch/internal/lawdoc"
)

// Engine answers keyword queries from the index artifact. Each query
// re-reads the artifact; the index store rebuilds it lazily when missing.
type Engine struct {
	store *index.Store
	log   *slog.Logger

	// GroupByUnit groups matches by content-unit identity instead of by
	// derived article label. Off by default: label grouping merges units
	// whose text yields the same label, keeping the last unit's text as
	// the snippet, and downstream consumers rely on that behavior.
	GroupByUnit bool
}

func NewEngine(store *index.Store, log *slog.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// matchGroup collects all matches assigned to one result label.
type matchGroup struct {
	label string
	text  string
	spans []Span
}

// Search returns one SearchResult per document containing the keyword,
// ranked by total match count (descending, stable). Matching is a
// case-insensitive exact substring scan; an empty or whitespace-only
// keyword matches nothing. lawType narrows results to documents whose
// title equals it case-insensitively; "all" (or empty) disables the filter.
func (e *Engine) Search(keyword, lawType string) ([]lawdoc.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []lawdoc.SearchResult{}, nil
	}
	if lawType == "" {
		lawType = "all"
	}

	artifact, err := e.load()
	if err != nil {
		return nil, err
	}

	keywordLower := strings.ToLower(keyword)
	results := []lawdoc.SearchResult{}

	for _, law := range artifact.Laws {
		if lawType != "all" && !strings.EqualFold(law.Title, lawType) {
			continue
		}

		groups := e.scanDocument(law, keywordLower)
		if len(groups) == 0 {
			continue
		}

		result := lawdoc.SearchResult{
			Title:      law.Title,
			Year:       law.Year,
			Filename:   law.Filename,
			TotalPages: law.TotalPages,
		}
		for _, g := range groups {
			result.MatchedPages = append(result.MatchedPages, lawdoc.MatchedPage{
				Title:       g.label,
				Snippet:     Highlight(g.text, g.spans),
				MatchedTerm: keyword,
				MatchCount:  len(g.spans),
			})
			result.TotalMatches += len(g.spans)
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		e.log.Info("no matches", "keyword", keyword, "law_type", lawType)
		return results, nil
	}

	stableSortByMatches(results)
	return results, nil
}

// scanDocument scans every content unit of one document and returns the
// match groups in discovery order.
func (e *Engine) scanDocument(law lawdoc.Document, keywordLower string) []*matchGroup {
	var order []string
	byLabel := make(map[string]*matchGroup)

	for i, unit := range law.Content {
		spans := findMatches(unit.Text, keywordLower)
		if len(spans) == 0 {
			continue
		}

		key := ExtractLabel(unit.Text)
		label := key
		if e.GroupByUnit {
			key = fmt.Sprintf("%s#%d", key, i)
		}

		g, ok := byLabel[key]
		if !ok {
			g = &matchGroup{label: label}
			byLabel[key] = g
			order = append(order, key)
		}
		// On label collisions the later unit's text wins; spans recorded
		// against earlier text that fall outside it are dropped when
		// highlighting.
		g.text = unit.Text
		g.spans = append(g.spans, spans...)
	}

	groups := make([]*matchGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, byLabel[key])
	}
	return groups
}

// findMatches records every non-overlapping occurrence of keywordLower in
// text, scanning forward so each search resumes right after the previous
// match. Offsets index the original text.
func findMatches(text, keywordLower string) []Span {
	textLower := strings.ToLower(text)

	var spans []Span
	start := 0
	for {
		idx := strings.Index(textLower[start:], keywordLower)
		if idx < 0 {
			break
		}
		from := start + idx
		to := from + len(keywordLower)
		spans = append(spans, Span{Start: from, End: to})
		start = to
	}
	return spans
}

// stableSortByMatches orders results by TotalMatches descending, keeping
// index order for ties.
func stableSortByMatches(results []lawdoc.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalMatches > results[j].TotalMatches
	})
}

func (e *Engine) load() (*lawdoc.IndexArtifact, error) {
	if err := e.store.Ensure(); err != nil {
		return nil, fmt.Errorf("ensure index: %w", err)
	}
	return e.store.Load()
}

// LawTypes returns the distinct law titles present in the index, building
// it first if absent.
func (e *Engine) LawTypes() ([]string, error) {
	artifact, err := e.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	types := []string{}
	for _, law := range artifact.Laws {
		if !seen[law.Title] {
			seen[law.Title] = true
			types = append(types, law.Title)
		}
	}
	return types, nil
}
