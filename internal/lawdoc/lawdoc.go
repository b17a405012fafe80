package lawdoc

import (
	"encoding/json"
	"strconv"
)

// Year is a law's year of promulgation. Filenames carry it as a string
// segment, but artifacts written by the previous generation of the indexer
// stored the defaulted year as a number, so both decode.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = Year(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = Year(strconv.Itoa(n))
	return nil
}

// UnitKind distinguishes the two structural node types of a law text.
type UnitKind string

const (
	KindChapter UnitKind = "chapter"
	KindArticle UnitKind = "article"
)

// ContentUnit is one chapter marker or one article with its accumulated body.
type ContentUnit struct {
	Kind UnitKind `json:"type"`
	Text string   `json:"content"`
	Page int      `json:"page"` // 1-based page the marker first appeared on
}

// Document is one indexed source file.
type Document struct {
	Title        string        `json:"title"`    // law name, first "_" segment of the filename
	Year         Year          `json:"year"`     // second "_" segment, else current year
	Filename     string        `json:"filename"` // original name with extension
	Content      []ContentUnit `json:"content"`  // reading order
	TotalPages   int           `json:"total_pages"`
	LastModified string        `json:"last_modified"` // YYYY-MM-DD
}

// Metadata describes one index build.
type Metadata struct {
	IndexDate    string   `json:"index_date"` // YYYY-MM-DD HH:MM:SS
	TotalCount   int      `json:"total_count"`
	Source       string   `json:"source"`
	InvalidFiles []string `json:"invalid_files"`
}

// IndexArtifact is the persisted search index. It is written wholesale by
// the index builder and read-only for search.
type IndexArtifact struct {
	Metadata Metadata   `json:"metadata"`
	Laws     []Document `json:"laws"`
}

// MatchedPage is one article/chapter label that contained matches.
type MatchedPage struct {
	Title       string `json:"title"`   // derived label, e.g. "第十四条"
	Snippet     string `json:"snippet"` // unit text with highlight markers
	MatchedTerm string `json:"matched_term"`
	MatchCount  int    `json:"match_count"`
}

// SearchResult is one matching document, built fresh per query.
type SearchResult struct {
	Title        string        `json:"title"`
	Year         Year          `json:"year"`
	Filename     string        `json:"filename"`
	TotalPages   int           `json:"total_pages"`
	MatchedPages []MatchedPage `json:"matched_pages"`
	TotalMatches int           `json:"total_matches"`
}
