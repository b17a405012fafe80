// Package index builds and loads the persisted law index artifact.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/lawsearch/internal/config"
	"github.com/dgallion1/lawsearch/internal/extractor"
	"github.com/dgallion1/lawsearch/internal/lawdoc"
	"github.com/dgallion1/lawsearch/internal/structurer"
)

// ErrCorrupt means the index artifact exists but cannot be parsed.
// Callers should surface it and may offer a manual rebuild.
var ErrCorrupt = errors.New("index artifact is corrupt")

// Store owns the document directory and the index artifact path.
// Rebuilds are whole-file overwrites; callers must not run them concurrently.
type Store struct {
	docsDir       string
	indexFile     string
	source        string
	acceptedExts  map[string]bool
	extractorOpts extractor.Options
	log           *slog.Logger
}

func NewStore(cfg config.Config, log *slog.Logger) *Store {
	return &Store{
		docsDir:      cfg.DocsDir,
		indexFile:    cfg.IndexFile,
		source:       cfg.IndexSource,
		acceptedExts: cfg.AcceptedExts,
		extractorOpts: extractor.Options{
			PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
		log: log,
	}
}

// DocsDir is the directory the index is built from, exposed for static
// file serving.
func (s *Store) DocsDir() string {
	return s.docsDir
}

// Build rebuilds the entire index artifact from the document directory and
// returns the structured documents. Files that cannot be opened or contain
// no chapter/article markers are logged, recorded in the artifact's
// invalid-file list, and skipped; they never abort the build.
func (s *Store) Build() ([]lawdoc.Document, error) {
	if err := os.MkdirAll(s.docsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}
	if dir := filepath.Dir(s.indexFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}

	entries, err := os.ReadDir(s.docsDir)
	if err != nil {
		return nil, fmt.Errorf("read docs dir: %w", err)
	}

	laws := []lawdoc.Document{}
	invalid := []string{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !s.acceptedExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		doc, err := s.structureFile(name)
		if err != nil {
			s.log.Warn("skipping invalid document", "file", name, "error", err)
			invalid = append(invalid, name)
			continue
		}
		laws = append(laws, *doc)
	}

	artifact := lawdoc.IndexArtifact{
		Metadata: lawdoc.Metadata{
			IndexDate:    time.Now().Format("2006-01-02 15:04:05"),
			TotalCount:   len(laws),
			Source:       s.source,
			InvalidFiles: invalid,
		},
		Laws: laws,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	if err := os.WriteFile(s.indexFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}

	s.log.Info("index built", "documents", len(laws), "invalid", len(invalid), "path", s.indexFile)
	return laws, nil
}

func (s *Store) structureFile(name string) (*lawdoc.Document, error) {
	path := filepath.Join(s.docsDir, name)

	ex, err := extractor.ForFile(name, s.extractorOpts)
	if err != nil {
		return nil, err
	}
	pages, err := ex.Pages(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}

	return structurer.Structure(pages, name, info.ModTime())
}

// Load reads and validates the index artifact. A missing artifact is
// reported via the underlying os error; use Ensure first for lazy builds.
func (s *Store) Load() (*lawdoc.IndexArtifact, error) {
	f, err := os.Open(s.indexFile)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var artifact lawdoc.IndexArtifact
	if err := dec.Decode(&artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &artifact, nil
}

// Ensure builds the index if the artifact file does not exist yet.
func (s *Store) Ensure() error {
	if _, err := os.Stat(s.indexFile); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat index: %w", err)
	}
	s.log.Info("index artifact missing, building", "path", s.indexFile)
	_, err := s.Build()
	return err
}
