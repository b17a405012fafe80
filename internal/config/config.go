package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Corpus and index locations
	DocsDir   string
	IndexFile string

	// Label stamped into index metadata
	IndexSource string

	// Extensions the index builder accepts (lowercase, with dot)
	AcceptedExts map[string]bool

	// PDF
	PDFFallbackPdftotext bool

	// Search result grouping: by derived label (default) or by unit identity
	GroupByUnit bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocsDir:   envOr("DOCS_DIR", "laws_doc"),
		IndexFile: envOr("INDEX_FILE", "instance/laws_index.json"),

		IndexSource: envOr("INDEX_SOURCE", "本地文件"),

		AcceptedExts: ParseExts(envOr("ACCEPTED_EXTS", ".pdf,.docx")),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		GroupByUnit:          envBool("GROUP_BY_UNIT", false),
	}

	if len(cfg.AcceptedExts) == 0 {
		cfg.AcceptedExts = ParseExts(".pdf,.docx")
	}

	return cfg
}

// ParseExts parses a comma-separated extension list into a lookup set,
// normalizing case and leading dots.
func ParseExts(s string) map[string]bool {
	exts := make(map[string]bool)
	for _, ext := range strings.Split(s, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return exts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
