package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/dgallion1/lawsearch/internal/config"
	"github.com/dgallion1/lawsearch/internal/index"
)

func main() {
	docsDir := flag.String("docs", "laws_doc", "Directory of law documents to index")
	indexFile := flag.String("index", "instance/laws_index.json", "Path of the index artifact to write")
	source := flag.String("source", "本地文件", "Source label stamped into index metadata")
	exts := flag.String("exts", ".pdf,.docx", "Comma-separated accepted file extensions")
	flag.Parse()

	cfg := config.Config{
		DocsDir:              *docsDir,
		IndexFile:            *indexFile,
		IndexSource:          *source,
		AcceptedExts:         config.ParseExts(*exts),
		PDFFallbackPdftotext: true,
	}

	slogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := index.NewStore(cfg, slogger)

	log.Printf("Indexing documents in %s...", cfg.DocsDir)
	laws, err := store.Build()
	if err != nil {
		log.Fatalf("Index build failed: %v", err)
	}
	log.Printf("Indexed %d documents", len(laws))
	log.Printf("Index written to %s", cfg.IndexFile)
}
