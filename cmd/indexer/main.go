package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/rag"
)

// Offline collaborator: parses the regulatory PDFs, splits them into
// overlapping chunks and upserts them into the Pinecone index. Run once per
// document-set change, not part of the serving path.
func main() {
	dataDir := flag.String("data", "data", "directory of regulatory PDF documents")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	log := golog.New()

	required := []string{
		"AZURE_OPENAI_API_KEY",
		"AZURE_OPENAI_ENDPOINT",
		"PINECONE_API_KEY",
		"PINECONE_HOST",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	ctx := context.Background()

	embedder, err := rag.NewEmbedder()
	if err != nil {
		log.Fatalf("Embedder init failed: %v", err)
	}

	store, err := rag.NewPineconeStore(embedder)
	if err != nil {
		log.Fatalf("Pinecone init failed: %v", err)
	}

	log.Infof("Loading PDF documents from %s", *dataDir)
	docs, err := rag.LoadPDFDir(ctx, *dataDir)
	if err != nil {
		log.Fatalf("PDF load failed: %v", err)
	}
	log.Infof("Loaded %d document pages", len(docs))

	chunks, err := rag.SplitChunks(docs)
	if err != nil {
		log.Fatalf("Chunking failed: %v", err)
	}
	log.Infof("Split into %d chunks", len(chunks))

	batches, err := rag.UpsertBatches(ctx, store, chunks)
	if err != nil {
		log.Fatalf("Upsert failed after %d batches: %v", batches, err)
	}

	log.Infof("Uploaded %d chunks in %d batches to Pinecone", len(chunks), batches)
}
