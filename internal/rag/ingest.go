package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/tmc/langchaingo/vectorstores"
)

// Chunking parameters for the regulatory PDFs. Small chunks keep single
// upsert payloads well under Pinecone's request-size limit.
const (
	ChunkSize       = 500
	ChunkOverlap    = 20
	UpsertBatchSize = 5
)

// DocumentAdder is the slice of the vector store the ingestor needs.
type DocumentAdder interface {
	AddDocuments(ctx context.Context, docs []schema.Document, options ...vectorstores.Option) ([]string, error)
}

// LoadPDFDir loads every PDF under dir, keeping only the source path as
// metadata.
func LoadPDFDir(ctx context.Context, dir string) ([]schema.Document, error) {
	var docs []schema.Document

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		loaded, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		for _, doc := range loaded {
			docs = append(docs, schema.Document{
				PageContent: doc.PageContent,
				Metadata:    map[string]any{"source": path},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// SplitChunks splits documents into overlapping chunks for embedding.
func SplitChunks(docs []schema.Document) ([]schema.Document, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(ChunkSize),
		textsplitter.WithChunkOverlap(ChunkOverlap),
	)
	return textsplitter.SplitDocuments(splitter, docs)
}

// UpsertBatches writes chunks to the index in small batches so no single
// request exceeds the provider's payload limit.
func UpsertBatches(ctx context.Context, store DocumentAdder, chunks []schema.Document) (int, error) {
	batches := 0
	for start := 0; start < len(chunks); start += UpsertBatchSize {
		end := min(start+UpsertBatchSize, len(chunks))

		if _, err := store.AddDocuments(ctx, chunks[start:end]); err != nil {
			return batches, fmt.Errorf("upsert batch %d: %w", batches, err)
		}
		batches++
	}
	return batches, nil
}
