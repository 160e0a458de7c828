package rag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kataras/golog"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/vectorstores/pinecone"
)

const (
	embeddingModel      = "text-embedding-ada-002"
	embeddingAPIVersion = "2023-05-15"

	retrievalTimeout = 30 * time.Second
)

// Passage is one retrieved chunk of a regulatory document.
type Passage struct {
	Content string
	Source  string
}

// Retriever answers similarity queries against the FSSAI document index.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}

// PineconeRetriever searches the Pinecone index through Azure OpenAI
// embeddings.
type PineconeRetriever struct {
	store pinecone.Store
	log   *golog.Logger
}

// NewEmbedder builds the Azure ada-002 embedder shared by the retriever and
// the indexer.
func NewEmbedder() (*embeddings.EmbedderImpl, error) {
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if apiKey == "" || endpoint == "" {
		return nil, errors.New("missing AZURE_OPENAI_API_KEY or AZURE_OPENAI_ENDPOINT")
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(endpoint),
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithAPIVersion(embeddingAPIVersion),
		openai.WithEmbeddingModel(embeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	return embeddings.NewEmbedder(llm)
}

// NewPineconeStore connects to the configured Pinecone index.
func NewPineconeStore(embedder embeddings.Embedder) (pinecone.Store, error) {
	apiKey := os.Getenv("PINECONE_API_KEY")
	host := os.Getenv("PINECONE_HOST")
	if apiKey == "" {
		return pinecone.Store{}, errors.New("missing PINECONE_API_KEY")
	}
	if host == "" {
		return pinecone.Store{}, errors.New("missing PINECONE_HOST")
	}

	return pinecone.New(
		pinecone.WithAPIKey(apiKey),
		pinecone.WithHost(host),
		pinecone.WithEmbedder(embedder),
	)
}

func NewPineconeRetriever(log *golog.Logger) (*PineconeRetriever, error) {
	embedder, err := NewEmbedder()
	if err != nil {
		return nil, err
	}

	store, err := NewPineconeStore(embedder)
	if err != nil {
		return nil, err
	}

	return &PineconeRetriever{store: store, log: log}, nil
}

// Retrieve runs a similarity search. The query is read-only, so a transport
// failure is retried once.
func (r *PineconeRetriever) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	ctx, cancel := context.WithTimeout(ctx, retrievalTimeout)
	defer cancel()

	docs, err := r.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		r.log.Warnf("similarity search failed, retrying once: %v", err)
		docs, err = r.store.SimilaritySearch(ctx, query, k)
	}
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	passages := make([]Passage, 0, len(docs))
	for _, doc := range docs {
		source, _ := doc.Metadata["source"].(string)
		passages = append(passages, Passage{
			Content: doc.PageContent,
			Source:  source,
		})
	}
	return passages, nil
}
