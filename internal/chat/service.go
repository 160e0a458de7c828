package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/llm"
	"github.com/Abhishek28042001/PureCheck/internal/rag"
	"github.com/Abhishek28042001/PureCheck/internal/session"
)

const (
	chatTimeout = 60 * time.Second

	// Passages fed into a grounded answer.
	retrievalTopK = 3
)

// Service answers chat messages, grounded either in the session's analyzed
// product or in retrieved regulatory passages.
type Service struct {
	client    llm.Client
	retriever rag.Retriever
	log       *golog.Logger
}

func NewService(client llm.Client, retriever rag.Retriever, log *golog.Logger) *Service {
	return &Service{client: client, retriever: retriever, log: log}
}

// Respond picks the answering mode per call. With a session context the
// stored product is embedded directly and no retrieval happens; without one
// the question runs through the regulatory index first.
func (s *Service) Respond(ctx context.Context, message string, sc *session.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	if sc != nil {
		return s.respondAboutProduct(ctx, message, sc)
	}
	return s.respondFromRegulations(ctx, message)
}

func (s *Service) respondAboutProduct(ctx context.Context, message string, sc *session.Context) (string, error) {
	prompt := buildProductPrompt(sc, message)

	answer, err := s.client.Chat(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("product chat: %w", err)
	}
	return answer, nil
}

func (s *Service) respondFromRegulations(ctx context.Context, message string) (string, error) {
	passages, err := s.retriever.Retrieve(ctx, message, retrievalTopK)
	if err != nil {
		return "", fmt.Errorf("regulatory retrieval: %w", err)
	}

	s.log.Debugf("retrieved %d passages for %q", len(passages), message)

	answer, err := s.client.Chat(ctx, buildRegulatorySystem(passages), message)
	if err != nil {
		return "", fmt.Errorf("regulatory chat: %w", err)
	}
	return answer, nil
}
