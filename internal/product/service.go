package product

import (
	"bytes"
	"context"
	"io"

	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/pipeline"
	"github.com/Abhishek28042001/PureCheck/internal/session"
	"github.com/Abhishek28042001/PureCheck/internal/storage"
)

// Archiver is the optional object-store mirror for uploads.
type Archiver interface {
	Archive(ctx context.Context, key string, body io.Reader) (string, error)
}

// Service runs an uploaded label through the analysis pipeline and maintains
// the per-session current-product slot.
type Service struct {
	pipeline *pipeline.Pipeline
	saver    storage.Saver
	archiver Archiver // nil when no bucket is configured
	sessions session.Store
	log      *golog.Logger
}

func NewService(p *pipeline.Pipeline, saver storage.Saver, archiver Archiver, sessions session.Store, log *golog.Logger) *Service {
	return &Service{
		pipeline: p,
		saver:    saver,
		archiver: archiver,
		sessions: sessions,
		log:      log,
	}
}

// Analyze saves the upload, runs the pipeline and, on success, replaces the
// session's current product. The stored filename is returned either way so
// failed uploads can still be inspected.
func (s *Service) Analyze(ctx context.Context, sessionID, filename, mimeType string, image []byte) (*session.Context, string, *pipeline.Failure) {
	storedName, err := s.saver.Save(ctx, filename, bytes.NewReader(image))
	if err != nil {
		return nil, "", &pipeline.Failure{
			Stage:   pipeline.StageUpload,
			Kind:    pipeline.ValidationFailure,
			Message: "Failed to store uploaded image",
			Detail:  err.Error(),
		}
	}

	if s.archiver != nil {
		if _, err := s.archiver.Archive(ctx, storedName, bytes.NewReader(image)); err != nil {
			s.log.Warnf("upload archive failed for %s: %v", storedName, err)
		}
	}

	result := s.pipeline.Run(ctx, image, mimeType)
	if !result.OK() {
		return nil, storedName, result.Failure
	}

	sc := &session.Context{
		Product:   *result.Product,
		Analysis:  result.Analysis,
		Rating:    *result.Rating,
		ImagePath: storedName,
	}

	if err := s.sessions.Put(ctx, sessionID, sc); err != nil {
		// The analysis succeeded; losing the chat context is worth a
		// warning but not a failed response.
		s.log.Warnf("failed to store session %s: %v", sessionID, err)
	}

	return sc, storedName, nil
}

// ClearSession drops the session's current product.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}
