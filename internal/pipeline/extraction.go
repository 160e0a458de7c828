package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/llm"
	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
)

const extractionTimeout = 60 * time.Second

// Extractor turns a label image into a structured ProductRecord via the
// vision deployment.
type Extractor struct {
	client llm.Client
	log    *golog.Logger
}

func NewExtractor(client llm.Client, log *golog.Logger) *Extractor {
	return &Extractor{client: client, log: log}
}

// Extract sends the image to the vision model and decodes the JSON in its
// reply. A transport error is retried once (the call is read-only); a reply
// without decodable JSON is reported as a parse failure with the raw text
// attached.
func (e *Extractor) Extract(ctx context.Context, image []byte, mimeType string) (*nutrition.ProductRecord, *Failure) {
	ctx, cancel := context.WithTimeout(ctx, extractionTimeout)
	defer cancel()

	encoded := base64.StdEncoding.EncodeToString(image)

	raw, err := e.client.Vision(ctx, llm.NutritionExtractionPrompt, encoded, mimeType)
	if err != nil {
		e.log.Warnf("extraction call failed, retrying once: %v", err)
		raw, err = e.client.Vision(ctx, llm.NutritionExtractionPrompt, encoded, mimeType)
	}
	if err != nil {
		return nil, &Failure{
			Stage:   StageExtraction,
			Kind:    ExtractionServiceFailure,
			Message: "Nutrition extraction failed",
			Detail:  err.Error(),
		}
	}

	payload := llm.ExtractJSON(raw)
	if payload == "" {
		return nil, &Failure{
			Stage:   StageExtraction,
			Kind:    ExtractionParseFailure,
			Message: "Nutrition extraction failed",
			Detail:  raw,
		}
	}

	var product nutrition.ProductRecord
	if err := json.Unmarshal([]byte(payload), &product); err != nil {
		return nil, &Failure{
			Stage:   StageExtraction,
			Kind:    ExtractionParseFailure,
			Message: "Nutrition extraction failed",
			Detail:  raw,
		}
	}

	return &product, nil
}
