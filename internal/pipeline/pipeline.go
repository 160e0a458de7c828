package pipeline

import (
	"context"

	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/llm"
	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
)

// Pipeline chains extraction -> normalization -> rating into a single run.
// It performs no I/O of its own; all external calls belong to the stages.
type Pipeline struct {
	extractor *Extractor
	rater     *Rater
	baseline  nutrition.Baseline
	log       *golog.Logger
}

// New wires the pipeline. The baseline must already be validated; a broken
// table is a programming error, so it panics here instead of surfacing as a
// per-request failure.
func New(client llm.Client, baseline nutrition.Baseline, log *golog.Logger) *Pipeline {
	if err := baseline.Validate(); err != nil {
		panic("pipeline: " + err.Error())
	}
	return &Pipeline{
		extractor: NewExtractor(client, log),
		rater:     NewRater(client, baseline, log),
		baseline:  baseline,
		log:       log,
	}
}

// Run analyzes one label image end to end. An extraction failure
// short-circuits: normalization and rating are not invoked and the tagged
// failure propagates unchanged. Normalization has no failure path.
func (p *Pipeline) Run(ctx context.Context, image []byte, mimeType string) Result {
	product, fail := p.extractor.Extract(ctx, image, mimeType)
	if fail != nil {
		return Result{Failure: fail}
	}

	p.log.Infof("extracted product %q (%s)", product.ProductName, product.Brand)

	analysis := nutrition.Analyze(product.Nutrition, p.baseline)

	rating, fail := p.rater.Rate(ctx, *product, analysis)
	if fail != nil {
		return Result{Failure: fail}
	}

	p.log.Infof("rated product %q: score=%.1f grade=%s", product.ProductName, rating.INRScore, rating.Grade)

	return Result{
		Product:  product,
		Analysis: analysis,
		Rating:   rating,
	}
}
