package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kataras/golog"

	"github.com/Abhishek28042001/PureCheck/internal/llm"
	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
)

const ratingTimeout = 120 * time.Second

// Rater derives the INR score from the normalized analysis through the
// reasoning deployment. Two identical inputs may score differently across
// calls; this is an accepted property of the design, which is also why the
// call is never retried.
type Rater struct {
	client   llm.Client
	baseline nutrition.Baseline
	log      *golog.Logger
}

func NewRater(client llm.Client, baseline nutrition.Baseline, log *golog.Logger) *Rater {
	return &Rater{client: client, baseline: baseline, log: log}
}

func (r *Rater) Rate(ctx context.Context, product nutrition.ProductRecord, analysis nutrition.Analysis) (*nutrition.Rating, *Failure) {
	ctx, cancel := context.WithTimeout(ctx, ratingTimeout)
	defer cancel()

	prompt := llm.BuildRatingPrompt(product, analysis, r.baseline)

	raw, err := r.client.Reason(ctx, prompt)
	if err != nil {
		return nil, &Failure{
			Stage:   StageRating,
			Kind:    RatingServiceFailure,
			Message: "INR score calculation failed",
			Detail:  err.Error(),
		}
	}

	payload := llm.ExtractJSON(raw)
	if payload == "" {
		return nil, &Failure{
			Stage:   StageRating,
			Kind:    INRParseFailure,
			Message: "INR score calculation failed",
			Detail:  raw,
		}
	}

	var rating nutrition.Rating
	if err := json.Unmarshal([]byte(payload), &rating); err != nil {
		return nil, &Failure{
			Stage:   StageRating,
			Kind:    INRParseFailure,
			Message: "INR score calculation failed",
			Detail:  raw,
		}
	}

	// The score is generated, not computed, so a band mismatch is a data
	// quality signal rather than an error.
	if !rating.Consistent() {
		r.log.Warnf(
			"generated rating is inconsistent: score=%.1f grade=%s (expected %s)",
			rating.INRScore, rating.Grade, nutrition.GradeForScore(rating.INRScore),
		)
	}

	return &rating, nil
}
