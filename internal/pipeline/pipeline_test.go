package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
)

const extractionReply = "```json\n" + `{
	"product_name": "Choco Crunch",
	"brand": "TestBrand",
	"product_type": "Solid",
	"package_size": "500g",
	"serving_size": "30g",
	"nutritional_info_per_100g": {
		"energy_kcal": 450,
		"sugars_g": 25,
		"saturated_fat_g": 8,
		"sodium_mg": 200,
		"protein_g": 6,
		"fiber_g": 2
	}
}` + "\n```"

const ratingReply = `Here is the scoring result:
{
	"negative_points": {"energy": 3, "sugars": 7, "saturated_fat": 6, "sodium": 1, "total": 17},
	"positive_points": {"protein": 1, "fiber": 0, "total": 1},
	"inr_score": 48,
	"grade": "C",
	"interpretation": "Moderate nutritional quality.",
	"health_warnings": ["High in sugars"],
	"positive_claims": []
}`

// fakeClient stubs the model provider and counts calls per method.
type fakeClient struct {
	visionReply string
	visionErr   error
	reasonReply string
	reasonErr   error
	chatReply   string
	chatErr     error

	visionCalls int
	reasonCalls int
	chatCalls   int
}

func (f *fakeClient) Vision(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	f.visionCalls++
	return f.visionReply, f.visionErr
}

func (f *fakeClient) Reason(ctx context.Context, prompt string) (string, error) {
	f.reasonCalls++
	return f.reasonReply, f.reasonErr
}

func (f *fakeClient) Chat(ctx context.Context, system, user string) (string, error) {
	f.chatCalls++
	return f.chatReply, f.chatErr
}

func testLogger() *golog.Logger {
	log := golog.New()
	log.SetLevel("disable")
	return log
}

func TestPipeline_Success(t *testing.T) {
	client := &fakeClient{visionReply: extractionReply, reasonReply: ratingReply}
	p := New(client, nutrition.FSSAIBaseline(), testLogger())

	result := p.Run(context.Background(), []byte("fake-image"), "image/png")

	require.True(t, result.OK(), "unexpected failure: %+v", result.Failure)
	assert.Equal(t, "Choco Crunch", result.Product.ProductName)
	assert.InDelta(t, 22.5, result.Analysis[nutrition.NutrientEnergyKcal].PercentOfINR, 1e-9)
	assert.Equal(t, "C", result.Rating.Grade)
	assert.Equal(t, 48.0, result.Rating.INRScore)
	assert.Equal(t, []string{"High in sugars"}, result.Rating.HealthWarnings)
}

func TestPipeline_ExtractionFailureShortCircuits(t *testing.T) {
	client := &fakeClient{visionErr: errors.New("connection refused")}
	p := New(client, nutrition.FSSAIBaseline(), testLogger())

	result := p.Run(context.Background(), []byte("fake-image"), "image/png")

	require.False(t, result.OK())
	assert.Equal(t, StageExtraction, result.Failure.Stage)
	assert.Equal(t, ExtractionServiceFailure, result.Failure.Kind)
	// Transport errors are retried once, so two vision calls. The rating
	// stage must never have run.
	assert.Equal(t, 2, client.visionCalls)
	assert.Equal(t, 0, client.reasonCalls)
	assert.Nil(t, result.Product)
	assert.Nil(t, result.Rating)
}

func TestPipeline_ExtractionParseFailure(t *testing.T) {
	client := &fakeClient{visionReply: "I could not read anything on this label."}
	p := New(client, nutrition.FSSAIBaseline(), testLogger())

	result := p.Run(context.Background(), []byte("fake-image"), "image/png")

	require.False(t, result.OK())
	assert.Equal(t, ExtractionParseFailure, result.Failure.Kind)
	assert.Contains(t, result.Failure.Detail, "could not read")
	// Parse failures are not retried and rating is skipped.
	assert.Equal(t, 1, client.visionCalls)
	assert.Equal(t, 0, client.reasonCalls)
}

func TestPipeline_RatingParseFailure(t *testing.T) {
	client := &fakeClient{visionReply: extractionReply, reasonReply: "no json here"}
	p := New(client, nutrition.FSSAIBaseline(), testLogger())

	result := p.Run(context.Background(), []byte("fake-image"), "image/png")

	require.False(t, result.OK())
	assert.Equal(t, StageRating, result.Failure.Stage)
	assert.Equal(t, INRParseFailure, result.Failure.Kind)
	assert.Equal(t, "no json here", result.Failure.Detail)
}

func TestPipeline_RatingServiceFailureNotRetried(t *testing.T) {
	client := &fakeClient{visionReply: extractionReply, reasonErr: errors.New("deployment overloaded")}
	p := New(client, nutrition.FSSAIBaseline(), testLogger())

	result := p.Run(context.Background(), []byte("fake-image"), "image/png")

	require.False(t, result.OK())
	assert.Equal(t, RatingServiceFailure, result.Failure.Kind)
	assert.Equal(t, 1, client.reasonCalls, "scoring is non-deterministic and must not be retried")
}

func TestPipeline_InconsistentRatingIsNotFatal(t *testing.T) {
	// Grade B does not match score 48; the pipeline must still succeed.
	inconsistent := `{"negative_points": {"total": 17}, "positive_points": {"total": 1}, "inr_score": 48, "grade": "B", "interpretation": "", "health_warnings": [], "positive_claims": []}`
	client := &fakeClient{visionReply: extractionReply, reasonReply: inconsistent}
	p := New(client, nutrition.FSSAIBaseline(), testLogger())

	result := p.Run(context.Background(), []byte("fake-image"), "image/png")

	require.True(t, result.OK())
	assert.False(t, result.Rating.Consistent())
}

func TestNew_PanicsOnBrokenBaseline(t *testing.T) {
	broken := nutrition.Baseline{nutrition.NutrientEnergyKcal: 2000}
	assert.Panics(t, func() {
		New(&fakeClient{}, broken, testLogger())
	})
}
