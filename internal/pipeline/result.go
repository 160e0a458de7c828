package pipeline

import "github.com/Abhishek28042001/PureCheck/internal/nutrition"

// ErrorKind tags every failure the analysis and chat surfaces can report.
type ErrorKind string

const (
	ExtractionParseFailure   ErrorKind = "EXTRACTION_PARSE_FAILURE"
	ExtractionServiceFailure ErrorKind = "EXTRACTION_SERVICE_FAILURE"
	INRParseFailure          ErrorKind = "INR_PARSE_FAILURE"
	RatingServiceFailure     ErrorKind = "RATING_SERVICE_FAILURE"
	ChatServiceFailure       ErrorKind = "CHAT_SERVICE_FAILURE"
	ValidationFailure        ErrorKind = "VALIDATION_FAILURE"
)

// Stage names used in failure tagging.
const (
	StageUpload     = "upload"
	StageExtraction = "extraction"
	StageRating     = "rating"
)

// Failure describes which stage broke and why. Detail carries raw model text
// when one was available, for diagnostics only.
type Failure struct {
	Stage   string    `json:"stage"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
}

func (f *Failure) Error() string {
	return f.Message
}

// Result is the single outcome of one pipeline run: either the full success
// payload or a stage-tagged failure, never both.
type Result struct {
	Product  *nutrition.ProductRecord
	Analysis nutrition.Analysis
	Rating   *nutrition.Rating
	Failure  *Failure
}

// OK reports whether the run produced a complete analysis.
func (r Result) OK() bool {
	return r.Failure == nil
}
