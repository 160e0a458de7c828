package nutrition

// NegativePoints penalize unhealthy nutrients, 0-10 each, total capped at 40.
type NegativePoints struct {
	Energy       float64 `json:"energy"`
	Sugars       float64 `json:"sugars"`
	SaturatedFat float64 `json:"saturated_fat"`
	Sodium       float64 `json:"sodium"`
	Total        float64 `json:"total"`
}

// PositivePoints reward protein and fiber, 0-5 each, total capped at 10.
type PositivePoints struct {
	Protein float64 `json:"protein"`
	Fiber   float64 `json:"fiber"`
	Total   float64 `json:"total"`
}

// Rating is the Indian Nutrition Rating result produced by the reasoning
// model. The score is generated, not computed in-process, so it is validated
// rather than trusted.
type Rating struct {
	NegativePoints NegativePoints `json:"negative_points"`
	PositivePoints PositivePoints `json:"positive_points"`
	INRScore       float64        `json:"inr_score"`
	Grade          string         `json:"grade"`
	Interpretation string         `json:"interpretation"`
	HealthWarnings []string       `json:"health_warnings"`
	PositiveClaims []string       `json:"positive_claims"`
}

// GradeForScore returns the letter grade the INR banding assigns to a score.
func GradeForScore(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "E"
	}
}

// Consistent reports whether the generated grade and score agree with the
// banding table and the score sits inside [0,100].
func (r Rating) Consistent() bool {
	if r.INRScore < 0 || r.INRScore > 100 {
		return false
	}
	return r.Grade == GradeForScore(r.INRScore)
}
