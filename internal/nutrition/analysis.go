package nutrition

// NutrientFacts is one row of the normalized analysis.
type NutrientFacts struct {
	Per100g      float64 `json:"per_100g"`
	INRBaseline  float64 `json:"inr_baseline"`
	PercentOfINR float64 `json:"percent_of_inr"`
}

// Analysis maps nutrient keys to their normalized facts.
type Analysis map[string]NutrientFacts

// Analyze computes each nutrient's percentage of the INR baseline.
//
// Mandatory nutrients always appear in the result: a value the label did not
// carry is coerced to zero here, deliberately after extraction so the raw
// record still shows what was actually legible. Fiber is a bonus nutrient
// and is only included when the label reported a numeric value.
func Analyze(profile NutrientProfile, baseline Baseline) Analysis {
	analysis := make(Analysis, len(MandatoryNutrients)+1)

	for _, nutrient := range MandatoryNutrients {
		value := profile.amount(nutrient).Or(0)
		ref := baseline[nutrient]

		percent := 0.0
		if value > 0 && ref > 0 {
			percent = value / ref * 100
		}

		analysis[nutrient] = NutrientFacts{
			Per100g:      value,
			INRBaseline:  ref,
			PercentOfINR: percent,
		}
	}

	if fiber, ok := profile.FiberG.Value(); ok {
		ref := baseline[NutrientFiberG]
		percent := 0.0
		if fiber > 0 && ref > 0 {
			percent = fiber / ref * 100
		}
		analysis[NutrientFiberG] = NutrientFacts{
			Per100g:      fiber,
			INRBaseline:  ref,
			PercentOfINR: percent,
		}
	}

	return analysis
}
