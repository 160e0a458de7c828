package nutrition

import "fmt"

// Nutrient keys shared by the label profile, the baseline table and the
// analysis output.
const (
	NutrientEnergyKcal     = "energy_kcal"
	NutrientTotalFatG      = "total_fat_g"
	NutrientSaturatedFatG  = "saturated_fat_g"
	NutrientCarbohydratesG = "carbohydrates_g"
	NutrientSugarsG        = "sugars_g"
	NutrientAddedSugarsG   = "added_sugars_g"
	NutrientProteinG       = "protein_g"
	NutrientSodiumMg       = "sodium_mg"
	NutrientFiberG         = "fiber_g"
)

// MandatoryNutrients are always present in an Analysis; a value missing from
// the label counts as zero for these.
var MandatoryNutrients = []string{
	NutrientEnergyKcal,
	NutrientSugarsG,
	NutrientSaturatedFatG,
	NutrientSodiumMg,
	NutrientProteinG,
}

// Baseline maps a nutrient key to its FSSAI daily recommended intake, the
// denominator for percent-of-INR normalization. Fixed at startup.
type Baseline map[string]float64

// FSSAIBaseline returns the FSSAI INR reference values for a 2000 kcal diet.
func FSSAIBaseline() Baseline {
	return Baseline{
		NutrientEnergyKcal:     2000,
		NutrientTotalFatG:      65,
		NutrientSaturatedFatG:  20,
		NutrientCarbohydratesG: 300,
		NutrientSugarsG:        50,
		NutrientAddedSugarsG:   30,
		NutrientProteinG:       50,
		NutrientSodiumMg:       2000,
		NutrientFiberG:         25,
	}
}

// Validate checks every nutrient the analysis depends on has a positive
// reference value. A bad baseline is a programming error, so callers are
// expected to fail startup on it.
func (b Baseline) Validate() error {
	required := append(append([]string{}, MandatoryNutrients...), NutrientFiberG)
	for _, key := range required {
		v, ok := b[key]
		if !ok {
			return fmt.Errorf("baseline missing nutrient %q", key)
		}
		if v <= 0 {
			return fmt.Errorf("baseline value for %q must be positive, got %v", key, v)
		}
	}
	return nil
}

// Positive-factor thresholds (FSSAI): a nutrient qualifies as a "source"
// at 10% of baseline and as "high" at 20%.
const (
	SourceThresholdPercent = 10
	HighThresholdPercent   = 20
)
