package llm

import (
	"fmt"
	"strings"

	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
)

// NutritionExtractionPrompt is the fixed instruction given to the vision
// model. It enumerates every required field and the exact JSON shape so the
// reply can be decoded into a ProductRecord.
const NutritionExtractionPrompt = `
You are an expert OCR system specializing in food product label analysis.
Your task is to extract nutritional information from the provided food product image.

Please analyze the image and extract the following information:

1. **Product Type**: Identify if the product is:
   - Solid
   - Liquid
   - Semi-solid (e.g., yogurt, pudding)
   - Other (specify)

2. **Nutritional Information (per 100g or 100ml)**:
   Extract the following values and convert them to per 100g/100ml if not already in that format:
   - Energy (in kcal and/or kJ)
   - Total Carbohydrates (g)
   - Total Sugars (g)
   - Added Sugars (g) - if mentioned
   - Total Fat (g)
   - Saturated Fat (g)
   - Trans Fat (g) - if mentioned
   - Sodium (mg)
   - Protein (g)
   - Dietary Fiber/Fibre (g)
   - Any other nutrients mentioned (Vitamins, Minerals, etc.)

3. **Additional Information**:
   - Product Name
   - Brand Name (if visible)
   - Serving Size (if mentioned)
   - Package Size/Net Weight

**Output Format**:
Provide the information in a structured JSON format. If any information is not visible or available in the image, mark it as "Not Available" or "N/A".

Example Output:
{
    "product_name": "Product Name",
    "brand": "Brand Name",
    "product_type": "Solid/Liquid/Semi-solid",
    "package_size": "500g",
    "serving_size": "30g",
    "nutritional_info_per_100g": {
        "energy_kcal": 450,
        "energy_kj": 1884,
        "carbohydrates_g": 60,
        "sugars_g": 25,
        "added_sugars_g": 20,
        "total_fat_g": 18,
        "saturated_fat_g": 8,
        "trans_fat_g": 0,
        "sodium_mg": 200,
        "protein_g": 6,
        "fiber_g": 2,
        "other_nutrients": {
            "calcium_mg": 100,
            "iron_mg": 2
        }
    }
}

Be precise and accurate. If you need to perform calculations to convert to per 100g, show your work.
`

// BuildRatingPrompt embeds the INR scoring rubric together with the product
// facts and the normalized analysis. The rubric text is the auditable
// contract the reasoning model must follow; the exact negative-point curve
// is deliberately left to the model.
func BuildRatingPrompt(product nutrition.ProductRecord, analysis nutrition.Analysis, baseline nutrition.Baseline) string {
	var b strings.Builder

	b.WriteString("You are an expert food nutrition analyst tasked with calculating the Indian Nutrition Rating (INR) score for a food product based on FSSAI guidelines.\n\n")

	productType := product.ProductType
	if productType == "" {
		productType = "Solid"
	}

	fmt.Fprintf(&b, "**Product Information:**\n")
	fmt.Fprintf(&b, "- Product Type: %s\n", productType)
	fmt.Fprintf(&b, "- Nutritional Information (per 100g):\n")
	fmt.Fprintf(&b, "  - Energy: %s kcal\n", product.Nutrition.EnergyKcal)
	fmt.Fprintf(&b, "  - Sugars: %s g\n", product.Nutrition.SugarsG)
	fmt.Fprintf(&b, "  - Saturated Fat: %s g\n", product.Nutrition.SaturatedFatG)
	fmt.Fprintf(&b, "  - Sodium: %s mg\n", product.Nutrition.SodiumMg)
	fmt.Fprintf(&b, "  - Protein: %s g\n", product.Nutrition.ProteinG)
	fmt.Fprintf(&b, "  - Fiber: %s\n\n", product.Nutrition.FiberG)

	fmt.Fprintf(&b, "**FSSAI INR Baseline Values (2000 kcal diet):**\n")
	fmt.Fprintf(&b, "- Energy: %v kcal\n", baseline[nutrition.NutrientEnergyKcal])
	fmt.Fprintf(&b, "- Sugars: %v g\n", baseline[nutrition.NutrientSugarsG])
	fmt.Fprintf(&b, "- Saturated Fat: %v g\n", baseline[nutrition.NutrientSaturatedFatG])
	fmt.Fprintf(&b, "- Sodium: %v mg\n", baseline[nutrition.NutrientSodiumMg])
	fmt.Fprintf(&b, "- Protein: %v g\n", baseline[nutrition.NutrientProteinG])
	fmt.Fprintf(&b, "- Fiber: %v g\n\n", baseline[nutrition.NutrientFiberG])

	fmt.Fprintf(&b, "**Nutrient Analysis (%% of INR per 100g):**\n")
	for _, key := range []struct{ nutrient, label string }{
		{nutrition.NutrientEnergyKcal, "Energy"},
		{nutrition.NutrientSugarsG, "Sugars"},
		{nutrition.NutrientSaturatedFatG, "Saturated Fat"},
		{nutrition.NutrientSodiumMg, "Sodium"},
		{nutrition.NutrientProteinG, "Protein"},
	} {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", key.label, analysis[key.nutrient].PercentOfINR)
	}
	if fiber, ok := analysis[nutrition.NutrientFiberG]; ok {
		fmt.Fprintf(&b, "- Fiber: %.1f%%\n", fiber.PercentOfINR)
	}

	b.WriteString(`
**Task:**
Calculate the Indian Nutrition Rating (INR) score (0-100) using this methodology:

1. **Negative Points** (0-10 each, max 40 total):
   - Energy, Sugars, Saturated Fat, Sodium (capped at 10 points each)
   - Higher percent of INR must yield a higher (monotonic) penalty.

2. **Positive Points** (0-5 each, max 10 total):
   - Protein, Fiber (high: >=20% of baseline, source: >=10% of baseline)

3. **Final Score:**
   - Raw Score = (Total Positive - Total Negative) + 40
   - Scale to 0-100: Raw Score x 2, clamped to [0, 100]
   - Grade: A (80-100), B (60-79), C (40-59), D (20-39), E (0-19)

**Output Format (JSON only):**
{
    "negative_points": {"energy": <val>, "sugars": <val>, "saturated_fat": <val>, "sodium": <val>, "total": <val>},
    "positive_points": {"protein": <val>, "fiber": <val>, "total": <val>},
    "inr_score": <0-100>,
    "grade": "<A/B/C/D/E>",
    "interpretation": "<brief text>",
    "health_warnings": [<list>],
    "positive_claims": [<list>]
}
`)

	return b.String()
}
