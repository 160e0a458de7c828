package nutrition

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ProductRecord is the structured label data extracted from a product image.
type ProductRecord struct {
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand"`
	ProductType string          `json:"product_type"` // Solid | Liquid | Semi-solid | Other
	PackageSize string          `json:"package_size"`
	ServingSize string          `json:"serving_size"`
	Nutrition   NutrientProfile `json:"nutritional_info_per_100g"`
}

// NutrientProfile holds the per-100g (or per-100ml) values read off the label.
type NutrientProfile struct {
	EnergyKcal     Amount            `json:"energy_kcal"`
	EnergyKj       Amount            `json:"energy_kj"`
	CarbohydratesG Amount            `json:"carbohydrates_g"`
	SugarsG        Amount            `json:"sugars_g"`
	AddedSugarsG   Amount            `json:"added_sugars_g"`
	TotalFatG      Amount            `json:"total_fat_g"`
	SaturatedFatG  Amount            `json:"saturated_fat_g"`
	TransFatG      Amount            `json:"trans_fat_g"`
	SodiumMg       Amount            `json:"sodium_mg"`
	ProteinG       Amount            `json:"protein_g"`
	FiberG         Amount            `json:"fiber_g"`
	OtherNutrients map[string]Amount `json:"other_nutrients,omitempty"`
}

// Amount is a nutrient quantity as reported by the vision model. The model
// replies with a number, a numeric string, "Not Available"/"N/A", or null
// depending on what is legible on the label, so the raw form must survive
// decoding without being coerced to zero.
type Amount struct {
	value   float64
	present bool
}

// NewAmount returns a present Amount with the given value.
func NewAmount(v float64) Amount {
	return Amount{value: v, present: true}
}

// NotAvailable returns an absent Amount.
func NotAvailable() Amount {
	return Amount{}
}

// Value reports the numeric value and whether one was available.
func (a Amount) Value() (float64, bool) {
	return a.value, a.present
}

// Or returns the value, or fallback when the amount is not available.
func (a Amount) Or(fallback float64) float64 {
	if !a.present {
		return fallback
	}
	return a.value
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = Amount{}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = Amount{value: num, present: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Unexpected shape (object, array). Treat as not available rather
		// than failing the whole record.
		*a = Amount{}
		return nil
	}

	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "not available", "n/a", "na", "unknown":
		*a = Amount{}
		return nil
	}

	// Numeric strings like "450" or "12.5 g" show up regularly.
	s = strings.Fields(s)[0]
	num, err := strconv.ParseFloat(strings.TrimSuffix(s, "g"), 64)
	if err != nil {
		*a = Amount{}
		return nil
	}

	*a = Amount{value: num, present: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.present {
		return json.Marshal("Not Available")
	}
	return json.Marshal(a.value)
}

// String renders the amount for prompt embedding.
func (a Amount) String() string {
	if !a.present {
		return "Not Available"
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

func (p NutrientProfile) amount(nutrient string) Amount {
	switch nutrient {
	case NutrientEnergyKcal:
		return p.EnergyKcal
	case NutrientCarbohydratesG:
		return p.CarbohydratesG
	case NutrientSugarsG:
		return p.SugarsG
	case NutrientAddedSugarsG:
		return p.AddedSugarsG
	case NutrientTotalFatG:
		return p.TotalFatG
	case NutrientSaturatedFatG:
		return p.SaturatedFatG
	case NutrientSodiumMg:
		return p.SodiumMg
	case NutrientProteinG:
		return p.ProteinG
	case NutrientFiberG:
		return p.FiberG
	}
	return Amount{}
}
