package chat

import (
	"fmt"
	"strings"

	"github.com/Abhishek28042001/PureCheck/internal/rag"
	"github.com/Abhishek28042001/PureCheck/internal/session"
)

// regulatorySystemPrompt grounds general questions in retrieved passages and
// forbids fabrication when the context falls short.
const regulatorySystemPrompt = `You are a helpful assistant that answers questions about FSSAI food safety regulations and nutrition guidelines.
Use the following context to answer the user's question. If you don't know the answer, say so.

Context: %s`

// buildProductPrompt embeds the analyzed product into a single prompt for
// product-grounded answers. No retrieval happens in this mode.
func buildProductPrompt(sc *session.Context, message string) string {
	var b strings.Builder

	joinOr := func(items []string, fallback string) string {
		if len(items) == 0 {
			return fallback
		}
		return strings.Join(items, ", ")
	}

	b.WriteString("\nCurrent Product Analysis:\n")
	fmt.Fprintf(&b, "- Product: %s\n", orUnknown(sc.Product.ProductName))
	fmt.Fprintf(&b, "- Brand: %s\n", orUnknown(sc.Product.Brand))
	fmt.Fprintf(&b, "- Type: %s\n", orDefault(sc.Product.ProductType, "Solid"))
	fmt.Fprintf(&b, "- INR Score: %.1f/100\n", sc.Rating.INRScore)
	fmt.Fprintf(&b, "- Grade: %s\n", sc.Rating.Grade)
	fmt.Fprintf(&b, "- Energy: %s kcal/100g\n", sc.Product.Nutrition.EnergyKcal)
	fmt.Fprintf(&b, "- Sugars: %s g/100g\n", sc.Product.Nutrition.SugarsG)
	fmt.Fprintf(&b, "- Saturated Fat: %s g/100g\n", sc.Product.Nutrition.SaturatedFatG)
	fmt.Fprintf(&b, "- Sodium: %s mg/100g\n", sc.Product.Nutrition.SodiumMg)
	fmt.Fprintf(&b, "- Protein: %s g/100g\n\n", sc.Product.Nutrition.ProteinG)

	fmt.Fprintf(&b, "Health Warnings: %s\n", joinOr(sc.Rating.HealthWarnings, "None"))
	fmt.Fprintf(&b, "Positive Claims: %s\n\n", joinOr(sc.Rating.PositiveClaims, "None"))

	b.WriteString(`You are the CPG (Compliance and Product Guidance) assistant for FSSAI regulations and nutrition guidelines.
Pin-point your answers based on the product data provided above.
Tell where the guidelines fail. Which clause is violated.

`)
	fmt.Fprintf(&b, "User Question: %s\n\n", message)

	b.WriteString(`Format your response with:
- Use **bold** for important terms (wrap text in **)
- Use bullet points with "- " for lists
- Be concise and friendly
- Include relevant emojis where appropriate
`)

	return b.String()
}

// buildRegulatorySystem formats retrieved passages into the grounded system
// prompt.
func buildRegulatorySystem(passages []rag.Passage) string {
	var parts []string
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return fmt.Sprintf(regulatorySystemPrompt, strings.Join(parts, "\n\n"))
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
