package observability

import "strconv"

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// GPT-4.1-mini pricing (the default curator model)
	gpt41MiniInputPrice  = 0.0004
	gpt41MiniOutputPrice = 0.0016

	// GPT-4o pricing
	gpt4oInputPrice  = 0.005
	gpt4oOutputPrice = 0.015

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006

	// Gemini 2.0 Flash pricing
	gemini20FlashInputPrice  = 0.0001
	gemini20FlashOutputPrice = 0.0004
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for the curator models
var PricingTable = map[string]ModelPricing{
	"gpt-4.1-mini": {
		InputPricePer1K:  gpt41MiniInputPrice,
		OutputPricePer1K: gpt41MiniOutputPrice,
	},
	"gpt-4o": {
		InputPricePer1K:  gpt4oInputPrice,
		OutputPricePer1K: gpt4oOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
	"gemini-2.0-flash": {
		InputPricePer1K:  gemini20FlashInputPrice,
		OutputPricePer1K: gemini20FlashOutputPrice,
	},
}

// CalculateCost calculates the cost in USD for a completion
func CalculateCost(model string, inputTokens, outputTokens int64) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		// Default to the curator model's pricing if model not found
		pricing = PricingTable["gpt-4.1-mini"]
	}

	inputCost := (float64(inputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(outputTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', costFormatPrecision, 64)
}
