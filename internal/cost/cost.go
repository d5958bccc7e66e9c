package cost

import (
	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/types"
)

// UnitPrices are the externally configured per-unit rates. The zero value is
// replaced by Defaults().
type UnitPrices struct {
	TranslatePerChar    float64 `yaml:"translate_per_char"`
	ComprehendPerCall   float64 `yaml:"comprehend_per_call"`
	TranscribePerSecond float64 `yaml:"transcribe_per_second"`
}

// Defaults returns the published rates of the backing services.
func Defaults() UnitPrices {
	return UnitPrices{
		TranslatePerChar:    0.000015,
		ComprehendPerCall:   0.0001,
		TranscribePerSecond: 0.0004,
	}
}

// Estimate converts a usage snapshot into an itemized cost table with a
// trailing TOTAL line. Pure and deterministic; line order is fixed.
func Estimate(snapshot map[string]float64, prices UnitPrices) []types.CostLine {
	lines := []types.CostLine{
		{
			Service: "Translate",
			Usage:   snapshot[ledger.TranslateChars],
			CostUSD: snapshot[ledger.TranslateChars] * prices.TranslatePerChar,
		},
		{
			Service: "Comprehend",
			Usage:   snapshot[ledger.ComprehendCalls],
			CostUSD: snapshot[ledger.ComprehendCalls] * prices.ComprehendPerCall,
		},
		{
			Service: "Transcribe",
			Usage:   snapshot[ledger.TranscribeSeconds],
			CostUSD: snapshot[ledger.TranscribeSeconds] * prices.TranscribePerSecond,
		},
	}

	total := 0.0
	for _, l := range lines {
		total += l.CostUSD
	}
	return append(lines, types.CostLine{Service: types.TotalService, CostUSD: total})
}
