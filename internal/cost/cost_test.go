package cost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"news-sentiment-go/internal/cost"
	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/types"
)

func TestEstimateKnownSnapshot(t *testing.T) {
	snapshot := map[string]float64{
		ledger.TranslateChars:    1199,
		ledger.ComprehendCalls:   10,
		ledger.TranscribeSeconds: 900,
	}
	lines := cost.Estimate(snapshot, cost.Defaults())
	require.Len(t, lines, 4)

	require.Equal(t, "Translate", lines[0].Service)
	require.InDelta(t, 1199*0.000015, lines[0].CostUSD, 1e-12)
	require.Equal(t, "Comprehend", lines[1].Service)
	require.InDelta(t, 10*0.0001, lines[1].CostUSD, 1e-12)
	require.Equal(t, "Transcribe", lines[2].Service)
	require.InDelta(t, 900*0.0004, lines[2].CostUSD, 1e-12)

	total := lines[3]
	require.Equal(t, types.TotalService, total.Service)
	require.Zero(t, total.Usage)
	require.InDelta(t, lines[0].CostUSD+lines[1].CostUSD+lines[2].CostUSD, total.CostUSD, 1e-12)
}

func TestEstimateEmptySnapshot(t *testing.T) {
	lines := cost.Estimate(map[string]float64{}, cost.Defaults())
	require.Len(t, lines, 4)
	for _, l := range lines {
		require.Zero(t, l.CostUSD)
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	snapshot := map[string]float64{
		ledger.TranslateChars:    42,
		ledger.ComprehendCalls:   7,
		ledger.TranscribeSeconds: 30,
	}
	require.Equal(t,
		cost.Estimate(snapshot, cost.Defaults()),
		cost.Estimate(snapshot, cost.Defaults()),
	)
}
