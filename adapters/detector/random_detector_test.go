package detector

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeScoreRange(t *testing.T) {
	d := NewRandomDetector()
	ctx := context.Background()

	lo := decimal.NewFromFloat(0.1)
	hi := decimal.NewFromFloat(0.95)

	for i := 0; i < 100; i++ {
		result, err := d.Analyze(ctx, map[string]any{"source_ip": "10.0.0.1"})
		require.NoError(t, err)

		require.True(t, result.Score.GreaterThanOrEqual(lo), "score %s below range", result.Score)
		require.True(t, result.Score.LessThanOrEqual(hi), "score %s above range", result.Score)

		if result.IsThreat {
			require.True(t, result.Score.GreaterThan(ThreatThreshold))
			require.Equal(t, "Possible Intrusion", result.Classification)
			require.Contains(t, recommendations, result.Recommendation)
		} else {
			require.Equal(t, "Normal Traffic", result.Classification)
			require.Equal(t, "No action required", result.Recommendation)
		}

		require.False(t, result.Timestamp.IsZero())
	}
}
