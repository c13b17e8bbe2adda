package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = RiskThresholds{Low: 15, Medium: 50, High: 150, Extreme: 500}

func TestRiskThresholds_Classify_InclusiveLow(t *testing.T) {
	// Los límites son inclusivos por abajo: exactamente 15 sigue siendo Low
	assert.Equal(t, RiskLow, testThresholds.Classify(15))
	assert.Equal(t, RiskMedium, testThresholds.Classify(15.01))
	assert.Equal(t, RiskMedium, testThresholds.Classify(50))
	assert.Equal(t, RiskHigh, testThresholds.Classify(50.01))
	assert.Equal(t, RiskHigh, testThresholds.Classify(150))
	assert.Equal(t, RiskExtreme, testThresholds.Classify(150.01))
	assert.Equal(t, RiskExtreme, testThresholds.Classify(500))
	assert.Equal(t, RiskExtreme, testThresholds.Classify(500.01))
}

func TestRiskThresholds_Classify_DegenerateInputs(t *testing.T) {
	assert.Equal(t, RiskLow, testThresholds.Classify(0))
	assert.Equal(t, RiskLow, testThresholds.Classify(-5))
	assert.Equal(t, RiskLow, testThresholds.Classify(math.NaN()))
}

func TestRiskThresholds_Validate(t *testing.T) {
	require.NoError(t, testThresholds.Validate())

	// No ascendente
	bad := RiskThresholds{Low: 50, Medium: 15, High: 150, Extreme: 500}
	assert.Error(t, bad.Validate())

	// Umbrales iguales tampoco valen
	flat := RiskThresholds{Low: 15, Medium: 15, High: 150, Extreme: 500}
	assert.Error(t, flat.Validate())

	negative := RiskThresholds{Low: -1, Medium: 15, High: 150, Extreme: 500}
	assert.Error(t, negative.Validate())
}

func TestRiskProfile_StringRoundTrip(t *testing.T) {
	for _, r := range []RiskProfile{RiskLow, RiskMedium, RiskHigh, RiskExtreme, RiskInvestment} {
		parsed, ok := RiskProfileFromString(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, parsed)
	}

	_, ok := RiskProfileFromString("nonsense")
	assert.False(t, ok)
}
