package poeninja

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapItemLines(t *testing.T) {
	lines := []itemLine{
		{Name: "Rusted Scarab", ChaosValue: 1, Count: 50},
		{Name: "Gilded Scarab", ChaosValue: 1000, Count: 3},       // ilíquido
		{Name: "", ChaosValue: 10, Count: 50},                     // sin nombre
		{Name: "Negative", ChaosValue: -1, Count: 50},             // precio inválido
		{Name: "Blacklisted Scarab", ChaosValue: 5, Count: 50},    // en blacklist
		{Name: "No Count Scarab", ChaosValue: 5, Count: 0},        // sin dato: pasa
		{Name: "Fireball", ChaosValue: 10, Count: 20, GemLevel: 21, GemQuality: 20, Corrupted: true},
	}
	blacklist := map[string]bool{"Blacklisted Scarab": true}

	table := mapItemLines(lines, blacklist, 10)

	names := table.Names()
	assert.Equal(t, []string{"Rusted Scarab", "No Count Scarab", "Fireball"}, names)

	// Los atributos de gema sobreviven el mapeo
	gem := table[2]
	assert.Equal(t, 21, gem.GemLevel)
	assert.Equal(t, 20, gem.GemQuality)
	assert.True(t, gem.Corrupted)
}

func TestMapItemLines_NoListingsFloor(t *testing.T) {
	lines := []itemLine{{Name: "x", ChaosValue: 1, Count: 1}}
	assert.Len(t, mapItemLines(lines, nil, 0), 1)
}

func TestMapCurrencyLines(t *testing.T) {
	payload := `{
		"lines": [
			{"currencyTypeName": "Divine Orb", "chaosEquivalent": 210.5, "receive": {"count": 9000}},
			{"currencyTypeName": "Vaal Orb", "chaosEquivalent": 1.2},
			{"currencyTypeName": "", "chaosEquivalent": 5},
			{"currencyTypeName": "Mirror Shard", "chaosEquivalent": -1}
		]
	}`

	var resp currencyOverviewResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	table := mapCurrencyLines(resp.Lines, nil)
	require.Len(t, table, 2)

	divine, ok := table.PriceOf("Divine Orb")
	require.True(t, ok)
	assert.Equal(t, 210.5, divine)
	assert.Equal(t, 9000, table[0].Listings)

	// Sin lado receive el count queda a cero, pero la moneda se conserva
	vaal := table[1]
	assert.Equal(t, "Vaal Orb", vaal.Name)
	assert.Equal(t, 0, vaal.Listings)
}
