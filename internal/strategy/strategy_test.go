package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

// fakeStrategy es un stub mínimo para probar el registry.
type fakeStrategy struct {
	name string
}

func (f fakeStrategy) Name() string { return f.name }

func (f fakeStrategy) Analyze(domain.DataCache, string) ([]domain.AnalysisResult, error) {
	return nil, nil
}

func TestNewRegistry_DuplicateNameFails(t *testing.T) {
	_, err := NewRegistry(fakeStrategy{name: "flip"}, fakeStrategy{name: "flip"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate strategy name")
	assert.Contains(t, err.Error(), "flip")
}

func TestNewRegistry_EmptyNameFails(t *testing.T) {
	_, err := NewRegistry(fakeStrategy{name: ""})
	assert.Error(t, err)
}

func TestNewRegistry_StableLexicographicOrder(t *testing.T) {
	r, err := NewRegistry(
		fakeStrategy{name: "tattoo_flip"},
		fakeStrategy{name: "gem_invest"},
		fakeStrategy{name: "scarab_gamble"},
	)
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	var names []string
	for _, s := range r.Strategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"gem_invest", "scarab_gamble", "tattoo_flip"}, names)
}

func TestNewRegistry_Empty(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}
