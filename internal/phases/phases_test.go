package phases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinMappings(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{Cholec80, M2CAI16}, r.Datasets())

	cholec, err := r.Lookup(Cholec80)
	require.NoError(t, err)
	assert.Equal(t, 7, cholec.NumClasses())
	assert.Equal(t, "Preparation", cholec.Names()[0])
	assert.Equal(t, "GallbladderRetraction", cholec.Names()[6])

	m2cai, err := r.Lookup(M2CAI16)
	require.NoError(t, err)
	assert.Equal(t, 8, m2cai.NumClasses())
	label, err := m2cai.Label("TrocarPlacement")
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestLabelUnknownPhase(t *testing.T) {
	_, err := NewRegistry().mappings[Cholec80].Label("TrocarPlacement")
	assert.ErrorIs(t, err, ErrUnknownPhase)
}

func TestRegisterOverrides(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("custom")
	assert.ErrorIs(t, err, ErrUnknownDataset)

	r.Register(" custom ", Mapping{"a": 0, "b": 1})
	m, err := r.Lookup("custom")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Names())
}
