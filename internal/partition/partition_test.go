package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterType(t *testing.T) {
	cases := map[string]FilterType{
		"in":     In,
		" IN ":   In,
		"not_in": NotIn,
		"not-in": NotIn,
		"":       All,
		"all":    All,
	}
	for input, want := range cases {
		got, err := ParseFilterType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseFilterType("between")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilterKeep(t *testing.T) {
	special := []string{"video41", "video42"}

	in := NewFilter(special, In)
	assert.True(t, in.Keep("video41"))
	assert.False(t, in.Keep("video01"))

	notIn := NewFilter(special, NotIn)
	assert.False(t, notIn.Keep("video42"))
	assert.True(t, notIn.Keep("video01"))

	all := NewFilter(special, All)
	assert.True(t, all.Keep("video41"))
	assert.True(t, all.Keep("video01"))
}

func TestFilterType(t *testing.T) {
	assert.Equal(t, NotIn, NewFilter(nil, NotIn).Type())
	assert.Equal(t, All, NewFilter([]string{"video41"}, "").Type())
	assert.True(t, NewFilter([]string{"video41"}, "").Keep("video41"))
}
