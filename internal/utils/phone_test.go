package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneNumber(t *testing.T) {
	got, err := NormalizePhoneNumber("(650) 253-0000", "US")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)

	got, err = NormalizePhoneNumber("+44 20 7031 3000", "US")
	require.NoError(t, err)
	assert.Equal(t, "+442070313000", got)

	_, err = NormalizePhoneNumber("12", "US")
	assert.Error(t, err)

	_, err = NormalizePhoneNumber("not a phone", "US")
	assert.Error(t, err)
}
