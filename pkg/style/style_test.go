package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignColors(t *testing.T) {
	assert.Equal(t, PositiveColors, SignColors(0.1))
	assert.Equal(t, NegativeColors, SignColors(-0.1))
	assert.Nil(t, SignColors(0))
}

func TestHasColor(t *testing.T) {
	assert.True(t, HasColor(NewDefaultTableStyle()))
	assert.False(t, HasColor(NewPlainTableStyle()))
	assert.False(t, HasColor(nil))
}
