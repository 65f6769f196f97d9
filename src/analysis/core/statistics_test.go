package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)

	mean, std = CalculateMeanStd([]float64{4})
	assert.Equal(t, 4.0, mean)
	assert.Zero(t, std)

	mean, std = CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, std, 1e-9)
}
