package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name  string
		qty   int
		price float64
		want  float64
	}{
		{"copies", 50, 0.10, 5.00},
		{"lamination", 3, 2.00, 6.00},
		{"float noise", 3, 0.1, 0.3},
		{"half cent rounds away from zero", 1, 2.675, 2.68},
		{"zero quantity", 0, 15.00, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineTotal(tt.qty, tt.price))
		})
	}
}

func TestSumRounded(t *testing.T) {
	assert.Equal(t, 11.00, SumRounded(5.00, 6.00))
	assert.Equal(t, 0.3, SumRounded(0.1, 0.2))
	assert.Equal(t, 0.0, SumRounded())
	assert.Equal(t, 156.5, SumRounded(145.5, 11.0))
	assert.Equal(t, 145.5, SumRounded(156.5, -11.0))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(0, 0))
	assert.Equal(t, 0.0, Average(100, -1))
	assert.Equal(t, 3.33, Average(10, 3))
	assert.Equal(t, 7.5, Average(15, 2))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 42.0, Round2(42))
}
