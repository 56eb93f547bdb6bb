package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 50},
		{"abc", 50},
		{"10", 10},
		{"0", 1},
		{"-5", 1},
		{"200", 200},
		{"10000", 200},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampLimit(tt.raw))
		})
	}
}
