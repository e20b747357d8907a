package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		param    string
		expected int
	}{
		{"", 10},
		{"notanumber", 10},
		{"--notanumber", 10},
		{"--17", 17},
		{"--1", 1},
		{"--50", 50},
		{"--0", 1},
		{"--999", 50},
		{"  --5  ", 5},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLimit(tt.param))
		})
	}
}
