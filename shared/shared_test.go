package shared_test

import (
	"carepoint/shared"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{
			name:     "prefix only",
			prefix:   "appointment:wizard",
			expected: "appointment:wizard",
		},
		{
			name:     "single part",
			prefix:   "appointment:wizard",
			parts:    []string{"4f1c"},
			expected: "appointment:wizard:4f1c",
		},
		{
			name:     "empty parts skipped",
			prefix:   "limiter",
			parts:    []string{"10.0.0.1", "", "curl/8"},
			expected: "limiter:10.0.0.1:curl/8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.BuildCacheKey(tt.prefix, tt.parts...))
		})
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "empty", input: nil, expected: nil},
		{name: "slots", input: []string{"09:00", " 10:30", "", "16:00 "}, expected: []string{"09:00", "10:30", "16:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.NormalizeList(tt.input))
		})
	}
}
