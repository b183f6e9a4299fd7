package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"already canonical", "first name", "first name"},
		{"uppercase", "First Name", "first name"},
		{"punctuation stripped", "E-mail (work)", "email work"},
		{"whitespace collapsed", "  first   \t name \n", "first name"},
		{"digits kept", "Address Line 2", "address line 2"},
		{"only punctuation", "***", ""},
		{"unicode stripped", "prénom", "prnom"},
		{"leading punctuation", "*Last Name", "last name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"First Name",
		"  weird \t spacing  ",
		"symbols !@#$ mixed 123",
		"already canonical text",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}
