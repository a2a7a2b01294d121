package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.Valid())

	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())

	// the first error for a field wins
	v.Check(false, "title", "another message")
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestValidationErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		errors   map[string]string
		expected string
	}{
		{
			name:     "single field",
			errors:   map[string]string{"title": "must be provided"},
			expected: "title must be provided",
		},
		{
			name: "fields are sorted",
			errors: map[string]string{
				"url":   "must be provided",
				"title": "must be provided",
			},
			expected: "title must be provided; url must be provided",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ve := ValidationError{Errors: tc.errors}
			assert.Equal(t, tc.expected, ve.Message())
		})
	}
}
