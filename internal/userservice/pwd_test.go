package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordSet(t *testing.T) {
	var p1, p2 Password

	err := p1.set("sekret")
	assert.NoError(t, err)

	err = p2.set("sekret")
	assert.NoError(t, err)

	// bcrypt salts per hash, so the same password never hashes the same twice
	assert.NotEqual(t, p1.hash, p2.hash)
}

func TestPasswordCompare(t *testing.T) {
	var p Password

	err := p.set("sekret")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		expected bool
	}{
		{
			name:     "correct password",
			password: "sekret",
			expected: true,
		},
		{
			name:     "wrong password",
			password: "wrong",
			expected: false,
		},
		{
			name:     "empty password",
			password: "",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := p.compare(tc.password)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}
