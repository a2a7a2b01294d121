package notifyservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	tp := NewTemplate()

	data := struct {
		Username   string
		Name       string
		SignedUpAt string
	}{
		Username:   "testuser",
		Name:       "Test User",
		SignedUpAt: "Mon, 01 Jan 2024 00:00:00 UTC",
	}

	subject, plainBody, htmlBody, err := tp.ParseTemplate("new_user_email.html", data)
	assert.NoError(t, err)
	assert.Equal(t, "New user registered: testuser", subject.String())
	assert.Contains(t, plainBody.String(), "testuser")
	assert.Contains(t, plainBody.String(), "Test User")
	assert.Contains(t, htmlBody.String(), "testuser")

	_, _, _, err = tp.ParseTemplate("missing.html", data)
	assert.Error(t, err)
}
