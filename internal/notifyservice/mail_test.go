package notifyservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendMail(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "sender@example.com",
	}

	data := struct {
		Username string
	}{
		Username: "testuser",
	}

	subject := bytes.NewBufferString("New user registered: testuser")
	plainBody := bytes.NewBufferString("A new user just signed up.")
	htmlBody := bytes.NewBufferString("<p>A new user just signed up.</p>")
	mockParser.On("ParseTemplate", "new_user_email.html", data).Return(subject, plainBody, htmlBody, nil)

	mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Return(nil)

	err := mailer.send("admin@example.com", data, "new_user_email.html")
	assert.NoError(t, err)

	mockParser.AssertExpectations(t)
	mockDialer.AssertExpectations(t)
}

func TestSendMailDialerFailure(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "sender@example.com",
	}

	subject := bytes.NewBufferString("subject")
	plainBody := bytes.NewBufferString("plain")
	htmlBody := bytes.NewBufferString("html")
	mockParser.On("ParseTemplate", "new_user_email.html", mock.Anything).Return(subject, plainBody, htmlBody, nil)

	mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Return(errors.New("connection refused"))

	err := mailer.send("admin@example.com", nil, "new_user_email.html")
	assert.Error(t, err)

	mockDialer.AssertExpectations(t)
}
