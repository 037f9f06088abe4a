package notifications_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/notifications"
	"github.com/truelife/learningapp/internal/pkg/events"
	"github.com/truelife/learningapp/internal/pkg/mailer"
)

// fakeSender captures outbound messages instead of talking SMTP
type fakeSender struct {
	sent    []*mailer.Message
	failErr error
}

func (s *fakeSender) Send(msg *mailer.Message) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newTestDispatcher(sender mailer.Sender) (*notifications.Dispatcher, *events.Bus) {
	dispatcher := notifications.NewDispatcher(sender, notifications.Config{
		AppTitle:           "LearningApp",
		ResetPasswordURL:   "https://app.example.com/reset-password",
		AdminEnrollmentURL: "https://app.example.com/admin/learning/enrollment/",
		OperatorEmail:      "operator@learningapp.local",
	}, zerolog.Nop())

	bus := events.NewBus(zerolog.Nop())
	dispatcher.Register(bus)
	return dispatcher, bus
}

func TestPasswordResetMail(t *testing.T) {
	sender := &fakeSender{}
	_, bus := newTestDispatcher(sender)

	bus.Publish(context.Background(), notifications.PasswordResetRequested{
		Username: "Aye Chan",
		Email:    "aye@example.com",
		TokenKey: "abc-123",
	})

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"aye@example.com"}, msg.To)
	assert.Equal(t, "Password Reset for LearningApp", msg.Subject)
	assert.Contains(t, msg.TextBody, "https://app.example.com/reset-password?token=abc-123")
	assert.Contains(t, msg.HTMLBody, "https://app.example.com/reset-password?token=abc-123")
	assert.Contains(t, msg.TextBody, "Aye Chan")
}

func TestEnrollmentConfirmationMail(t *testing.T) {
	sender := &fakeSender{}
	_, bus := newTestDispatcher(sender)

	bus.Publish(context.Background(), notifications.EnrollmentCompleted{
		StudentName:  "Aye Chan",
		StudentEmail: "aye@example.com",
		Courses:      []string{"Go for Working Programmers", "PostgreSQL in Practice"},
	})

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]

	// Confirmation mail goes to the fixed operator address, sent as the
	// enrolling student
	assert.Equal(t, "aye@example.com", msg.From)
	assert.Equal(t, []string{"operator@learningapp.local"}, msg.To)
	assert.Equal(t, "Student enrolled new courses", msg.Subject)
	assert.Contains(t, msg.TextBody, "Go for Working Programmers")
	assert.Contains(t, msg.TextBody, "PostgreSQL in Practice")
	assert.Contains(t, msg.TextBody, "https://app.example.com/admin/learning/enrollment/")
	assert.Contains(t, msg.HTMLBody, "<li>Go for Working Programmers</li>")
}

func TestSendFailureStaysInsideTheBus(t *testing.T) {
	sender := &fakeSender{failErr: errors.New("smtp connection refused")}
	_, bus := newTestDispatcher(sender)

	// Publish must not panic or surface the error; the triggering
	// operation already succeeded when the event was raised
	bus.Publish(context.Background(), notifications.PasswordResetRequested{
		Username: "Aye Chan",
		Email:    "aye@example.com",
		TokenKey: "abc-123",
	})
	assert.Empty(t, sender.sent)
}
