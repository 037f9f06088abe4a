package notifications

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/truelife/learningapp/internal/pkg/events"
	"github.com/truelife/learningapp/internal/pkg/mailer"
)

// Event kinds produced by the application
const (
	KindPasswordResetRequested events.Kind = "password_reset.requested"
	KindEnrollmentCompleted    events.Kind = "enrollment.completed"
)

// PasswordResetRequested is raised after a reset token has been issued
type PasswordResetRequested struct {
	Username string
	Email    string
	TokenKey string
}

// Kind implements events.Event
func (PasswordResetRequested) Kind() events.Kind { return KindPasswordResetRequested }

// EnrollmentCompleted is raised after an enrollment transaction commits
type EnrollmentCompleted struct {
	StudentName  string
	StudentEmail string
	Courses      []string
}

// Kind implements events.Event
func (EnrollmentCompleted) Kind() events.Kind { return KindEnrollmentCompleted }

// Config holds the fixed addresses and links the dispatcher needs
type Config struct {
	// AppTitle names the application in subjects and bodies
	AppTitle string
	// ResetPasswordURL is the confirm page the reset link points at;
	// the token key is appended as a query parameter
	ResetPasswordURL string
	// AdminEnrollmentURL is the fixed administrative review link included
	// in enrollment confirmation mails
	AdminEnrollmentURL string
	// OperatorEmail is the fixed recipient of enrollment confirmations
	OperatorEmail string
}

// Dispatcher renders and sends outbound notification mails in response to
// domain events. Send failures never propagate past the event bus: the
// business result of the triggering operation is already decided when a
// notification is raised.
type Dispatcher struct {
	sender mailer.Sender
	config Config
	logger zerolog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(sender mailer.Sender, config Config, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		config: config,
		logger: logger,
	}
}

// Register subscribes the dispatcher's handlers on the bus. Called once
// during application startup.
func (d *Dispatcher) Register(bus *events.Bus) {
	bus.Subscribe(KindPasswordResetRequested, d.handlePasswordResetRequested)
	bus.Subscribe(KindEnrollmentCompleted, d.handleEnrollmentCompleted)
}

// handlePasswordResetRequested mails the reset link to the token owner
func (d *Dispatcher) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	evt, ok := event.(PasswordResetRequested)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event, KindPasswordResetRequested)
	}

	renderCtx := PasswordResetContext{
		Username:         evt.Username,
		Email:            evt.Email,
		ResetPasswordURL: fmt.Sprintf("%s?token=%s", d.config.ResetPasswordURL, evt.TokenKey),
		AppTitle:         d.config.AppTitle,
	}

	textBody, htmlBody, err := renderPasswordReset(renderCtx)
	if err != nil {
		return err
	}

	d.logger.Info().Str("email", evt.Email).Msg("Sending password reset mail")
	return d.sender.Send(&mailer.Message{
		To:       []string{evt.Email},
		Subject:  fmt.Sprintf("Password Reset for %s", d.config.AppTitle),
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}

// handleEnrollmentCompleted mails the course list to the operator address
func (d *Dispatcher) handleEnrollmentCompleted(ctx context.Context, event events.Event) error {
	evt, ok := event.(EnrollmentCompleted)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event, KindEnrollmentCompleted)
	}

	renderCtx := EnrollmentConfirmedContext{
		Student:       evt.StudentName,
		Courses:       evt.Courses,
		EnrollmentURL: d.config.AdminEnrollmentURL,
	}

	textBody, htmlBody, err := renderEnrollmentConfirmed(renderCtx)
	if err != nil {
		return err
	}

	d.logger.Info().
		Str("student", evt.StudentName).
		Int("courses", len(evt.Courses)).
		Msg("Sending enrollment confirmation mail")
	return d.sender.Send(&mailer.Message{
		From:     evt.StudentEmail,
		To:       []string{d.config.OperatorEmail},
		Subject:  "Student enrolled new courses",
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}
