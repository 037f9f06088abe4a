package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// PasswordResetContext enumerates exactly the fields the password reset
// templates consume.
type PasswordResetContext struct {
	Username         string
	Email            string
	ResetPasswordURL string
	AppTitle         string
}

// EnrollmentConfirmedContext enumerates exactly the fields the enrollment
// confirmation templates consume.
type EnrollmentConfirmedContext struct {
	Student       string
	Courses       []string
	EnrollmentURL string
}

var passwordResetText = texttemplate.Must(texttemplate.New("password_reset.txt").Parse(
	`Hello {{.Username}},

We received a request to reset the password for the {{.AppTitle}} account
registered to {{.Email}}.

Open the link below to choose a new password:

{{.ResetPasswordURL}}

If you did not request a password reset, you can safely ignore this message.

Best regards,
The {{.AppTitle}} Team
`))

var passwordResetHTML = htmltemplate.Must(htmltemplate.New("password_reset.html").Parse(
	`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Reset your {{.AppTitle}} password</h2>
		<p>Hello {{.Username}},</p>
		<p>We received a request to reset the password for the account registered to <strong>{{.Email}}</strong>.</p>
		<div style="text-align: center; margin: 30px 0;">
			<a href="{{.ResetPasswordURL}}" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
		</div>
		<p>If you did not request a password reset, you can safely ignore this message.</p>
		<p>Best regards,<br>The {{.AppTitle}} Team</p>
	</div>
</body>
</html>
`))

var enrollmentConfirmedText = texttemplate.Must(texttemplate.New("enrolled_courses.txt").Parse(
	`Student {{.Student}} enrolled in new courses:
{{range .Courses}}  - {{.}}
{{end}}
Review the enrollment here: {{.EnrollmentURL}}
`))

var enrollmentConfirmedHTML = htmltemplate.Must(htmltemplate.New("enrolled_courses.html").Parse(
	`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Student enrolled new courses</h2>
		<p><strong>{{.Student}}</strong> enrolled in:</p>
		<ul>
		{{range .Courses}}<li>{{.}}</li>
		{{end}}</ul>
		<p><a href="{{.EnrollmentURL}}">Review the enrollment</a></p>
	</div>
</body>
</html>
`))

// renderPasswordReset renders the plain-text and HTML bodies of the
// password reset mail.
func renderPasswordReset(ctx PasswordResetContext) (text, html string, err error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := passwordResetText.Execute(&textBuf, ctx); err != nil {
		return "", "", fmt.Errorf("failed to render password reset text body: %w", err)
	}
	if err := passwordResetHTML.Execute(&htmlBuf, ctx); err != nil {
		return "", "", fmt.Errorf("failed to render password reset html body: %w", err)
	}
	return textBuf.String(), htmlBuf.String(), nil
}

// renderEnrollmentConfirmed renders the plain-text and HTML bodies of the
// enrollment confirmation mail.
func renderEnrollmentConfirmed(ctx EnrollmentConfirmedContext) (text, html string, err error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := enrollmentConfirmedText.Execute(&textBuf, ctx); err != nil {
		return "", "", fmt.Errorf("failed to render enrollment text body: %w", err)
	}
	if err := enrollmentConfirmedHTML.Execute(&htmlBuf, ctx); err != nil {
		return "", "", fmt.Errorf("failed to render enrollment html body: %w", err)
	}
	return textBuf.String(), htmlBuf.String(), nil
}
