package domain

import (
	"context"

	"go-consultancy-backend/pkg/mailer"
)

// Mailer is the mail-dispatch collaborator. Implementations fail closed:
// a message either comes back delivered or not, never as a fault.
type Mailer interface {
	IsConfigured() bool
	SendHTMLEmail(ctx context.Context, msg mailer.HTMLEmail) mailer.Result
	SendDynamicTemplateEmail(ctx context.Context, msg mailer.TemplateEmail) mailer.Result
}

// CaptchaVerifier checks visitor challenge responses. Configured() is false
// when no CAPTCHA keys are set, in which case the gate skips the check.
type CaptchaVerifier interface {
	Configured() bool
	Verify(ctx context.Context, responseToken, remoteIP string) (bool, error)
}
