package domain

import "context"

// ContactSubmission carries one contact-form POST together with the request
// context the anti-abuse gate needs: the visitor's session id, client IP,
// the one-time form token, the hidden honeypot value and the CAPTCHA
// challenge response.
type ContactSubmission struct {
	SessionID       string
	ClientIP        string
	FormToken       string
	Honeypot        string
	CaptchaResponse string

	Name    string
	Email   string
	Phone   string
	Message string
	Consent string
}

// ContactResult is the outcome of an accepted submission. Delivered=false
// means the gate passed but the notification email could not be sent; the
// visitor gets a soft "try later" notice rather than a failure.
type ContactResult struct {
	Delivered bool
	Message   string
}

// ContactUsecase runs the submission gate and, on success, dispatches the
// owner notification email.
type ContactUsecase interface {
	// IssueFormToken creates a fresh one-time token for the session, as done
	// when the contact page is rendered.
	IssueFormToken(ctx context.Context, sessionID string) (string, error)

	// Submit evaluates the gate checks in order and sends the email. Gate
	// and field rejections come back as *apperror.AppError.
	Submit(ctx context.Context, sub *ContactSubmission) (*ContactResult, error)
}
