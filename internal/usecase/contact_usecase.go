package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"html"
	"strings"
	"time"

	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/internal/session"
	"go-consultancy-backend/pkg/apperror"
	"go-consultancy-backend/pkg/logger"
	"go-consultancy-backend/pkg/mailer"
)

const (
	// formTokenTTL is how long an issued one-time form token stays valid.
	formTokenTTL = 2 * time.Hour
	// submissionCooldown is the minimum gap between successful submissions
	// from the same session.
	submissionCooldown = 45 * time.Second
	// minMessageLength is the shortest acceptable contact message.
	minMessageLength = 10
)

type contactUsecase struct {
	sessions       session.Store
	mail           domain.Mailer
	captcha        domain.CaptchaVerifier
	ownerRecipient string
}

// NewContactUsecase creates the contact form usecase: the anti-abuse gate in
// front of the owner notification email.
func NewContactUsecase(sessions session.Store, mail domain.Mailer, captcha domain.CaptchaVerifier, ownerRecipient string) domain.ContactUsecase {
	return &contactUsecase{
		sessions:       sessions,
		mail:           mail,
		captcha:        captcha,
		ownerRecipient: ownerRecipient,
	}
}

func (uc *contactUsecase) IssueFormToken(ctx context.Context, sessionID string) (string, error) {
	return uc.sessions.IssueFormToken(ctx, sessionID)
}

// Submit runs the gate checks in a fixed order: honeypot, one-time token,
// token expiry, cooldown, CAPTCHA, field validation. Only the first three
// consume the session token on failure; the cooldown and field stages leave
// it in place because the form was never re-rendered.
func (uc *contactUsecase) Submit(ctx context.Context, sub *domain.ContactSubmission) (*domain.ContactResult, error) {
	// 1. Honeypot: a hidden field no human fills in. Non-empty means a bot,
	// regardless of everything else.
	if strings.TrimSpace(sub.Honeypot) != "" {
		_ = uc.sessions.ClearFormToken(ctx, sub.SessionID)
		logger.Log.Warn("Contact submission rejected: honeypot filled", "ip", sub.ClientIP)
		return nil, apperror.BadRequest("Your submission could not be processed.")
	}

	// 2. One-time token must match what this session was issued.
	issued, issuedAt, err := uc.sessions.FormToken(ctx, sub.SessionID)
	if err != nil || sub.FormToken == "" ||
		subtle.ConstantTimeCompare([]byte(issued), []byte(sub.FormToken)) != 1 {
		_ = uc.sessions.ClearFormToken(ctx, sub.SessionID)
		if err != nil && err != session.ErrNoToken {
			logger.Log.Error("Contact submission rejected: session read failed", "error", err)
		} else {
			logger.Log.Warn("Contact submission rejected: form token missing or mismatched", "ip", sub.ClientIP)
		}
		return nil, apperror.BadRequest("Your form session is invalid. Please reload the page and try again.")
	}

	// 3. Token expiry.
	if time.Since(issuedAt) > formTokenTTL {
		_ = uc.sessions.ClearFormToken(ctx, sub.SessionID)
		logger.Log.Warn("Contact submission rejected: form token expired", "ip", sub.ClientIP)
		return nil, apperror.BadRequest("Your form session has expired. Please reload the page and try again.")
	}

	// 4. Cooldown since the last successful submission. The token survives
	// this rejection.
	last, hasLast, err := uc.sessions.LastSubmission(ctx, sub.SessionID)
	if err != nil {
		logger.Log.Error("Contact cooldown check failed", "error", err)
	} else if hasLast && time.Since(last) <= submissionCooldown {
		logger.Log.Warn("Contact submission rejected: cooldown active", "ip", sub.ClientIP)
		return nil, apperror.BadRequest("You are sending messages too quickly. Please wait a moment and try again.")
	}

	// 5. CAPTCHA, only when keys are configured. Unconfigured means skipped
	// and treated as passing; this fail-open policy is deliberate.
	if uc.captcha.Configured() {
		ok, err := uc.captcha.Verify(ctx, sub.CaptchaResponse, sub.ClientIP)
		if err != nil {
			logger.Log.Error("Contact submission rejected: CAPTCHA verification error", "error", err)
			return nil, apperror.BadRequest("We could not verify you are human. Please try again.")
		}
		if !ok {
			logger.Log.Warn("Contact submission rejected: CAPTCHA failed", "ip", sub.ClientIP)
			return nil, apperror.BadRequest("CAPTCHA verification failed. Please try again.")
		}
	} else {
		logger.Log.Warn("CAPTCHA keys not configured; skipping verification")
	}

	// 6. Field validation. The token survives this rejection too.
	if msg := validateContactFields(sub); msg != "" {
		return nil, apperror.BadRequest(msg)
	}

	res := uc.mail.SendHTMLEmail(ctx, mailer.HTMLEmail{
		Subject:    fmt.Sprintf("New Contact Form Submission from %s", sub.Name),
		Recipients: []string{uc.ownerRecipient},
		HTMLBody:   contactEmailBody(sub),
		ReplyTo:    sub.Email,
	})
	if !res.OK() {
		logger.Log.Error("Contact email dispatch failed",
			"status", res.StatusCode, "error", res.Err)
		return &domain.ContactResult{
			Delivered: false,
			Message:   "Sorry, there was an error sending your message. Please try again later.",
		}, nil
	}

	// A successful send starts the cooldown and consumes the token, forcing
	// a fresh page render before the next attempt.
	if err := uc.sessions.SetLastSubmission(ctx, sub.SessionID, time.Now()); err != nil {
		logger.Log.Error("Failed to record last submission", "error", err)
	}
	_ = uc.sessions.ClearFormToken(ctx, sub.SessionID)

	return &domain.ContactResult{
		Delivered: true,
		Message:   "Thank you for getting in touch! Your message has been sent.",
	}, nil
}

// validateContactFields returns a field-specific rejection message, or ""
// when all required fields are acceptable.
func validateContactFields(sub *domain.ContactSubmission) string {
	switch {
	case strings.TrimSpace(sub.Name) == "":
		return "Please provide your name."
	case strings.TrimSpace(sub.Email) == "":
		return "Please provide your email address."
	case strings.TrimSpace(sub.Phone) == "":
		return "Please provide your phone number."
	case strings.TrimSpace(sub.Message) == "":
		return "Please write a message."
	case len(strings.TrimSpace(sub.Message)) < minMessageLength:
		return fmt.Sprintf("Your message must be at least %d characters long.", minMessageLength)
	case strings.TrimSpace(sub.Consent) == "":
		return "Please give consent so we can respond to your message."
	}
	return ""
}

// contactEmailBody renders the owner notification with all visitor input
// escaped.
func contactEmailBody(sub *domain.ContactSubmission) string {
	safeMessage := strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>")
	return fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<p><strong>Message:</strong><br>%s</p>",
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email),
		html.EscapeString(sub.Phone),
		safeMessage,
	)
}
