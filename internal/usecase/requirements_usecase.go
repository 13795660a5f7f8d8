package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/internal/pricing"
	"go-consultancy-backend/pkg/apperror"
	"go-consultancy-backend/pkg/logger"
	"go-consultancy-backend/pkg/mailer"
	"go-consultancy-backend/pkg/validation"
)

type requirementsUsecase struct {
	mail            domain.Mailer
	validate        *validator.Validate
	templateID      string
	ownerRecipient  string
	fallbackContact string
}

// NewRequirementsUsecase creates the project-requirements intake usecase:
// quote calculation plus the owner notification and customer receipt emails.
func NewRequirementsUsecase(mail domain.Mailer, validate *validator.Validate, templateID, ownerRecipient, fallbackContact string) domain.RequirementsUsecase {
	return &requirementsUsecase{
		mail:            mail,
		validate:        validate,
		templateID:      templateID,
		ownerRecipient:  ownerRecipient,
		fallbackContact: fallbackContact,
	}
}

func (uc *requirementsUsecase) Submit(ctx context.Context, req *domain.RequirementsRequest) (*domain.RequirementsResult, error) {
	if err := uc.validate.Struct(req); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return nil, apperror.BadRequest(strings.Join(msgs, "; "))
	}

	if !uc.mail.IsConfigured() || uc.templateID == "" || uc.ownerRecipient == "" {
		logger.Log.Error("Requirements submission refused: mail configuration incomplete",
			"mail_configured", uc.mail.IsConfigured(), "template_set", uc.templateID != "")
		return nil, apperror.Unavailable(
			fmt.Sprintf("Our quote service is temporarily unavailable. Please email us directly at %s.", uc.fallbackContact),
			nil,
		)
	}

	estimate, err := computeEstimate(time.Now(), req.EstimatedHours, req.PageCount)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	ownerRes := uc.mail.SendHTMLEmail(ctx, mailer.HTMLEmail{
		Subject:    fmt.Sprintf("New Project Requirements from %s", req.Name),
		Recipients: []string{uc.ownerRecipient},
		HTMLBody:   requirementsEmailBody(req, estimate),
		ReplyTo:    req.Email,
	})
	if !ownerRes.OK() {
		logger.Log.Error("Requirements owner email dispatch failed",
			"status", ownerRes.StatusCode, "error", ownerRes.Err)
	}

	customerRes := uc.mail.SendDynamicTemplateEmail(ctx, mailer.TemplateEmail{
		Recipient:  req.Email,
		TemplateID: uc.templateID,
		DynamicData: map[string]string{
			"name":                 req.Name,
			"project_type":         req.ProjectType,
			"estimated_hours":      fmt.Sprintf("%d", estimate.EstimatedHours),
			"page_count":           fmt.Sprintf("%d", estimate.PageCount),
			"hourly_rate":          estimate.HourlyRate,
			"development_estimate": estimate.DevelopmentEstimate,
			"maintenance_estimate": estimate.MaintenanceEstimate,
		},
		ReplyTo: uc.fallbackContact,
	})
	if !customerRes.OK() {
		logger.Log.Error("Requirements customer receipt dispatch failed",
			"status", customerRes.StatusCode, "error", customerRes.Err)
	}

	if ownerRes.OK() && customerRes.OK() {
		return &domain.RequirementsResult{
			Status:   domain.StatusSuccess,
			Message:  "Thank you! Your project requirements have been received and a copy has been emailed to you.",
			Estimate: estimate,
		}, nil
	}

	// Partial or total dispatch failure degrades the outcome rather than
	// failing the request.
	return &domain.RequirementsResult{
		Status:   domain.StatusWarning,
		Message:  "Your requirements were received, but we could not send every confirmation email. We will follow up shortly.",
		Estimate: estimate,
	}, nil
}

// computeEstimate builds the quote for one request: the current hourly rate
// times the estimated hours, plus the flat maintenance fee.
func computeEstimate(ref time.Time, estimatedHours, pageCount int) (*domain.Estimate, error) {
	rate := pricing.CurrentRate(ref)
	maintenance, err := pricing.MaintenanceCost(pageCount)
	if err != nil {
		return nil, err
	}
	development := rate.Mul(decimal.NewFromInt(int64(estimatedHours)))

	return &domain.Estimate{
		HourlyRate:          pricing.FormatCurrency(rate),
		EstimatedHours:      estimatedHours,
		PageCount:           pageCount,
		DevelopmentEstimate: pricing.FormatCurrency(development),
		MaintenanceEstimate: pricing.FormatCurrency(maintenance),
	}, nil
}

func requirementsEmailBody(req *domain.RequirementsRequest, est *domain.Estimate) string {
	var b strings.Builder
	writeRow := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
	}

	writeRow("Name", req.Name)
	writeRow("Email", req.Email)
	writeRow("Company", req.Company)
	writeRow("Project type", req.ProjectType)
	writeRow("Budget", req.Budget)
	writeRow("Timeline", req.Timeline)
	fmt.Fprintf(&b, "<p><strong>Requirements:</strong><br>%s</p>",
		strings.ReplaceAll(html.EscapeString(req.Requirements), "\n", "<br>"))
	writeRow("Hourly rate", est.HourlyRate)
	writeRow("Development estimate", est.DevelopmentEstimate)
	writeRow("Maintenance estimate", est.MaintenanceEstimate)
	return b.String()
}
