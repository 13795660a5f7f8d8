package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/pkg/apperror"
	"go-consultancy-backend/pkg/linktoken"
	"go-consultancy-backend/pkg/logger"
	"go-consultancy-backend/pkg/mailer"
	"go-consultancy-backend/pkg/pdf"
)

type enquiryUsecase struct {
	signer         *linktoken.Signer
	mail           domain.Mailer
	ownerRecipient string
	logoPNG        []byte
}

// NewEnquiryUsecase creates the private enquiry usecase. logoPNG may be nil;
// the PDF is simply rendered without a logo.
func NewEnquiryUsecase(signer *linktoken.Signer, mail domain.Mailer, ownerRecipient string, logoPNG []byte) domain.EnquiryUsecase {
	return &enquiryUsecase{
		signer:         signer,
		mail:           mail,
		ownerRecipient: ownerRecipient,
		logoPNG:        logoPNG,
	}
}

func (uc *enquiryUsecase) VerifyLink(token string) (string, error) {
	purpose, err := uc.signer.Verify(token)
	if err != nil {
		logger.Log.Warn("Enquiry link rejected: token verification failed")
		return "", apperror.BadRequest("Invalid or expired link.")
	}
	logger.Log.Info("Private enquiry accessed", "purpose", purpose)
	return purpose, nil
}

// Submit turns the submitted fields into a PDF and emails it to the owner
// and back to the customer. The two dispatches are independent; one failing
// does not stop the other, and partial failure is reported, not retried.
func (uc *enquiryUsecase) Submit(ctx context.Context, token string, fields []domain.EnquiryField) (*domain.EnquiryResult, error) {
	if _, err := uc.VerifyLink(token); err != nil {
		return nil, err
	}

	pdfFields := make([]pdf.Field, 0, len(fields))
	for _, f := range fields {
		pdfFields = append(pdfFields, pdf.Field{Label: f.Key, Value: f.Value})
	}

	logger.Log.Info("Generating enquiry PDF")
	document, err := pdf.BuildEnquiry(pdfFields, uc.logoPNG)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	attachment := mailer.Attachment{
		Content:     base64.StdEncoding.EncodeToString(document),
		Type:        "application/pdf",
		Filename:    "enquiry.pdf",
		Disposition: "attachment",
	}

	customerName := fieldValue(fields, "name")
	customerEmail := fieldValue(fields, "email")

	ownerRes := uc.mail.SendHTMLEmail(ctx, mailer.HTMLEmail{
		Subject:     fmt.Sprintf("New Project Enquiry from %s", customerName),
		Recipients:  []string{uc.ownerRecipient},
		HTMLBody:    "<p>Project enquiry attached.</p>",
		ReplyTo:     customerEmail,
		Attachments: []mailer.Attachment{attachment},
	})
	if !ownerRes.OK() {
		logger.Log.Error("Enquiry owner email dispatch failed",
			"status", ownerRes.StatusCode, "error", ownerRes.Err)
	}

	customerRes := uc.mail.SendHTMLEmail(ctx, mailer.HTMLEmail{
		Subject:     "Your Palmertech Project Enquiry Receipt",
		Recipients:  []string{customerEmail},
		HTMLBody:    "<p>Thank you for your enquiry! Please find your submitted details attached as a PDF. We will be in touch soon.</p>",
		Attachments: []mailer.Attachment{attachment},
	})
	if !customerRes.OK() {
		logger.Log.Error("Enquiry customer email dispatch failed",
			"status", customerRes.StatusCode, "error", customerRes.Err)
	}

	result := &domain.EnquiryResult{
		OwnerNotified:    ownerRes.OK(),
		CustomerNotified: customerRes.OK(),
	}
	if result.OwnerNotified && result.CustomerNotified {
		result.Message = "Your enquiry has been submitted and emailed to you and Palmertech."
	} else {
		result.Message = "Enquiry received, but confirmation emails could not be sent. We will follow up shortly."
	}
	return result, nil
}

// fieldValue returns the first submitted value for key, or "".
func fieldValue(fields []domain.EnquiryField, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}
