package domain

import "context"

// EnquiryField is one submitted enquiry form value. Order is preserved so
// the generated PDF reads like the form.
type EnquiryField struct {
	Key   string
	Value string
}

// EnquiryResult reports the two independent dispatches: the owner
// notification and the customer receipt. Partial failure is an explicit
// outcome, not retried.
type EnquiryResult struct {
	OwnerNotified    bool
	CustomerNotified bool
	Message          string
}

// EnquiryUsecase handles tokenized private enquiry links: verifying the
// signed link token, and turning a submission into a PDF emailed to both the
// owner and the customer.
type EnquiryUsecase interface {
	// VerifyLink checks the signed token and returns its purpose. Invalid or
	// unverifiable tokens return apperror values with a generic message.
	VerifyLink(token string) (string, error)

	// Submit generates the enquiry PDF and sends the two emails.
	Submit(ctx context.Context, token string, fields []EnquiryField) (*EnquiryResult, error)
}
