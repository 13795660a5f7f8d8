package domain

import "context"

// RequirementsRequest represents a project-requirements intake submission
type RequirementsRequest struct {
	Name           string `json:"name" binding:"required,valid_name,no_emoji"`
	Email          string `json:"email" binding:"required,email"`
	Company        string `json:"company"`
	ProjectType    string `json:"project_type" binding:"required"`
	Requirements   string `json:"requirements" binding:"required,min=10"`
	EstimatedHours int    `json:"estimated_hours" binding:"gte=0"`
	PageCount      int    `json:"page_count" binding:"gte=0"`
	Budget         string `json:"budget"`
	Timeline       string `json:"timeline"`
}

// Estimate is the quote computed fresh for one request; it is never
// persisted.
type Estimate struct {
	HourlyRate          string `json:"hourly_rate"`
	EstimatedHours      int    `json:"estimated_hours"`
	PageCount           int    `json:"page_count"`
	DevelopmentEstimate string `json:"development_estimate"`
	MaintenanceEstimate string `json:"maintenance_estimate"`
}

// Requirements submission statuses.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// RequirementsResult is the submission outcome: StatusSuccess when both the
// owner template email and the customer receipt were delivered,
// StatusWarning when at least one was not.
type RequirementsResult struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Estimate *Estimate `json:"estimate,omitempty"`
}

// RequirementsUsecase computes the quote and dispatches the notification
// emails for a requirements submission.
type RequirementsUsecase interface {
	Submit(ctx context.Context, req *RequirementsRequest) (*RequirementsResult, error)
}
