package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":           "Name",
	"Email":          "Email address",
	"Phone":          "Phone number",
	"Message":        "Message",
	"Consent":        "Consent",
	"Company":        "Company",
	"ProjectType":    "Project type",
	"Requirements":   "Requirements",
	"EstimatedHours": "Estimated hours",
	"PageCount":      "Page count",
	"Budget":         "Budget",
	"Timeline":       "Timeline",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation (. ' - /)", label)
	case "no_emoji":
		return fmt.Sprintf("%s may not contain emoji or special symbols", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
