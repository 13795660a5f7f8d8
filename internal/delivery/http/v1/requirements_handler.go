package v1

import (
	"errors"
	"net/http"
	"strings"

	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/pkg/apperror"
	"go-consultancy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RequirementsHandler struct {
	requirementsUC domain.RequirementsUsecase
}

// NewRequirementsHandler registers the project-requirements intake route.
func NewRequirementsHandler(public *gin.RouterGroup, requirementsUC domain.RequirementsUsecase) {
	handler := &RequirementsHandler{
		requirementsUC: requirementsUC,
	}

	public.POST("/requirements", handler.SubmitRequirements)
}

// SubmitRequirements godoc
// @Summary      Submit Project Requirements
// @Description  Validates the intake form, computes a live quote and emails the owner plus a templated customer receipt. The quote is returned in the response and never stored.
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Param        requirements  body      domain.RequirementsRequest  true  "Project Requirements"
// @Success      200           {object}  domain.RequirementsResult
// @Success      202           {object}  domain.RequirementsResult
// @Failure      400           {object}  domain.RequirementsResult
// @Failure      503           {object}  domain.RequirementsResult
// @Router       /requirements [post]
func (h *RequirementsHandler) SubmitRequirements(c *gin.Context) {
	var req domain.RequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.RequirementsResult{
			Status:  domain.StatusError,
			Message: bindErrorMessage(err),
		})
		return
	}

	result, err := h.requirementsUC.Submit(c.Request.Context(), &req)
	if err != nil {
		code := http.StatusInternalServerError
		message := "Sorry, something went wrong. Please try again later."
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			code = appErr.Code
			message = appErr.Message
		}
		c.JSON(code, domain.RequirementsResult{
			Status:  domain.StatusError,
			Message: message,
		})
		return
	}

	code := http.StatusOK
	if result.Status == domain.StatusWarning {
		code = http.StatusAccepted
	}
	c.JSON(code, result)
}

// bindErrorMessage turns binding failures into the same field-level wording
// the validation layer produces.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return strings.Join(validation.FormatValidationErrors(verrs), "; ")
	}
	return "Invalid request body."
}
