package v1

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go-consultancy-backend/config"
	"go-consultancy-backend/internal/delivery/http/response"
	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxEnquiryBodyBytes bounds the form body; enquiry forms are small.
const maxEnquiryBodyBytes = 64 * 1024

type EnquiryHandler struct {
	enquiryUC domain.EnquiryUsecase
	cfg       *config.Config
}

// NewEnquiryHandler registers the tokenized private enquiry routes.
func NewEnquiryHandler(public *gin.RouterGroup, enquiryUC domain.EnquiryUsecase, cfg *config.Config) {
	handler := &EnquiryHandler{
		enquiryUC: enquiryUC,
		cfg:       cfg,
	}

	public.GET("/enquiry/:token", handler.VerifyEnquiryLink)
	public.POST("/enquiry/:token", handler.SubmitEnquiry)
}

// VerifyEnquiryLink godoc
// @Summary      Verify Enquiry Link
// @Description  Checks the signed enquiry link token. Invalid links redirect home with a generic notice.
// @Tags         enquiry
// @Produce      json
// @Param        token  path      string  true  "Signed link token"
// @Success      200    {object}  response.Response
// @Router       /enquiry/{token} [get]
func (h *EnquiryHandler) VerifyEnquiryLink(c *gin.Context) {
	purpose, err := h.enquiryUC.VerifyLink(c.Param("token"))
	if err != nil {
		flashRedirect(c, h.cfg.FrontendURL, "/", "error", linkErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, "Enquiry link verified", gin.H{
		"purpose": purpose,
	})
}

// SubmitEnquiry godoc
// @Summary      Submit Private Enquiry
// @Description  Accepts the enquiry form behind a signed link, renders the submission as a PDF and emails it to the owner and the customer. Responds with a redirect carrying a flash notice.
// @Tags         enquiry
// @Accept       x-www-form-urlencoded
// @Param        token  path      string  true  "Signed link token"
// @Success      303    {string}  string  "Redirect with flash cookie"
// @Router       /enquiry/{token} [post]
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	fields, err := parseOrderedForm(c.Request)
	if err != nil {
		flashRedirect(c, h.cfg.FrontendURL, "/", "error", "Could not read the enquiry form. Please try again.")
		return
	}

	result, err := h.enquiryUC.Submit(c.Request.Context(), c.Param("token"), fields)
	if err != nil {
		flashRedirect(c, h.cfg.FrontendURL, "/", "error", linkErrorMessage(err))
		return
	}

	category := "success"
	if !result.OwnerNotified || !result.CustomerNotified {
		category = "warning"
	}
	flashRedirect(c, h.cfg.FrontendURL, "/", category, result.Message)
}

// linkErrorMessage keeps link failures generic. Whatever went wrong with the
// token, the visitor only learns that the link no longer works.
func linkErrorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Invalid or expired link."
}

// parseOrderedForm decodes a urlencoded body keeping the fields in the order
// the form posted them, which url.Values would lose.
func parseOrderedForm(r *http.Request) ([]domain.EnquiryField, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEnquiryBodyBytes))
	if err != nil {
		return nil, err
	}

	var fields []domain.EnquiryField
	for _, pair := range strings.Split(string(body), "&") {
		if pair == "" {
			continue
		}
		key, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}
		fields = append(fields, domain.EnquiryField{Key: name, Value: value})
	}
	return fields, nil
}
