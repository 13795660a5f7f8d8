package v1

import (
	"errors"
	"net/http"

	"go-consultancy-backend/config"
	"go-consultancy-backend/internal/delivery/http/response"
	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/internal/session"
	"go-consultancy-backend/pkg/apperror"
	"go-consultancy-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// sessionCookieTTL matches the server-side session lifetime (24h).
const sessionCookieTTL = 24 * 60 * 60

type ContactHandler struct {
	contactUC domain.ContactUsecase
	cfg       *config.Config
}

// NewContactHandler registers the contact-form routes (public, no auth
// required).
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, cfg *config.Config) {
	handler := &ContactHandler{
		contactUC: contactUC,
		cfg:       cfg,
	}

	public.GET("/contact/new", handler.NewContactForm)
	public.POST("/contact", handler.SubmitContact)
}

// ensureSession returns the visitor's session id, creating the session
// cookie on first contact.
func (h *ContactHandler) ensureSession(c *gin.Context) (string, error) {
	if id, err := c.Cookie(session.CookieName); err == nil && id != "" {
		return id, nil
	}
	id, err := session.NewSessionID()
	if err != nil {
		return "", err
	}
	c.SetCookie(session.CookieName, id, sessionCookieTTL, "/", "", c.Request.TLS != nil, true)
	return id, nil
}

// NewContactForm godoc
// @Summary      Prepare Contact Form
// @Description  Issues the one-time form token the contact form must echo back, creating a visitor session if needed.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /contact/new [get]
func (h *ContactHandler) NewContactForm(c *gin.Context) {
	sessionID, err := h.ensureSession(c)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Could not prepare the contact form. Please try again.", err))
		return
	}

	token, err := h.contactUC.IssueFormToken(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Could not prepare the contact form. Please try again.", err))
		return
	}

	response.Success(c, http.StatusOK, "Contact form ready", gin.H{
		"form_token":       token,
		"captcha_site_key": h.cfg.RecaptchaSiteKey,
	})
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Runs the anti-abuse checks and emails the message to the site owner. Responds with a redirect back to the frontend carrying a flash notice.
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form_token  formData  string  true   "One-time form token"
// @Param        name        formData  string  true   "Sender name"
// @Param        email       formData  string  true   "Sender email"
// @Param        phone       formData  string  true   "Sender phone"
// @Param        message     formData  string  true   "Message body"
// @Param        consent     formData  string  true   "Consent checkbox"
// @Success      303  {string}  string  "Redirect with flash cookie"
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	sessionID, err := h.ensureSession(c)
	if err != nil {
		flashRedirect(c, h.cfg.FrontendURL, "/contact", "error", "Sorry, something went wrong. Please try again.")
		return
	}

	sub := &domain.ContactSubmission{
		SessionID:       sessionID,
		ClientIP:        c.ClientIP(),
		FormToken:       c.PostForm("form_token"),
		Honeypot:        c.PostForm("website"),
		CaptchaResponse: c.PostForm("g-recaptcha-response"),
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Phone:           c.PostForm("phone"),
		Message:         c.PostForm("message"),
		Consent:         c.PostForm("consent"),
	}

	result, err := h.contactUC.Submit(c.Request.Context(), sub)
	if err != nil {
		var appErr *apperror.AppError
		message := "Sorry, something went wrong. Please try again."
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else {
			logger.Log.Error("contact submission failed", "error", err)
		}
		flashRedirect(c, h.cfg.FrontendURL, "/contact", "error", message)
		return
	}

	category := "success"
	if !result.Delivered {
		category = "warning"
	}
	flashRedirect(c, h.cfg.FrontendURL, "/contact", category, result.Message)
}
