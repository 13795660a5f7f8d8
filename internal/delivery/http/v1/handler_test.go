package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-consultancy-backend/config"
	v1 "go-consultancy-backend/internal/delivery/http/v1"
	"go-consultancy-backend/internal/domain"
	"go-consultancy-backend/pkg/apperror"
	"go-consultancy-backend/pkg/logger"
	"go-consultancy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testFrontendURL = "https://palmertech.example"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init()
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(engine)
	}
}

// --- Mocks ---

type MockContactUC struct {
	mock.Mock
}

func (m *MockContactUC) IssueFormToken(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockContactUC) Submit(ctx context.Context, sub *domain.ContactSubmission) (*domain.ContactResult, error) {
	args := m.Called(ctx, sub)
	if res := args.Get(0); res != nil {
		return res.(*domain.ContactResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEnquiryUC struct {
	mock.Mock
}

func (m *MockEnquiryUC) VerifyLink(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockEnquiryUC) Submit(ctx context.Context, token string, fields []domain.EnquiryField) (*domain.EnquiryResult, error) {
	args := m.Called(ctx, token, fields)
	if res := args.Get(0); res != nil {
		return res.(*domain.EnquiryResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRequirementsUC struct {
	mock.Mock
}

func (m *MockRequirementsUC) Submit(ctx context.Context, req *domain.RequirementsRequest) (*domain.RequirementsResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.RequirementsResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Helpers ---

func newTestRouter(contactUC domain.ContactUsecase, enquiryUC domain.EnquiryUsecase, requirementsUC domain.RequirementsUsecase) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		EnquiryUC:      enquiryUC,
		RequirementsUC: requirementsUC,
		Config: &config.Config{
			FrontendURL:            testFrontendURL,
			RecaptchaSiteKey:       "test-site-key",
			RateLimitWindowSeconds: 60,
			RateLimitFormThreshold: 1000,
		},
	})
}

func postForm(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// flashCookie decodes the category and message from the one-shot flash cookie.
func flashCookie(t *testing.T, w *httptest.ResponseRecorder) (category, message string) {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			decoded, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			category, message, _ = strings.Cut(decoded, "|")
			return category, message
		}
	}
	t.Fatal("flash cookie not set")
	return "", ""
}

// --- Health and pricing ---

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), new(MockRequirementsUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "System operational")
}

func TestPricingEndpoint(t *testing.T) {
	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), new(MockRequirementsUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pricing?pages=5", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			CurrentRate     string `json:"current_rate"`
			MaintenanceCost string `json:"maintenance_cost"`
			Pages           int    `json:"pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 5, body.Data.Pages)
	assert.True(t, strings.HasPrefix(body.Data.CurrentRate, "£"))
	assert.Equal(t, "£75.00 total", body.Data.MaintenanceCost)
}

func TestPricingEndpointRejectsBadPages(t *testing.T) {
	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), new(MockRequirementsUC))

	for _, query := range []string{"?pages=abc", "?pages=-1"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pricing"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

// --- Contact form ---

func TestNewContactFormIssuesTokenAndSession(t *testing.T) {
	contactUC := new(MockContactUC)
	contactUC.On("IssueFormToken", mock.Anything, mock.AnythingOfType("string")).Return("tok-abc123", nil)

	router := newTestRouter(contactUC, new(MockEnquiryUC), new(MockRequirementsUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/contact/new", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var sessionSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" {
			sessionSet = true
			assert.True(t, c.HttpOnly)
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, sessionSet, "session cookie should be created")

	var body struct {
		Data struct {
			FormToken      string `json:"form_token"`
			CaptchaSiteKey string `json:"captcha_site_key"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tok-abc123", body.Data.FormToken)
	assert.Equal(t, "test-site-key", body.Data.CaptchaSiteKey)
	contactUC.AssertExpectations(t)
}

func TestNewContactFormReusesExistingSession(t *testing.T) {
	contactUC := new(MockContactUC)
	contactUC.On("IssueFormToken", mock.Anything, "existing-session").Return("tok", nil)

	router := newTestRouter(contactUC, new(MockEnquiryUC), new(MockRequirementsUC))

	req := httptest.NewRequest(http.MethodGet, "/v1/contact/new", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "session_id", c.Name, "existing session must not be replaced")
	}
	contactUC.AssertExpectations(t)
}

func TestSubmitContactMapsFormFields(t *testing.T) {
	contactUC := new(MockContactUC)
	contactUC.On("Submit", mock.Anything, mock.MatchedBy(func(sub *domain.ContactSubmission) bool {
		return sub.SessionID == "sess-1" &&
			sub.FormToken == "tok-1" &&
			sub.Honeypot == "bot-filled" &&
			sub.CaptchaResponse == "captcha-resp" &&
			sub.Name == "Jane Doe" &&
			sub.Email == "jane@example.com" &&
			sub.Message == "A perfectly fine message."
	})).Return(&domain.ContactResult{Delivered: true, Message: "Thank you for getting in touch! Your message has been sent."}, nil)

	router := newTestRouter(contactUC, new(MockEnquiryUC), new(MockRequirementsUC))

	form := url.Values{}
	form.Set("form_token", "tok-1")
	form.Set("website", "bot-filled")
	form.Set("g-recaptcha-response", "captcha-resp")
	form.Set("name", "Jane Doe")
	form.Set("email", "jane@example.com")
	form.Set("phone", "+447700900000")
	form.Set("message", "A perfectly fine message.")
	form.Set("consent", "on")

	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, testFrontendURL+"/contact", w.Header().Get("Location"))

	category, message := flashCookie(t, w)
	assert.Equal(t, "success", category)
	assert.Contains(t, message, "Thank you")
	contactUC.AssertExpectations(t)
}

func TestSubmitContactGateRejectionFlashesError(t *testing.T) {
	contactUC := new(MockContactUC)
	contactUC.On("Submit", mock.Anything, mock.Anything).
		Return(nil, apperror.BadRequest("Invalid or expired form session. Please try again."))

	router := newTestRouter(contactUC, new(MockEnquiryUC), new(MockRequirementsUC))

	w := postForm(router, "/v1/contact", "form_token=stale&name=J&email=j%40e.com")

	require.Equal(t, http.StatusSeeOther, w.Code)
	category, message := flashCookie(t, w)
	assert.Equal(t, "error", category)
	assert.Equal(t, "Invalid or expired form session. Please try again.", message)
}

func TestSubmitContactDegradedDeliveryFlashesWarning(t *testing.T) {
	contactUC := new(MockContactUC)
	contactUC.On("Submit", mock.Anything, mock.Anything).
		Return(&domain.ContactResult{Delivered: false, Message: "Sorry, there was an error sending your message. Please try again later."}, nil)

	router := newTestRouter(contactUC, new(MockEnquiryUC), new(MockRequirementsUC))

	w := postForm(router, "/v1/contact", "form_token=tok&name=J&email=j%40e.com&message=hello+there+friend&consent=on")

	require.Equal(t, http.StatusSeeOther, w.Code)
	category, _ := flashCookie(t, w)
	assert.Equal(t, "warning", category)
}

// --- Enquiry ---

func TestVerifyEnquiryLink(t *testing.T) {
	enquiryUC := new(MockEnquiryUC)
	enquiryUC.On("VerifyLink", "good-token").Return("enquiry", nil)

	router := newTestRouter(new(MockContactUC), enquiryUC, new(MockRequirementsUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/enquiry/good-token", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"purpose":"enquiry"`)
	enquiryUC.AssertExpectations(t)
}

func TestVerifyEnquiryLinkInvalidRedirectsHome(t *testing.T) {
	enquiryUC := new(MockEnquiryUC)
	enquiryUC.On("VerifyLink", "bad-token").Return("", apperror.BadRequest("Invalid or expired link."))

	router := newTestRouter(new(MockContactUC), enquiryUC, new(MockRequirementsUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/enquiry/bad-token", nil))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, testFrontendURL+"/", w.Header().Get("Location"))
	category, message := flashCookie(t, w)
	assert.Equal(t, "error", category)
	assert.Equal(t, "Invalid or expired link.", message)
}

func TestSubmitEnquiryPreservesFieldOrder(t *testing.T) {
	enquiryUC := new(MockEnquiryUC)
	enquiryUC.On("Submit", mock.Anything, "good-token", []domain.EnquiryField{
		{Key: "name", Value: "Jane Doe"},
		{Key: "zebra", Value: "first"},
		{Key: "apple", Value: "second"},
	}).Return(&domain.EnquiryResult{
		OwnerNotified:    true,
		CustomerNotified: true,
		Message:          "Your enquiry has been submitted and emailed to you and Palmertech.",
	}, nil)

	router := newTestRouter(new(MockContactUC), enquiryUC, new(MockRequirementsUC))

	w := postForm(router, "/v1/enquiry/good-token", "name=Jane+Doe&zebra=first&apple=second")

	require.Equal(t, http.StatusSeeOther, w.Code)
	category, _ := flashCookie(t, w)
	assert.Equal(t, "success", category)
	enquiryUC.AssertExpectations(t)
}

func TestSubmitEnquiryPartialDeliveryFlashesWarning(t *testing.T) {
	enquiryUC := new(MockEnquiryUC)
	enquiryUC.On("Submit", mock.Anything, "good-token", mock.Anything).Return(&domain.EnquiryResult{
		OwnerNotified:    true,
		CustomerNotified: false,
		Message:          "Enquiry received, but confirmation emails could not be sent. We will follow up shortly.",
	}, nil)

	router := newTestRouter(new(MockContactUC), enquiryUC, new(MockRequirementsUC))

	w := postForm(router, "/v1/enquiry/good-token", "name=Jane")

	require.Equal(t, http.StatusSeeOther, w.Code)
	category, _ := flashCookie(t, w)
	assert.Equal(t, "warning", category)
}

// --- Requirements ---

func validRequirementsBody() string {
	return `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"project_type": "web_app",
		"requirements": "A marketing site with a booking flow.",
		"estimated_hours": 40,
		"page_count": 6
	}`
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitRequirementsSuccess(t *testing.T) {
	requirementsUC := new(MockRequirementsUC)
	requirementsUC.On("Submit", mock.Anything, mock.MatchedBy(func(req *domain.RequirementsRequest) bool {
		return req.Name == "Jane Doe" && req.EstimatedHours == 40 && req.PageCount == 6
	})).Return(&domain.RequirementsResult{
		Status:  domain.StatusSuccess,
		Message: "Thank you! Your project requirements have been received.",
		Estimate: &domain.Estimate{
			HourlyRate:          "£25.00",
			EstimatedHours:      40,
			PageCount:           6,
			DevelopmentEstimate: "£1000.00",
			MaintenanceEstimate: "£85.00",
		},
	}, nil)

	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), requirementsUC)

	w := postJSON(router, "/v1/requirements", validRequirementsBody())

	require.Equal(t, http.StatusOK, w.Code)

	var result domain.RequirementsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.StatusSuccess, result.Status)
	require.NotNil(t, result.Estimate)
	assert.Equal(t, "£1000.00", result.Estimate.DevelopmentEstimate)
	requirementsUC.AssertExpectations(t)
}

func TestSubmitRequirementsDegradedDeliveryReturns202(t *testing.T) {
	requirementsUC := new(MockRequirementsUC)
	requirementsUC.On("Submit", mock.Anything, mock.Anything).Return(&domain.RequirementsResult{
		Status:  domain.StatusWarning,
		Message: "Requirements received, but the confirmation email could not be sent.",
	}, nil)

	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), requirementsUC)

	w := postJSON(router, "/v1/requirements", validRequirementsBody())

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), domain.StatusWarning)
}

func TestSubmitRequirementsValidationFailure(t *testing.T) {
	requirementsUC := new(MockRequirementsUC)
	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), requirementsUC)

	w := postJSON(router, "/v1/requirements", `{"email": "jane@example.com"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var result domain.RequirementsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.StatusError, result.Status)
	assert.Contains(t, result.Message, "Name is required")
	requirementsUC.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmitRequirementsMalformedJSON(t *testing.T) {
	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), new(MockRequirementsUC))

	w := postJSON(router, "/v1/requirements", `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRequirementsUnconfiguredReturns503(t *testing.T) {
	requirementsUC := new(MockRequirementsUC)
	requirementsUC.On("Submit", mock.Anything, mock.Anything).
		Return(nil, apperror.Unavailable("Our quote service is temporarily unavailable. Please email us directly at contact@palmertech.co.uk.", nil))

	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), requirementsUC)

	w := postJSON(router, "/v1/requirements", validRequirementsBody())

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var result domain.RequirementsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.StatusError, result.Status)
	assert.Contains(t, result.Message, "contact@palmertech.co.uk")
}

// --- Security headers ---

func TestSecurityHeadersApplied(t *testing.T) {
	router := newTestRouter(new(MockContactUC), new(MockEnquiryUC), new(MockRequirementsUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}
