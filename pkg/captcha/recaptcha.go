package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-consultancy-backend/config"
)

const verifyEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// verifyResponse mirrors Google's siteverify response body.
type verifyResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier checks visitor CAPTCHA responses against the reCAPTCHA
// verification service.
type Verifier struct {
	secretKey string
	siteKey   string
	endpoint  string
	client    *http.Client
}

func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{
		secretKey: cfg.RecaptchaSecretKey,
		siteKey:   cfg.RecaptchaSiteKey,
		endpoint:  verifyEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether both reCAPTCHA keys are present. When false the
// contact form skips CAPTCHA entirely.
func (v *Verifier) Configured() bool {
	return v.secretKey != "" && v.siteKey != ""
}

// Verify forwards the visitor-supplied challenge response together with the
// caller's IP and returns the service verdict. A missing response token is a
// plain non-success, not an error; transport and decode failures are errors
// so callers can distinguish "the service said no" from "we could not ask".
func (v *Verifier) Verify(ctx context.Context, responseToken, remoteIP string) (bool, error) {
	if strings.TrimSpace(responseToken) == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", responseToken)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha: verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha: verification service returned status %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("captcha: decode verification response: %w", err)
	}

	return body.Success, nil
}
