package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"parkcareers/internal/common"
)

// Verifier checks anti-automation challenge tokens against the external
// verification service. An unconfigured verifier passes everything, which
// keeps local development free of the widget.
type Verifier struct {
	verifyURL  string
	secret     string
	httpClient *http.Client
}

func NewVerifier(verifyURL, secret string, httpClient *http.Client) *Verifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Verifier{
		verifyURL:  strings.TrimSpace(verifyURL),
		secret:     strings.TrimSpace(secret),
		httpClient: httpClient,
	}
}

type verifyResponse struct {
	Success bool `json:"success"`
}

func (v *Verifier) Verify(ctx context.Context, token string) error {
	if v.verifyURL == "" {
		return nil
	}
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "captcha verification is unreachable", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read verify response: %w", err)
	}
	var parsed verifyResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return fmt.Errorf("decode verify response: %w", err)
	}
	if !parsed.Success {
		return common.NewError(common.CodeForbidden, "captcha verification failed", nil)
	}
	return nil
}
