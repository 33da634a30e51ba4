package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendClient handles email sending via Resend API
type ResendClient struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewResendClient returns nil when no API key is configured; callers treat a
// nil client as "mail disabled".
func NewResendClient(apiKey, from string, log *logrus.Logger) *ResendClient {
	if apiKey == "" {
		log.Warn("⚠️  RESEND_API_KEY not set, outgoing mail disabled")
		return nil
	}
	if from == "" {
		from = "noreply@contact.modeva.shop"
	}
	return &ResendClient{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.WithField("component", "resend"),
	}
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

type resendEmail struct {
	From        string             `json:"from"`
	To          string             `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

func (r *ResendClient) send(ctx context.Context, email resendEmail) error {
	email.From = r.from
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.WithError(err).Error("[resend] failed to send request")
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		r.log.WithFields(logrus.Fields{"status": resp.StatusCode, "body": string(body)}).Error("[resend] api returned an error")
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}
	return nil
}
