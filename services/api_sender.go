package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// EmailAPISender submits messages to a hosted transactional email API using
// a fixed service/template identifier and a public key. The template
// parameters carry the booking, customer, vehicle and company fields plus
// the rendered HTML body.
type EmailAPISender struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	httpClient *http.Client
}

func NewEmailAPISender() (*EmailAPISender, error) {
	serviceID := os.Getenv("EMAIL_API_SERVICE_ID")
	templateID := os.Getenv("EMAIL_API_TEMPLATE_ID")
	publicKey := os.Getenv("EMAIL_API_PUBLIC_KEY")

	if serviceID == "" || templateID == "" || publicKey == "" {
		return nil, fmt.Errorf("EMAIL_API_SERVICE_ID, EMAIL_API_TEMPLATE_ID and EMAIL_API_PUBLIC_KEY must be set")
	}

	endpoint := os.Getenv("EMAIL_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://api.emailjs.com/api/v1.0/email/send"
	}

	return &EmailAPISender{
		endpoint:   endpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type emailAPIPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *EmailAPISender) Send(msg Message) error {
	params := make(map[string]string, len(msg.Params)+1)
	for k, v := range msg.Params {
		params[k] = v
	}
	params["html_body"] = msg.Envelope.HTMLBody

	payload := emailAPIPayload{
		ServiceID:      s.serviceID,
		TemplateID:     s.templateID,
		UserID:         s.publicKey,
		TemplateParams: params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
