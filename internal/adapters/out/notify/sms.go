package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chipdrop/internal/core/ports"
)

const defaultSMSRequestTimeout = 15 * time.Second

// HTTPDoer is the subset of http.Client the SMS sender needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GatewaySMSSender sends text messages through an HTTP SMS gateway.
type GatewaySMSSender struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
}

// NewGatewaySMSSender creates an SMS sender for the given gateway.
// Passing a nil client installs a default http.Client with a request
// timeout.
func NewGatewaySMSSender(baseURL, apiKey string, client HTTPDoer) *GatewaySMSSender {
	if client == nil {
		client = &http.Client{Timeout: defaultSMSRequestTimeout}
	}
	return &GatewaySMSSender{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}
}

type smsGatewayRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SendSMS posts one message to the gateway. Any non-2xx response is an
// error carrying the gateway's status code.
func (s *GatewaySMSSender) SendSMS(ctx context.Context, msg ports.SMSMessage) error {
	payload, err := json.Marshal(smsGatewayRequest{
		To:   msg.To,
		Body: msg.Body,
	})
	if err != nil {
		return fmt.Errorf("sms gateway: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/messages",
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("sms gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: send: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sms gateway: unexpected status %d", resp.StatusCode)
	}
	return nil
}
