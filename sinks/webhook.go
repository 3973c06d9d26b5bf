// Package sinks implements the best-effort outbound writes: the workflow
// webhook carrying the tracking record and the email dispatch provider.
// Failures here are the caller's to log; they never affect the intake
// outcome.
package sinks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ReportRecord is the tracking record posted to the workflow intake webhook.
// Field casing follows the downstream workflow's column names.
type ReportRecord struct {
	ID       string `json:"ID"`
	Date     string `json:"Date"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Issue    string `json:"issue"`
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
	Location string `json:"location"`
	Status   string `json:"Status"`
}

// WebhookSink posts report records to a fixed workflow webhook URL.
type WebhookSink struct {
	url  string
	http *http.Client
}

func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Send posts one record. No retries; the caller decides what a failure means.
func (s *WebhookSink) Send(record *ReportRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook record: %w", err)
	}

	resp, err := s.http.Post(s.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to post webhook record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
