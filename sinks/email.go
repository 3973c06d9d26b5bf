package sinks

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// EmailMessage is one outbound department notification. HTMLBody is the draft
// with newlines already usable as plain text; the sink converts them to <br>
// for the HTML payload. ImageJPEG, when present, is attached as issue.jpg.
type EmailMessage struct {
	To        string
	Subject   string
	Body      string
	ImageJPEG []byte
}

type emailAddress struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
}

type emailAttachment struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
	Type     string `json:"type"`
}

type emailPayload struct {
	From        emailAddress      `json:"from"`
	To          []emailAddress    `json:"to"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html"`
	Attachments []emailAttachment `json:"attachments,omitempty"`
}

// EmailSink dispatches notification emails through the Maileroo HTTP API
// using bearer-token auth.
type EmailSink struct {
	endpoint    string
	apiKey      string
	fromAddress string
	fromName    string
	http        *http.Client
}

func NewEmailSink(endpoint, apiKey, fromAddress, fromName string, timeout time.Duration) *EmailSink {
	return &EmailSink{
		endpoint:    endpoint,
		apiKey:      apiKey,
		fromAddress: fromAddress,
		fromName:    fromName,
		http:        &http.Client{Timeout: timeout},
	}
}

// Send dispatches one email. No retries; the caller decides what a failure
// means.
func (s *EmailSink) Send(msg *EmailMessage) error {
	payload := emailPayload{
		From:    emailAddress{Address: s.fromAddress, DisplayName: s.fromName},
		To:      []emailAddress{{Address: msg.To}},
		Subject: msg.Subject,
		HTML:    strings.ReplaceAll(msg.Body, "\n", "<br>"),
	}
	if len(msg.ImageJPEG) > 0 {
		payload.Attachments = []emailAttachment{
			{
				FileName: "issue.jpg",
				Content:  base64.StdEncoding.EncodeToString(msg.ImageJPEG),
				Type:     "image/jpeg",
			},
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.endpoint, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return nil
}
