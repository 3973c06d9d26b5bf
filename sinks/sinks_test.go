package sinks

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhookSinkSend(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("invalid JSON body: %v", err)
		}
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, 5*time.Second)
	err := sink.Send(&ReportRecord{
		ID:       "ab12cd34",
		Date:     "2026-08-29 10:30",
		Name:     "Asha",
		Email:    "asha@example.com",
		Issue:    "burst pipe flooding the street",
		Category: "Water",
		Urgency:  "high",
		Location: "12.97,77.59",
		Status:   "Pending",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	// The downstream workflow keys on exact field casing.
	for _, key := range []string{"ID", "Date", "name", "email", "issue", "category", "urgency", "location", "Status"} {
		if _, ok := received[key]; !ok {
			t.Errorf("webhook payload missing field %q (got %v)", key, received)
		}
	}
	if received["Status"] != "Pending" {
		t.Errorf("Status = %v, want Pending", received["Status"])
	}
}

func TestWebhookSinkErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, 5*time.Second)
	if err := sink.Send(&ReportRecord{ID: "x"}); err == nil {
		t.Error("expected error on 502 response")
	}
}

func TestEmailSinkSend(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02}

	var payload emailPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("invalid JSON body: %v", err)
		}
	}))
	defer srv.Close()

	sink := NewEmailSink(srv.URL, "test-key", "no-reply@cityguardian.example", "CityGuardian", 10*time.Second)
	err := sink.Send(&EmailMessage{
		To:        "water@cityguardian.gov",
		Subject:   "[HIGH] New Water Report at MG Road...",
		Body:      "Line one\nLine two",
		ImageJPEG: image,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if payload.From.Address != "no-reply@cityguardian.example" || payload.From.DisplayName != "CityGuardian" {
		t.Errorf("from = %+v", payload.From)
	}
	if len(payload.To) != 1 || payload.To[0].Address != "water@cityguardian.gov" {
		t.Errorf("to = %+v", payload.To)
	}
	if payload.HTML != "Line one<br>Line two" {
		t.Errorf("html = %q, newlines should become <br>", payload.HTML)
	}
	if len(payload.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(payload.Attachments))
	}
	att := payload.Attachments[0]
	if att.FileName != "issue.jpg" || att.Type != "image/jpeg" {
		t.Errorf("attachment = %+v", att)
	}
	if att.Content != base64.StdEncoding.EncodeToString(image) {
		t.Error("attachment content is not the base64 image")
	}
}

func TestEmailSinkNoImageNoAttachment(t *testing.T) {
	var payload emailPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
	}))
	defer srv.Close()

	sink := NewEmailSink(srv.URL, "test-key", "no-reply@cityguardian.example", "CityGuardian", 10*time.Second)
	if err := sink.Send(&EmailMessage{To: "roads@cityguardian.gov", Subject: "s", Body: "b"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(payload.Attachments) != 0 {
		t.Errorf("expected no attachments, got %+v", payload.Attachments)
	}
}

func TestEmailSinkErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink := NewEmailSink(srv.URL, "bad-key", "no-reply@cityguardian.example", "CityGuardian", 10*time.Second)
	if err := sink.Send(&EmailMessage{To: "x@example.com"}); err == nil {
		t.Error("expected error on 401 response")
	}
}
