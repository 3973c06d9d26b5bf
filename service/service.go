// Package service sequences one intake request end to end: image processing,
// duplicate suppression, classification, routing, and the best-effort
// tracking and notification writes.
package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"cityguardian/agents"
	"cityguardian/departments"
	"cityguardian/metrics"
	"cityguardian/models"
	"cityguardian/sinks"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// Intake rejections, in the exact wording returned to the client.
var (
	ErrInvalidImage   = errors.New("Image rejected: Not a civic issue.")
	ErrNoIssueInImage = errors.New("Could not identify issue from image.")
	ErrNoComplaint    = errors.New("No complaint text or image provided.")
	ErrDuplicate      = errors.New("A similar report is already active in this area.")
)

// DuplicateChecker is the dedup detector boundary. An error means the check
// could not run; the pipeline proceeds as if no duplicates exist.
type DuplicateChecker interface {
	Check(complaint string, lat, lon float64) (bool, error)
}

// RecordSink persists the tracking record. Best-effort: failures are logged,
// never surfaced.
type RecordSink interface {
	Send(record *sinks.ReportRecord) error
}

// EmailDispatcher sends the department notification. Best-effort as well.
type EmailDispatcher interface {
	Send(msg *sinks.EmailMessage) error
}

// Service is the intake orchestrator.
type Service struct {
	agents   *agents.Agents
	registry departments.Registry
	dedup    DuplicateChecker
	records  RecordSink
	email    EmailDispatcher
}

func New(ag *agents.Agents, registry departments.Registry, dedup DuplicateChecker, records RecordSink, email EmailDispatcher) *Service {
	return &Service{
		agents:   ag,
		registry: registry,
		dedup:    dedup,
		records:  records,
		email:    email,
	}
}

// ProcessReport runs the intake pipeline for one submission. Returns one of
// the sentinel intake errors on rejection; sink and capability failures never
// reject an otherwise valid report.
func (s *Service) ProcessReport(sub *models.ReportSubmission) (*models.ReportResponse, error) {
	start := time.Now()
	outcome := "accepted"
	defer func() {
		metrics.ReportsTotal.WithLabelValues(outcome).Inc()
		metrics.IntakeDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	hadImage := len(sub.Image) > 0
	complaint := strings.TrimSpace(sub.Complaint)

	// Image processing: validate the photo, then derive the complaint text
	// from it when the client sent none (or the browser placeholder).
	if hadImage {
		if !s.agents.VerifyImage(sub.Image) {
			outcome = "invalid_image"
			return nil, ErrInvalidImage
		}
		if complaint == "" || strings.EqualFold(complaint, "undefined") {
			complaint = strings.TrimSpace(s.agents.DescribeImage(sub.Image))
			if complaint == "" {
				outcome = "no_image_issue"
				return nil, ErrNoIssueInImage
			}
		}
	}

	if complaint == "" {
		outcome = "no_complaint"
		return nil, ErrNoComplaint
	}

	// Duplicate suppression is best-effort: a detector-internal failure logs
	// and lets the report through, only a genuine finding rejects.
	dup, err := s.dedup.Check(complaint, sub.Latitude, sub.Longitude)
	if err != nil {
		log.Warnf("Duplicate check unavailable, proceeding without it: %v", err)
	} else if dup {
		outcome = "duplicate"
		return nil, ErrDuplicate
	}

	cl := s.agents.Classify(complaint)
	dept := s.registry.Route(complaint, cl.Category)

	reportID := uuid.NewString()[:8]
	locDisplay := sub.Address
	if locDisplay == "" {
		locDisplay = formatCoord(sub.Latitude) + ", " + formatCoord(sub.Longitude)
	}
	coords := formatCoord(sub.Latitude) + "," + formatCoord(sub.Longitude)
	fullLocation := locDisplay + "\nMaps: https://www.google.com/maps?q=" + coords

	record := &sinks.ReportRecord{
		ID:       reportID,
		Date:     time.Now().Format("2006-01-02 15:04"),
		Name:     sub.Name,
		Email:    sub.Email,
		Issue:    complaint,
		Category: cl.Category,
		Urgency:  cl.Urgency,
		Location: coords,
		Status:   "Pending",
	}
	if err := s.records.Send(record); err != nil {
		log.Warnf("Failed to persist report %s to tracking webhook: %v", reportID, err)
		metrics.SinkErrorsTotal.WithLabelValues("webhook").Inc()
	}

	body := s.agents.DraftEmail(sub.Name, sub.Email, complaint, fullLocation, cl.Category, cl.Urgency)
	msg := &sinks.EmailMessage{
		To:        dept.Email,
		Subject:   "[" + strings.ToUpper(cl.Urgency) + "] New " + cl.Category + " Report at " + truncate(locDisplay, 20) + "...",
		Body:      body,
		ImageJPEG: sub.Image,
	}
	if err := s.email.Send(msg); err != nil {
		log.Warnf("Failed to dispatch email for report %s to %s: %v", reportID, dept.Email, err)
		metrics.SinkErrorsTotal.WithLabelValues("email").Inc()
	}

	log.Infof("Report %s accepted: department=%s category=%s urgency=%s", reportID, dept.Name, cl.Category, cl.Urgency)

	resp := &models.ReportResponse{
		Status:     "success",
		ID:         reportID,
		Department: dept.Name,
		Urgency:    cl.Urgency,
	}
	if hadImage {
		resp.AIDescription = complaint
	}
	return resp, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
