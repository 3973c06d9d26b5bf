// Package agents wraps each generative-capability call behind a typed
// contract with a deterministic fallback. Every adapter fails open toward not
// blocking the report: a missed real hazard costs more than an occasional
// un-validated image or canned draft.
package agents

import (
	"fmt"
	"strings"

	"cityguardian/llm"
	"cityguardian/metrics"
	"cityguardian/models"
	"cityguardian/parser"

	"github.com/apex/log"
)

const (
	verifyPrompt   = `Is this a civic issue (garbage, pothole, leak, broken light)? Respond ONLY in JSON: {"valid": true/false}`
	describePrompt = `Describe the civic issue in this photo in one clear, formal sentence. If none found, say 'None'.`
	classifyPrompt = `Classify this civic complaint. Categories: Water, Sewage, Roads, Electric. Respond ONLY in JSON: {"category": "...", "urgency": "low|medium|high"}

Complaint: %s`
	draftPrompt = `Write a formal municipal complaint 3 paragraph detailed email based on the following details:

Citizen: %s (%s)
Location: %s
Category: %s
Urgency: %s
Issue: %s

Rules:
1. Use a professional, respectful, yet firm tone.
2. Explain the public hazard caused by this issue.
3. Keep the email concise but formal (3 paragraphs).

End the email exactly with:
Thank you,
%s
%s
Reported Location: %s
`
)

// Agents holds the four capability adapters sharing one provider client.
type Agents struct {
	llm llm.Client
}

func New(client llm.Client) *Agents {
	return &Agents{llm: client}
}

// VerifyImage asks whether the photo shows a legitimate civic issue.
// Fail-open: any provider or parse failure counts as valid.
func (a *Agents) VerifyImage(image []byte) bool {
	res, err := a.llm.GenerateContent(verifyPrompt, image)
	if err != nil {
		log.Warnf("Image verifier call failed, treating image as valid: %v", err)
		metrics.CapabilityFallbacksTotal.WithLabelValues("verifier").Inc()
		return true
	}
	verdict, err := parser.ParseVerdict(res)
	if err != nil {
		log.Warnf("Image verifier returned unparseable response, treating image as valid: %v", err)
		metrics.CapabilityFallbacksTotal.WithLabelValues("verifier").Inc()
		return true
	}
	return verdict.Valid
}

// DescribeImage derives a one-sentence issue description from the photo.
// Returns "" when the model finds no issue (the "none" sentinel) or the call
// fails.
func (a *Agents) DescribeImage(image []byte) string {
	res, err := a.llm.GenerateContent(describePrompt, image)
	if err != nil {
		log.Warnf("Image describer call failed: %v", err)
		metrics.CapabilityFallbacksTotal.WithLabelValues("describer").Inc()
		return ""
	}
	desc := strings.TrimSpace(res)
	if strings.Contains(strings.ToLower(desc), "none") {
		return ""
	}
	return desc
}

// Classify categorizes the complaint and sets its urgency. Falls back to
// Roads / medium on any failure.
func (a *Agents) Classify(complaint string) models.Classification {
	fallback := models.Classification{Category: "Roads", Urgency: "medium"}

	res, err := a.llm.GenerateContent(fmt.Sprintf(classifyPrompt, complaint), nil)
	if err != nil {
		log.Warnf("Classifier call failed, using fallback %v: %v", fallback, err)
		metrics.CapabilityFallbacksTotal.WithLabelValues("classifier").Inc()
		return fallback
	}
	cl, err := parser.ParseClassification(res)
	if err != nil {
		log.Warnf("Classifier returned unparseable response, using fallback %v: %v", fallback, err)
		metrics.CapabilityFallbacksTotal.WithLabelValues("classifier").Inc()
		return fallback
	}
	return *cl
}

// DraftEmail builds the formal email body sent to the department. Falls back
// to a one-line synthesized body built from the same fields.
func (a *Agents) DraftEmail(name, email, complaint, location, category, urgency string) string {
	prompt := fmt.Sprintf(draftPrompt, name, email, location, category, urgency, complaint, name, email, location)
	res, err := a.llm.GenerateContent(prompt, nil)
	if err != nil {
		log.Warnf("Drafting call failed, using synthesized body: %v", err)
		metrics.CapabilityFallbacksTotal.WithLabelValues("drafter").Inc()
		return fmt.Sprintf("Formal report for %s issue at %s. Details: %s", category, location, complaint)
	}
	return res
}
