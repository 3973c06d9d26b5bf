package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"cityguardian/models"
)

// Verdict is the parsed image-validation response.
type Verdict struct {
	Valid bool `json:"valid"`
}

// ExtractJSONFromMarkdown extracts JSON from markdown code blocks. Model
// responses are sometimes wrapped in ``` fences with an optional "json"
// language tag; structured parsing needs the bare object.
func ExtractJSONFromMarkdown(response string) string {
	startMarker := "```"
	endMarker := "```"

	startIdx := strings.Index(response, startMarker)
	if startIdx == -1 {
		// No code block found, try to find JSON object directly
		startIdx = strings.Index(response, "{")
		if startIdx == -1 {
			return response
		}
		endIdx := strings.LastIndex(response, "}")
		if endIdx == -1 {
			return response
		}
		return strings.TrimSpace(response[startIdx : endIdx+1])
	}

	// Find the end of the first code block
	endIdx := strings.Index(response[startIdx+len(startMarker):], endMarker)
	if endIdx == -1 {
		return response
	}
	endIdx += startIdx + len(startMarker)

	// Extract content between the markers
	content := response[startIdx+len(startMarker) : endIdx]

	// Remove the language identifier if present (e.g., "json")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) > 0 && (strings.TrimSpace(lines[0]) == "json" || strings.TrimSpace(lines[0]) == "") {
		content = strings.Join(lines[1:], "\n")
	}

	return strings.TrimSpace(content)
}

// ParseVerdict parses the image-validator response: a JSON object with a
// boolean "valid" field.
func ParseVerdict(response string) (*Verdict, error) {
	jsonContent := ExtractJSONFromMarkdown(strings.TrimSpace(response))

	var verdict Verdict
	if err := json.Unmarshal([]byte(jsonContent), &verdict); err != nil {
		return nil, errors.New("failed to parse verdict JSON: " + err.Error())
	}
	return &verdict, nil
}

// ParseClassification parses the classifier response: a JSON object with
// string "category" and "urgency" fields, both required.
func ParseClassification(response string) (*models.Classification, error) {
	jsonContent := ExtractJSONFromMarkdown(strings.TrimSpace(response))

	var result models.Classification
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, errors.New("failed to parse classification JSON: " + err.Error())
	}
	if result.Category == "" {
		return nil, errors.New("category is required")
	}
	if result.Urgency == "" {
		return nil, errors.New("urgency is required")
	}
	return &result, nil
}
