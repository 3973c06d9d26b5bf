package stubllm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Client is a deterministic, no-network generative-capability stub intended
// for CI and local end-to-end tests. It recognizes each intake agent's prompt
// shape and answers with contract-valid output so the full pipeline can run
// without a real provider.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) GenerateContent(prompt string, image []byte) (string, error) {
	switch {
	case strings.Contains(prompt, "Is this a civic issue"):
		return `{"valid": true}`, nil
	case strings.Contains(prompt, "Describe the civic issue"):
		// Deterministic per-image so pipeline runs are stable in CI.
		sum := sha256.Sum256(image)
		short := hex.EncodeToString(sum[:4])
		return fmt.Sprintf("There is garbage accumulating near the roadside (ref %s).", short), nil
	case strings.Contains(prompt, "Classify this civic complaint"):
		return `{"category": "Roads", "urgency": "medium"}`, nil
	default:
		return "Dear Sir or Madam,\n\nThis is a stubbed complaint draft.\n\nThank you,\nStub", nil
	}
}
