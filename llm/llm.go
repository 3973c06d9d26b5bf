package llm

// Client abstracts the generative capability used by the intake agents.
// Implementations must be concurrency-safe if used across goroutines.
type Client interface {
	// GenerateContent sends a text prompt, optionally paired with raw JPEG
	// image bytes, and returns the model's text output. The output may be
	// JSON-shaped and may be wrapped in markdown code fences; callers parse
	// it through the parser package.
	GenerateContent(prompt string, image []byte) (string, error)
	// SourceName returns a short provider label for logging (e.g., "Gemini").
	SourceName() string
}
