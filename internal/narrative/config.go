package narrative

// Config holds generation parameters for narrative calls. The zero value
// defers everything to the provider.
type Config struct {
	// MaxTokens caps insight and summary replies. Zero defers to the
	// provider, which matters for models that spend output tokens on
	// reasoning before answering.
	MaxTokens int

	// StoryMaxTokens caps the story reply. Zero defers to the provider.
	StoryMaxTokens int

	// Temperature for all narrative calls. Zero defers to the provider.
	Temperature float64
}
