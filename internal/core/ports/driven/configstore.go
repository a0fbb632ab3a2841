package driven

// ConfigStore provides typed access to persisted application
// configuration. Missing keys return zero values.
type ConfigStore interface {
	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetFloat retrieves a floating-point configuration value.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Path returns the location of the backing file, for diagnostics.
	Path() string
}

// PromptStore provides the system prompt for the policy chat.
type PromptStore interface {
	// SystemPrompt returns the chat system prompt, falling back to the
	// built-in default when no override is configured.
	SystemPrompt() string
}
