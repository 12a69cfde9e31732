package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via the user dotfile
// and then the project file.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Agent    AgentConfig    `json:"agent" yaml:"agent"`
	Tools    ToolsConfig    `json:"tools" yaml:"tools"`
}

type ProviderConfig struct {
	// Default is used when neither --provider nor PROVIDER is set.
	Default string `json:"default" yaml:"default"` // Default: "openai"

	// DefaultModels maps a provider identifier to the model used when neither
	// --model nor MODEL_NAME is set.
	DefaultModels map[string]string `json:"default_models" yaml:"default_models"`

	MaxRetries        int `json:"max_retries" yaml:"max_retries"`                 // Default: 2
	RetryBaseDelayMs  int `json:"retry_base_delay_ms" yaml:"retry_base_delay_ms"` // Default: 1000
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute"` // Default: 0 (unlimited)
	RequestTimeoutSec int `json:"request_timeout_sec" yaml:"request_timeout_sec"` // Default: 300
	MaxOutputTokens   int `json:"max_output_tokens" yaml:"max_output_tokens"`     // Default: 8192
}

type AgentConfig struct {
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"` // Default: 30
}

type ToolsConfig struct {
	// Answer size
	DefaultMaxAnswerChars int `json:"default_max_answer_chars" yaml:"default_max_answer_chars"` // Default: 200000

	// File Operations
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)

	// Directory Listing
	MaxListDirectoryResults int `json:"max_list_directory_results" yaml:"max_list_directory_results"` // Default: 50000
	MaxFindFileResults      int `json:"max_find_file_results" yaml:"max_find_file_results"`           // Default: 10000

	// Search
	MaxSearchResults int `json:"max_search_results" yaml:"max_search_results"` // Default: 10000
	MaxLineLength    int `json:"max_line_length" yaml:"max_line_length"`       // Default: 10000

	// Command Execution
	MaxCommandOutputSize int64 `json:"max_command_output_size" yaml:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
	DefaultShellTimeout  int   `json:"default_shell_timeout" yaml:"default_shell_timeout"`     // Default: 600 (10 minutes, in seconds)

	// Disabled lists canonical tool names that are never exposed to the model.
	Disabled []string `json:"disabled" yaml:"disabled"`
}

// DefaultModels returns the built-in provider -> model table.
func DefaultModels() map[string]string {
	return map[string]string{
		"openai":    "gpt-5.2",
		"anthropic": "claude-4.5-sonnet",
		"gemini":    "gemini-3.0-pro",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Default:           "openai",
			DefaultModels:     DefaultModels(),
			MaxRetries:        2,
			RetryBaseDelayMs:  1000,
			RequestsPerMinute: 0,
			RequestTimeoutSec: 300,
			MaxOutputTokens:   8192,
		},
		Agent: AgentConfig{
			MaxIterations: 30,
		},
		Tools: ToolsConfig{
			DefaultMaxAnswerChars:   200000,
			MaxFileSize:             20 * 1024 * 1024,
			MaxListDirectoryResults: 50000,
			MaxFindFileResults:      10000,
			MaxSearchResults:        10000,
			MaxLineLength:           10000,
			MaxCommandOutputSize:    10 * 1024 * 1024,
			DefaultShellTimeout:     600,
		},
	}
}
