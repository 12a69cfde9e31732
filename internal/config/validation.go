package config

import (
	"fmt"
	"slices"
	"sort"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Provider validation
	if len(c.Provider.DefaultModels) == 0 {
		errs = append(errs, "provider.default_models must not be empty")
	}
	providers := make([]string, 0, len(c.Provider.DefaultModels))
	for p := range c.Provider.DefaultModels {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	for _, p := range providers {
		if c.Provider.DefaultModels[p] == "" {
			errs = append(errs, fmt.Sprintf("provider.default_models.%s must not be empty", p))
		}
	}
	if c.Provider.Default == "" {
		errs = append(errs, "provider.default must not be empty")
	} else if !slices.Contains(providers, c.Provider.Default) {
		errs = append(errs, fmt.Sprintf("provider.default %q has no entry in provider.default_models", c.Provider.Default))
	}
	if c.Provider.MaxRetries < 0 {
		errs = append(errs, "provider.max_retries must be >= 0")
	}
	if c.Provider.RetryBaseDelayMs < 1 {
		errs = append(errs, "provider.retry_base_delay_ms must be >= 1")
	}
	if c.Provider.RequestsPerMinute < 0 {
		errs = append(errs, "provider.requests_per_minute must be >= 0")
	}
	if c.Provider.RequestTimeoutSec < 1 {
		errs = append(errs, "provider.request_timeout_sec must be >= 1")
	}
	if c.Provider.MaxOutputTokens < 1 {
		errs = append(errs, "provider.max_output_tokens must be >= 1")
	}

	// Agent validation
	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}

	// Tools validation
	if c.Tools.DefaultMaxAnswerChars < 1 {
		errs = append(errs, "tools.default_max_answer_chars must be >= 1")
	}
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.MaxListDirectoryResults < 1 {
		errs = append(errs, "tools.max_list_directory_results must be >= 1")
	}
	if c.Tools.MaxFindFileResults < 1 {
		errs = append(errs, "tools.max_find_file_results must be >= 1")
	}
	if c.Tools.MaxSearchResults < 1 {
		errs = append(errs, "tools.max_search_results must be >= 1")
	}
	if c.Tools.MaxLineLength < 1 {
		errs = append(errs, "tools.max_line_length must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.DefaultShellTimeout < 1 {
		errs = append(errs, "tools.default_shell_timeout must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
