package provider

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// Environment variables read during resolution.
const (
	EnvProvider = "PROVIDER"
	EnvModel    = "MODEL_NAME"
)

// FallbackProvider is used when no provider is requested, set or configured.
const FallbackProvider = "openai"

type providerSpec struct {
	// credentials lists the accepted key variables; any one suffices.
	credentials []string
	baseURLVar  string
}

var providers = map[string]providerSpec{
	"openai":    {credentials: []string{"OPENAI_API_KEY"}, baseURLVar: "OPENAI_BASE_URL"},
	"anthropic": {credentials: []string{"ANTHROPIC_API_KEY"}, baseURLVar: "ANTHROPIC_BASE_URL"},
	"gemini":    {credentials: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}},
}

// Supported returns the supported provider identifiers in sorted order.
func Supported() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Environment looks up configuration variables.
type Environment interface {
	Lookup(key string) (string, bool)
}

// OSEnvironment reads the process environment.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is an in-memory Environment.
type MapEnvironment map[string]string

func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ConfigurationError reports a run that cannot start: an unknown provider,
// a missing credential or missing input.
type ConfigurationError struct {
	Provider string
	// Missing lists the credential variables that were expected.
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	switch {
	case len(e.Missing) == 1:
		return fmt.Sprintf("%s environment variable is required for provider %s", e.Missing[0], e.Provider)
	case len(e.Missing) > 1:
		return fmt.Sprintf("one of %s environment variables is required for provider %s", strings.Join(e.Missing, " or "), e.Provider)
	default:
		return e.Reason
	}
}

// Config is a resolved provider selection. It is immutable.
type Config struct {
	provider      string
	model         string
	credentialVar string
	apiKey        string
	baseURL       string
}

func (c *Config) Provider() string { return c.provider }

func (c *Config) Model() string { return c.model }

// CredentialVar is the environment variable the API key was read from.
func (c *Config) CredentialVar() string { return c.credentialVar }

func (c *Config) APIKey() string { return c.apiKey }

// BaseURL is the endpoint override, empty for the provider's default.
func (c *Config) BaseURL() string { return c.baseURL }

// Resolve picks the provider and model and checks the provider's credential.
//
// Provider precedence: requested, then PROVIDER, then defaultProvider.
// Model precedence: explicitModel, then MODEL_NAME, then defaults[provider].
func Resolve(requested, explicitModel string, env Environment, defaultProvider string, defaults map[string]string) (*Config, error) {
	name := firstNonEmpty(requested, lookup(env, EnvProvider), defaultProvider, FallbackProvider)
	name = strings.ToLower(strings.TrimSpace(name))

	spec, ok := providers[name]
	if !ok {
		return nil, &ConfigurationError{
			Provider: name,
			Reason:   fmt.Sprintf("unsupported provider %q (supported: %s)", name, strings.Join(Supported(), ", ")),
		}
	}

	model := firstNonEmpty(explicitModel, lookup(env, EnvModel), defaults[name])
	if model == "" {
		return nil, &ConfigurationError{
			Provider: name,
			Reason:   fmt.Sprintf("no model given and no default model configured for provider %s", name),
		}
	}

	cfg := &Config{provider: name, model: strings.TrimSpace(model)}
	for _, key := range spec.credentials {
		if v := lookup(env, key); v != "" {
			cfg.credentialVar = key
			cfg.apiKey = v
			break
		}
	}
	if cfg.apiKey == "" {
		return nil, &ConfigurationError{Provider: name, Missing: slices.Clone(spec.credentials)}
	}
	if spec.baseURLVar != "" {
		cfg.baseURL = strings.TrimRight(lookup(env, spec.baseURLVar), "/")
	}
	return cfg, nil
}

// lookup treats empty values as unset.
func lookup(env Environment, key string) string {
	if env == nil {
		return ""
	}
	v, _ := env.Lookup(key)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
