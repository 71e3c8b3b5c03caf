package openai

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/petal-labs/openaikit/core"
)

const (
	// DefaultHost is the API host used when none is configured.
	DefaultHost = "api.openai.com"

	// DefaultTimeout bounds single calls and the idle gap of streaming calls.
	DefaultTimeout = 60 * time.Second
)

// ErrTokenRequired is returned by NewFromEnv when OPENAI_API_KEY is not set.
var ErrTokenRequired = errors.New("openai: OPENAI_API_KEY environment variable not set")

// Configuration is the immutable client configuration shared by every request.
type Configuration struct {
	// Token is the API key sent as a bearer token.
	Token core.Secret

	// OrganizationIdentifier is sent as the OpenAI-Organization header when set.
	OrganizationIdentifier string

	// Host is the API host, optionally with a port. Requests always use HTTPS.
	Host string

	// Timeout bounds single calls end to end. For streaming calls it bounds the
	// wait for response headers and the gap between frames.
	Timeout time.Duration
}

// NewConfiguration returns a Configuration for token with default host and timeout.
func NewConfiguration(token string) Configuration {
	return Configuration{
		Token:   core.NewSecret(token),
		Host:    DefaultHost,
		Timeout: DefaultTimeout,
	}
}

// withDefaults fills unset fields.
func (c Configuration) withDefaults() Configuration {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// EnvConfig is the environment representation of a Configuration.
type EnvConfig struct {
	APIKey       string        `env:"OPENAI_API_KEY"`
	Organization string        `env:"OPENAI_ORGANIZATION"`
	Host         string        `env:"OPENAI_HOST" env-default:"api.openai.com"`
	Timeout      time.Duration `env:"OPENAI_TIMEOUT" env-default:"60s"`
}

// Configuration converts the environment values.
func (e EnvConfig) Configuration() Configuration {
	return Configuration{
		Token:                  core.NewSecret(e.APIKey),
		OrganizationIdentifier: e.Organization,
		Host:                   e.Host,
		Timeout:                e.Timeout,
	}.withDefaults()
}

// ConfigurationFromEnv reads OPENAI_API_KEY, OPENAI_ORGANIZATION, OPENAI_HOST
// and OPENAI_TIMEOUT.
func ConfigurationFromEnv() (Configuration, error) {
	var env EnvConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Configuration{}, fmt.Errorf("openai: read environment: %w", err)
	}
	if env.APIKey == "" {
		return Configuration{}, ErrTokenRequired
	}
	return env.Configuration(), nil
}

// NewFromEnv creates a client configured from the environment:
//
//	client, err := openai.NewFromEnv(openai.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := ConfigurationFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}
