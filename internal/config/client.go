package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	// ServerURL is the base URL of the auth API.
	// Env: AUTH_SERVER_URL
	ServerURL string `env:"AUTH_SERVER_URL" validate:"required,url"`

	// Timeout bounds every request to the API.
	// Env: AUTH_CLIENT_TIMEOUT
	Timeout time.Duration `env:"AUTH_CLIENT_TIMEOUT" validate:"gte=0"`

	// Token is a bearer token to start the session with. Registration
	// requires one.
	// Env: AUTH_TOKEN
	Token string `env:"AUTH_TOKEN"`

	// LogFile receives the client log. The terminal UI owns stdout, so the
	// log is discarded when no file is given.
	// Env: AUTH_CLIENT_LOG
	LogFile string `env:"AUTH_CLIENT_LOG"`
}

func clientDefaults() *ClientConfig {
	return &ClientConfig{
		ServerURL: "http://localhost:3000",
		Timeout:   15 * time.Second,
	}
}

// GetClientConfig merges defaults, environment variables and flags, in that
// order, and validates the result.
//
// Flags:
//
//	-s server base URL
//	-timeout request timeout
//	-token bearer token
//	-log log file path
func GetClientConfig(args []string) (*ClientConfig, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, err
	}

	flagCfg := &ClientConfig{}
	fs := flag.NewFlagSet("go-auth-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&flagCfg.ServerURL, "s", "", "Auth API base URL")
	fs.DurationVar(&flagCfg.Timeout, "timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&flagCfg.Token, "token", "", "Bearer token")
	fs.StringVar(&flagCfg.LogFile, "log", "", "Log file path")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{clientDefaults(), envCfg, flagCfg} {
		if err := mergo.Merge(cfg, src, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
