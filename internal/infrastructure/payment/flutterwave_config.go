package payment

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

const flutterwaveAPIBaseURL = "https://api.flutterwave.com"

// FlutterwaveConfig contains configuration for the Flutterwave v3 API
type FlutterwaveConfig struct {
	// SecretKey authenticates API calls (Bearer token)
	SecretKey string
	// SecretHash is the value Flutterwave sends in the verif-hash webhook header
	SecretHash string
	// BaseURL overrides the API host, mainly for tests
	BaseURL string
	// Timeout bounds each API call
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrFlutterwaveMissingSecretKey = errors.New("flutterwave: missing secret key")
	ErrFlutterwaveInvalidBaseURL   = errors.New("flutterwave: invalid base URL")
)

// Validate validates the configuration
func (c *FlutterwaveConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrFlutterwaveMissingSecretKey
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrFlutterwaveInvalidBaseURL
		}
	}
	return nil
}

func (c *FlutterwaveConfig) baseURL() string {
	if c.BaseURL == "" {
		return flutterwaveAPIBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *FlutterwaveConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}
