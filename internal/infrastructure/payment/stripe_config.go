package payment

import (
	"errors"
	"strings"
)

// StripeConfig holds Stripe credentials
type StripeConfig struct {
	// SecretKey is the secret or restricted API key (sk_... or rk_...)
	SecretKey string
	// WebhookSecret verifies the Stripe-Signature header (whsec_...)
	WebhookSecret string
}

// Errors for configuration validation
var (
	ErrStripeMissingSecretKey = errors.New("stripe: missing secret key")
	ErrStripeInvalidSecretKey = errors.New("stripe: secret key must start with sk_ or rk_")
)

// Validate validates the configuration
func (c *StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrStripeMissingSecretKey
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") && !strings.HasPrefix(c.SecretKey, "rk_") {
		return ErrStripeInvalidSecretKey
	}
	return nil
}

// IsTestMode reports whether the key belongs to Stripe test mode
func (c *StripeConfig) IsTestMode() bool {
	return strings.Contains(c.SecretKey, "_test_")
}
