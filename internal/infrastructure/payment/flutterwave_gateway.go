package payment

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
)

const (
	flutterwavePaymentsPath = "/v3/payments"
	flutterwaveVerifyPath   = "/v3/transactions/%s/verify"
)

// FlutterwaveGateway implements payment.LinkGateway for Flutterwave hosted checkout
type FlutterwaveGateway struct {
	config     *FlutterwaveConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// FlutterwaveOption configures a FlutterwaveGateway
type FlutterwaveOption func(*FlutterwaveGateway)

// WithFlutterwaveLogger sets the logger used for malformed API responses
func WithFlutterwaveLogger(logger *zap.Logger) FlutterwaveOption {
	return func(g *FlutterwaveGateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewFlutterwaveGateway creates a new Flutterwave gateway
func NewFlutterwaveGateway(config *FlutterwaveConfig, opts ...FlutterwaveOption) (*FlutterwaveGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &FlutterwaveGateway{
		config: config,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CreatePaymentLink creates a hosted payment page and returns its link
func (g *FlutterwaveGateway) CreatePaymentLink(ctx context.Context, req payment.LinkRequest) (string, error) {
	body, err := json.Marshal(flutterwavePaymentRequest{
		TxRef:       req.TxRef,
		Amount:      req.Amount.StringFixed(2),
		Currency:    req.Currency,
		RedirectURL: req.RedirectURL,
		Customer: flutterwaveCustomer{
			Email:       req.Customer.Email,
			Name:        req.Customer.Name,
			PhoneNumber: req.Customer.Phone,
		},
		Customizations: flutterwaveCustomizations{Title: req.Title},
		Meta:           req.Meta,
	})
	if err != nil {
		return "", fmt.Errorf("flutterwave: failed to marshal request: %w", err)
	}

	respBody, err := g.doRequest(ctx, http.MethodPost, flutterwavePaymentsPath, body)
	if err != nil {
		return "", err
	}

	var env flutterwaveEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		g.logger.Warn("Flutterwave payment response is not JSON",
			zap.String("tx_ref", req.TxRef), zap.Error(err))
		return "", payment.ErrMissingPaymentLink
	}
	var data flutterwaveLinkData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			g.logger.Warn("Flutterwave payment response has unexpected data",
				zap.String("tx_ref", req.TxRef),
				zap.ByteString("data", env.Data),
				zap.Error(err))
			return "", payment.ErrMissingPaymentLink
		}
	}
	if data.Link == "" {
		return "", payment.ErrMissingPaymentLink
	}
	return data.Link, nil
}

// VerifyTransaction fetches the authoritative state of a transaction
func (g *FlutterwaveGateway) VerifyTransaction(ctx context.Context, id string) (*payment.Transaction, error) {
	path := fmt.Sprintf(flutterwaveVerifyPath, url.PathEscape(id))
	respBody, err := g.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var env flutterwaveEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrVerificationFailed, err)
	}
	var data flutterwaveTransactionData
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", payment.ErrVerificationFailed, err)
		}
	}

	tx := &payment.Transaction{
		ID:       data.ID.String(),
		TxRef:    data.TxRef,
		Status:   data.Status,
		Currency: data.Currency,
	}
	if tx.ID == "" {
		tx.ID = id
	}
	if data.Amount != "" {
		if amt, err := decimal.NewFromString(data.Amount.String()); err == nil {
			tx.Amount = amt
		}
	}
	return tx, nil
}

// VerifyHash reports whether the verif-hash header matches the configured secret hash
func (g *FlutterwaveGateway) VerifyHash(header string) bool {
	return VerifyFlutterwaveHash(header, g.config.SecretHash)
}

// VerifyFlutterwaveHash compares a verif-hash header with secret in constant time.
// An empty secret never matches.
func VerifyFlutterwaveHash(header, secret string) bool {
	if secret == "" || header == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), []byte(secret)) == 1
}

func (g *FlutterwaveGateway) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.config.baseURL()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("flutterwave: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.config.SecretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flutterwave: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flutterwave: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &payment.ProviderError{
			Provider:   payment.ProviderFlutterwave,
			StatusCode: resp.StatusCode,
			Message:    flutterwaveErrorMessage(respBody),
		}
	}

	return respBody, nil
}

// flutterwaveErrorMessage prefers the API's message field, then the raw body
func flutterwaveErrorMessage(body []byte) string {
	var env flutterwaveEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "Flutterwave error"
}
