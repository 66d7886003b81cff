package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/checkout"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/middleware"
)

// Header names read by the payment functions
const (
	OriginHeader          = "Origin"
	StripeSignatureHeader = "Stripe-Signature"
	FlutterwaveHashHeader = "verif-hash"
)

const internalErrorText = "Internal Server Error"

// PaymentIntentCreator starts a Stripe card checkout
type PaymentIntentCreator interface {
	CreatePaymentIntent(ctx context.Context, req checkout.Request) (*checkout.PaymentIntentResult, error)
}

// PaymentLinkCreator starts a Flutterwave hosted checkout
type PaymentLinkCreator interface {
	CreatePaymentLink(ctx context.Context, req checkout.Request) (*checkout.PaymentLinkResult, error)
}

// WebhookProcessor applies one provider callback. secret is the provider's
// authentication header value.
type WebhookProcessor interface {
	HandleWebhook(ctx context.Context, secret string, body []byte) (*checkout.Ack, error)
}

// FunctionHandler serves the browser- and provider-facing payment functions.
// Successes are JSON; failures are plain text.
type FunctionHandler struct {
	stripeCheckout      PaymentIntentCreator
	flutterwaveCheckout PaymentLinkCreator
	stripeWebhook       WebhookProcessor
	flutterwaveWebhook  WebhookProcessor
	logger              *zap.Logger
}

// FunctionHandlerConfig wires the payment functions to their services
type FunctionHandlerConfig struct {
	StripeCheckout      PaymentIntentCreator
	FlutterwaveCheckout PaymentLinkCreator
	StripeWebhook       WebhookProcessor
	FlutterwaveWebhook  WebhookProcessor
	Logger              *zap.Logger
}

// NewFunctionHandler creates a new FunctionHandler
func NewFunctionHandler(cfg FunctionHandlerConfig) *FunctionHandler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &FunctionHandler{
		stripeCheckout:      cfg.StripeCheckout,
		flutterwaveCheckout: cfg.FlutterwaveCheckout,
		stripeWebhook:       cfg.StripeWebhook,
		flutterwaveWebhook:  cfg.FlutterwaveWebhook,
		logger:              cfg.Logger,
	}
}

// checkoutBody is the JSON body of both checkout functions
type checkoutBody struct {
	OrderID string `json:"order_id"`
}

// CreatePaymentIntent godoc
//
//	@ID				createPaymentIntent
//	@Summary		Start a Stripe card checkout
//	@Description	Creates or reuses the Stripe payment intent of the caller's order. Errors are plain text.
//	@Tags			checkout
//	@Accept			json
//	@Produce		json,plain
//	@Param			request	body		checkoutBody	true	"Order to pay"
//	@Success		200		{object}	checkout.PaymentIntentResult
//	@Failure		400		{string}	string
//	@Failure		401		{string}	string
//	@Failure		409		{string}	string
//	@Security		BearerAuth
//	@Router			/functions/v1/create-payment-intent [post]
func (h *FunctionHandler) CreatePaymentIntent(c *gin.Context) {
	req, ok := h.checkoutRequest(c)
	if !ok {
		return
	}

	result, err := h.stripeCheckout.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		h.textError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateFlutterwavePayment godoc
//
//	@ID				createFlutterwavePayment
//	@Summary		Start a Flutterwave hosted checkout
//	@Tags			checkout
//	@Accept			json
//	@Produce		json,plain
//	@Param			request	body		checkoutBody	true	"Order to pay"
//	@Success		200		{object}	checkout.PaymentLinkResult
//	@Failure		400		{string}	string
//	@Failure		401		{string}	string
//	@Failure		409		{string}	string
//	@Security		BearerAuth
//	@Router			/functions/v1/create-flutterwave-payment [post]
func (h *FunctionHandler) CreateFlutterwavePayment(c *gin.Context) {
	req, ok := h.checkoutRequest(c)
	if !ok {
		return
	}

	result, err := h.flutterwaveCheckout.CreatePaymentLink(c.Request.Context(), req)
	if err != nil {
		h.textError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StripeWebhook godoc
//
//	@ID			stripeWebhook
//	@Summary	Stripe webhook
//	@Tags		webhooks
//	@Param		Stripe-Signature	header		string	true	"Stripe signature"
//	@Success	200					{object}	checkout.Ack
//	@Failure	400					{string}	string
//	@Router		/functions/v1/stripe-webhook [post]
func (h *FunctionHandler) StripeWebhook(c *gin.Context) {
	h.webhook(c, h.stripeWebhook, c.GetHeader(StripeSignatureHeader))
}

// FlutterwaveWebhook godoc
//
//	@ID			flutterwaveWebhook
//	@Summary	Flutterwave webhook
//	@Tags		webhooks
//	@Param		verif-hash	header		string	true	"Configured secret hash"
//	@Success	200			{object}	checkout.Ack
//	@Failure	401			{string}	string
//	@Router		/functions/v1/flutterwave-webhook [post]
func (h *FunctionHandler) FlutterwaveWebhook(c *gin.Context) {
	h.webhook(c, h.flutterwaveWebhook, c.GetHeader(FlutterwaveHashHeader))
}

func (h *FunctionHandler) webhook(c *gin.Context, processor WebhookProcessor, secret string) {
	// Signatures are computed over the exact bytes received.
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	ack, err := processor.HandleWebhook(c.Request.Context(), secret, body)
	if err != nil {
		h.textError(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

// checkoutRequest builds the checkout request. A body that is not a JSON
// object yields an empty order id so authentication is still checked first.
func (h *FunctionHandler) checkoutRequest(c *gin.Context) (checkout.Request, bool) {
	body, ok := h.readBody(c)
	if !ok {
		return checkout.Request{}, false
	}

	var parsed checkoutBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		parsed = checkoutBody{}
	}

	return checkout.Request{
		Token:   middleware.BearerToken(c),
		OrderID: strings.TrimSpace(parsed.OrderID),
		Origin:  c.GetHeader(OriginHeader),
	}, true
}

// readBody reads the whole request body, answering 413 past the body limit
func (h *FunctionHandler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		return body, true
	}

	if middleware.IsBodyTooLarge(err) {
		c.String(http.StatusRequestEntityTooLarge, middleware.PayloadTooLargeMessage)
		return nil, false
	}
	logger.FromContextOr(c.Request.Context(), h.logger).Warn("failed to read request body", zap.Error(err))
	c.String(http.StatusBadRequest, "Failed to read request body")
	return nil, false
}

// textError writes err as a plain-text response. Only *checkout.Error
// messages reach the client.
func (h *FunctionHandler) textError(c *gin.Context, err error) {
	var fnErr *checkout.Error
	if !errors.As(err, &fnErr) {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, internalErrorText)
		return
	}

	if fnErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.String(fnErr.Status, fnErr.Message)
}
