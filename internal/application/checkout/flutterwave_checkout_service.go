package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/telemetry"
)

const (
	msgMissingFlutterwaveKey = "Missing FLW_SECRET_KEY"
	msgInvalidRate           = "Invalid XAF_PER_USD"
	msgMissingLink           = "Missing Flutterwave payment link"

	// defaultXAFPerUSD applies when no rate is configured
	defaultXAFPerUSD = "600"
	// chargeCurrency is the currency hosted payments are charged in
	chargeCurrency = "USD"
	// returnRoute is the storefront route handling the provider redirect
	returnRoute = "/#/checkout/flutterwave-return"
)

// PaymentLinkResult carries the hosted payment page to redirect the buyer to
type PaymentLinkResult struct {
	Link string `json:"link"`
}

// FlutterwaveCheckoutService starts hosted card payments through Flutterwave
type FlutterwaveCheckoutService struct {
	access    *orderAccess
	links     payment.LinkGateway
	orders    order.Repository
	events    shared.EventPublisher
	metrics   Metrics
	siteURL   string
	xafPerUSD string
	logger    *zap.Logger
	now       func() time.Time
}

// FlutterwaveCheckoutServiceConfig contains the dependencies of FlutterwaveCheckoutService.
// A nil Links gateway means Flutterwave is not configured.
type FlutterwaveCheckoutServiceConfig struct {
	Links    payment.LinkGateway
	Verifier identity.TokenVerifier
	Orders   order.Repository
	Events   shared.EventPublisher
	Metrics  Metrics
	// SiteURL is the storefront base used when the request has no usable Origin
	SiteURL string
	// XAFPerUSD is the raw configured exchange rate; empty means the default
	XAFPerUSD string
	Logger    *zap.Logger
}

// NewFlutterwaveCheckoutService creates a new FlutterwaveCheckoutService
func NewFlutterwaveCheckoutService(cfg FlutterwaveCheckoutServiceConfig) *FlutterwaveCheckoutService {
	return &FlutterwaveCheckoutService{
		access:    &orderAccess{verifier: cfg.Verifier, orders: cfg.Orders, logger: cfg.Logger},
		links:     cfg.Links,
		orders:    cfg.Orders,
		events:    cfg.Events,
		metrics:   metricsOrNoop(cfg.Metrics),
		siteURL:   strings.TrimRight(cfg.SiteURL, "/"),
		xafPerUSD: cfg.XAFPerUSD,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// CreatePaymentLink converts the order total to USD, requests a hosted
// payment page and stamps the order as pending.
func (s *FlutterwaveCheckoutService) CreatePaymentLink(ctx context.Context, req Request) (*PaymentLinkResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "flutterwave_checkout", "create_payment_link")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, req.OrderID, telemetry.SpanAttrProvider, string(payment.ProviderFlutterwave))

	result, err := s.createPaymentLink(ctx, req)
	outcome := outcomeOf(err)
	telemetry.SetAttribute(span, telemetry.SpanAttrOutcome, outcome)
	telemetry.RecordError(span, err)
	s.metrics.RecordCheckout(ctx, string(payment.ProviderFlutterwave), outcome)
	return result, err
}

func (s *FlutterwaveCheckoutService) createPaymentLink(ctx context.Context, req Request) (*PaymentLinkResult, error) {
	if s.links == nil {
		return nil, newError(http.StatusInternalServerError, msgMissingFlutterwaveKey)
	}

	principal, o, err := s.access.payableOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	log := logger.FromContextOr(ctx, s.logger).With(zap.String("order_id", o.ID))

	rate, err := ParseRate(s.xafPerUSD)
	if err != nil {
		return nil, wrapError(http.StatusInternalServerError, msgInvalidRate, err)
	}

	amount, _ := o.PayableAmount()
	amountUSD := payment.ConvertAtRate(amount, rate)
	txRef := TxRef(o.ID, s.now())

	link, err := s.links.CreatePaymentLink(ctx, payment.LinkRequest{
		TxRef:       txRef,
		Amount:      amountUSD,
		Currency:    chargeCurrency,
		RedirectURL: s.redirectURL(req.Origin, o.ID),
		Customer: payment.Customer{
			Email: firstNonEmpty(o.CustomerEmail, principal.Email),
			Name:  o.CustomerName,
			Phone: o.CustomerPhone,
		},
		Title: "Commande " + o.DisplayReference(),
		Meta: map[string]any{
			"order_id":     o.ID,
			"amount_xaf":   amount.InexactFloat64(),
			"currency_xaf": o.CurrencyCode(),
		},
	})
	if err != nil {
		if errors.Is(err, payment.ErrMissingPaymentLink) {
			return nil, wrapError(http.StatusInternalServerError, msgMissingLink, err)
		}
		return nil, providerFailure(err)
	}

	applied, err := s.orders.Stamp(ctx, o.ID, order.PendingStamp(string(payment.ProviderFlutterwave), ""))
	if err != nil {
		return nil, wrapError(http.StatusInternalServerError, "Failed to update order", err)
	}
	if !applied {
		log.Warn("order left unchanged by pending stamp", zap.String("tx_ref", txRef))
	}

	log.Info("hosted payment link ready",
		zap.String("tx_ref", txRef),
		zap.String("amount_usd", amountUSD.StringFixed(2)),
		zap.String("amount_home", amount.String()),
	)

	event := payment.NewStatusChanged(payment.EventPaymentPending, o.ID, payment.ProviderFlutterwave, txRef)
	event.UserID = principal.UserID
	event.Amount = amountUSD.StringFixed(2)
	event.Currency = chargeCurrency
	publishStatus(ctx, s.events, s.logger, event)

	return &PaymentLinkResult{Link: link}, nil
}

// redirectURL sends the buyer back to the storefront that started the checkout
func (s *FlutterwaveCheckoutService) redirectURL(origin, orderID string) string {
	site := s.siteURL
	if strings.HasPrefix(origin, "http") {
		site = strings.TrimRight(origin, "/")
	}
	return site + returnRoute + "?order_id=" + url.QueryEscape(orderID)
}

// ParseRate parses a positive, finite exchange rate. Empty means the default.
func ParseRate(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultXAFPerUSD
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rate %q: %w", raw, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate %q must be positive", raw)
	}
	return rate, nil
}

// TxRef builds the merchant reference order_<order id>_<unix millis>
func TxRef(orderID string, now time.Time) string {
	return fmt.Sprintf("order_%s_%d", orderID, now.UnixMilli())
}
