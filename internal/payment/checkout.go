// Package payment wraps checkout session creation behind a small interface
// so handlers and tests never talk to the payment provider directly.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// MinimumChargeCents is the provider's floor for a single charge. Amounts at
// or below it are rejected before any provider call.
const MinimumChargeCents = 50

var (
	// ErrInvalidAmount is returned when the submitted amount is not a number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountTooSmall is returned when the amount does not exceed the
	// provider's minimum charge.
	ErrAmountTooSmall = errors.New("amount must be greater than $0.50")
)

// CheckoutClient creates checkout sessions with the payment provider.
type CheckoutClient interface {
	CreateSession(
		ctx context.Context,
		params *stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error)
}

// stripeClient is the production CheckoutClient backed by the Stripe SDK.
type stripeClient struct{}

func (stripeClient) CreateSession(
	ctx context.Context,
	params *stripe.CheckoutSessionParams,
) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return session.New(params)
}

// Service creates checkout sessions for one-off charges.
type Service struct {
	client  CheckoutClient
	baseURL string
	logger  *slog.Logger
}

// NewService creates a payment Service configured from cfg. It sets the
// package-level Stripe API key, so call it once at startup.
func NewService(cfg config.PaymentConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	stripe.Key = cfg.StripeSecretKey

	return &Service{
		client:  stripeClient{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger.With(slog.String("component", "payment_service")),
	}
}

// NewServiceWithClient creates a Service with a custom client, used in tests.
func NewServiceWithClient(client CheckoutClient, baseURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "payment_service")),
	}
}

// ParseAmountToCents converts a dollar amount string to integer cents.
// Returns ErrInvalidAmount for non-numeric input and ErrAmountTooSmall for
// amounts at or below the provider minimum.
func ParseAmountToCents(amount string) (int64, error) {
	dollars, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	cents := int64(math.Round(dollars * 100))
	if cents <= MinimumChargeCents {
		return 0, ErrAmountTooSmall
	}
	return cents, nil
}

// CreateCheckout creates a checkout session for a single line item of the
// given dollar amount and returns the provider-hosted payment URL.
func (s *Service) CreateCheckout(ctx context.Context, amount string) (string, error) {
	cents, err := ParseAmountToCents(amount)
	if err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Task Deck payment"),
					},
					UnitAmount: stripe.Int64(cents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.baseURL + "/payments/success"),
		CancelURL:  stripe.String(s.baseURL + "/payments/cancel"),
	}

	sess, err := s.client.CreateSession(ctx, params)
	if err != nil {
		s.logger.Error("failed to create checkout session",
			slog.String("error", err.Error()),
			slog.Int64("unit_amount", cents))
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		slog.String("session_id", sess.ID),
		slog.Int64("unit_amount", cents))
	return sess.URL, nil
}
