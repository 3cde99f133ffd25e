package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/payment"
)

// CheckoutRequest defines the JSON payload for the checkout endpoint. The
// amount is in dollars, as entered by the user.
type CheckoutRequest struct {
	Amount string `json:"amount"`
}

// PaymentHandler handles the checkout flow. It accepts either a form post or
// a JSON body and answers with a redirect to the provider-hosted page.
type PaymentHandler struct {
	paymentService *payment.Service
	logger         *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler with the given dependencies.
func NewPaymentHandler(paymentService *payment.Service, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger.With(slog.String("component", "payment_handler")),
	}
}

// Checkout handles POST /payments/checkout.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	amount := h.extractAmount(r)
	if amount == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Amount is required")
		return
	}

	url, err := h.paymentService.CreateCheckout(r.Context(), amount)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrAmountTooSmall):
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Amount must be greater than $0.50")
		case errors.Is(err, payment.ErrInvalidAmount):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid amount")
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to create checkout session", err)
		}
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Success handles GET /payments/success.
func (h *PaymentHandler) Success(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status": "payment completed",
	})
}

// Cancel handles GET /payments/cancel.
func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status": "payment cancelled",
	})
}

// extractAmount reads the amount from a form post or a JSON body.
func (h *PaymentHandler) extractAmount(r *http.Request) string {
	if err := r.ParseForm(); err == nil {
		if amount := r.PostFormValue("amount"); amount != "" {
			return amount
		}
	}

	var req CheckoutRequest
	if err := shared.DecodeJSON(r, &req); err == nil {
		return req.Amount
	}
	return ""
}
