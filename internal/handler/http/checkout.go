package http

import (
	"log/slog"
	"net/http"

	"github.com/Jovalentine/Digi-market/internal/domain"
	"github.com/Jovalentine/Digi-market/internal/pricing"
	"github.com/Jovalentine/Digi-market/internal/service"
	"github.com/Jovalentine/Digi-market/pkg/httputil"
)

// CheckoutHandler handles the checkout page endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// OrderConfirmation is returned once an order is placed.
type OrderConfirmation struct {
	*domain.Order
	FormattedGrandTotal string `json:"formatted_grand_total"`
}

// Quote handles GET /api/v1/checkout
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Quote(r.Context(), sessionID(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, summary)
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input service.CheckoutInput
	if err := httputil.DecodeJSON(w, r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), sessionID(r.Context()), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, OrderConfirmation{
		Order:               order,
		FormattedGrandTotal: pricing.FormatPrice(order.Summary.GrandTotal),
	})
}
