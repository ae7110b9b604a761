package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jovalentine/Digi-market/internal/domain"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
	"github.com/Jovalentine/Digi-market/pkg/validator"
)

// CheckoutInput is the checkout form. Payment is simulated, so the card
// fields are only checked for shape.
type CheckoutInput struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	CardNumber  string `json:"card_number" validate:"required,cardnumber"`
	Expiry      string `json:"expiry" validate:"required,expiry"`
	CVC         string `json:"cvc" validate:"required,numeric,min=3,max=4"`
	Cardholder  string `json:"cardholder" validate:"required,max=200"`
	AcceptTerms bool   `json:"accept_terms" validate:"eq=true"`
}

// CheckoutService turns a session's cart into an order.
type CheckoutService struct {
	carts     *CartService
	publisher EventPublisher
	logger    *slog.Logger
	nowFunc   func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts *CartService, publisher EventPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		publisher: publisher,
		logger:    logger,
		nowFunc:   func() time.Time { return time.Now().UTC() },
	}
}

// Quote returns the checkout figures for the session's current cart.
func (s *CheckoutService) Quote(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.carts.Summary(ctx, sessionID)
}

// checkoutAttempts bounds how often PlaceOrder re-reads a cart that keeps
// changing between the read and the clear.
const checkoutAttempts = 3

// PlaceOrder validates the form, snapshots the cart into an order and
// empties the cart. The clear is conditional on the version that was read,
// so an item added mid-checkout is either in the order or still in the
// cart. Only the last four card digits survive.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, input CheckoutInput) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if err := validator.Validate(input); err != nil {
		return nil, fmt.Errorf("validate checkout: %w", err)
	}

	for attempt := 0; attempt < checkoutAttempts; attempt++ {
		cart, err := s.carts.GetCart(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if cart.IsEmpty() {
			return nil, apperrors.InvalidInput("cart is empty")
		}

		_, cleared, err := s.carts.clearAt(ctx, sessionID, cart.Version)
		if err != nil {
			return nil, fmt.Errorf("clear cart after order: %w", err)
		}
		if !cleared {
			sessionLogger(ctx, s.logger, sessionID).WarnContext(ctx, "cart changed during checkout, retrying",
				slog.Int("read_version", cart.Version),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		return s.complete(ctx, sessionID, cart, input), nil
	}
	return nil, apperrors.Conflict("cart kept changing during checkout, review it and try again")
}

// complete builds the order for a cart that has just been cleared and
// announces it.
func (s *CheckoutService) complete(ctx context.Context, sessionID string, cart *domain.Cart, input CheckoutInput) *domain.Order {
	order := &domain.Order{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     cart.Clone().Items,
		Summary:   domain.SummaryOf(cart),
		Customer: domain.Customer{
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Email:     strings.TrimSpace(input.Email),
		},
		CardLast4: lastFour(validator.NormalizeCardNumber(input.CardNumber)),
		PlacedAt:  s.nowFunc(),
	}
	OrdersPlacedTotal.Inc()

	log := sessionLogger(ctx, s.logger, sessionID)
	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		log.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	log.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("item_count", order.Summary.ItemCount),
		slog.String("grand_total", order.Summary.GrandTotal.StringFixed(2)),
	)
	return order
}

func lastFour(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
