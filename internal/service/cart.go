package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jovalentine/Digi-market/internal/domain"
	"github.com/Jovalentine/Digi-market/internal/repository"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
	"github.com/Jovalentine/Digi-market/pkg/tracing"
)

const tracerName = "github.com/Jovalentine/Digi-market/internal/service"

// MaxQuantityPerAdd bounds how many units a single add request may carry.
const MaxQuantityPerAdd = 100

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=100"`
}

// UpdateQuantityInput holds the parameters for setting a line's quantity.
// Values of zero or below leave the cart unchanged.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// ProductFinder resolves catalog products by id.
type ProductFinder interface {
	Get(id string) (domain.Product, error)
}

// EventPublisher publishes storefront domain events.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, operation string, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, cart *domain.Cart) error
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

// CartView is a cart together with its checkout figures.
type CartView struct {
	Cart    *domain.Cart   `json:"cart"`
	Summary domain.Summary `json:"summary"`
}

// NewCartView pairs a cart with its derived summary.
func NewCartView(c *domain.Cart) CartView {
	return CartView{Cart: c, Summary: domain.SummaryOf(c)}
}

// CartService implements the business logic for cart operations. Every
// mutation is a single atomic Apply against the repository.
type CartService struct {
	repo      repository.CartRepository
	products  ProductFinder
	publisher EventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, products ProductFinder, publisher EventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    logger,
		tracer:    tracing.Tracer(tracerName),
	}
}

// GetCart retrieves the cart for a session. A session without a cart gets
// an empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		c := domain.NewCart("")
		return &c, nil
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c := domain.NewCart(sessionID)
			return &c, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// Summary returns the checkout figures of the session's cart.
func (s *CartService) Summary(ctx context.Context, sessionID string) (domain.Summary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.SummaryOf(cart), nil
}

// AddItem adds quantity units of a catalog product to the cart. The units
// land in one atomic write, so concurrent readers never see a partial add.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerAdd {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerAdd))
	}

	product, err := s.products.Get(input.ProductID)
	if err != nil {
		return nil, err
	}

	actions := make([]domain.Action, input.Quantity)
	for i := range actions {
		actions[i] = domain.AddItem{Product: product}
	}

	cart, err := s.apply(ctx, sessionID, domain.OpAddItem, actions...)
	if err != nil {
		return nil, err
	}

	sessionLogger(ctx, s.logger, sessionID).InfoContext(ctx, "item added to cart",
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)
	return cart, nil
}

// RemoveItem drops the line for productID. Removing an absent product
// returns the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.apply(ctx, sessionID, domain.OpRemoveItem, domain.RemoveItem{ProductID: productID})
}

// UpdateQuantity sets the quantity of an existing line. Quantities of zero
// or below, and unknown products, return the cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.apply(ctx, sessionID, domain.OpSetQuantity, domain.SetQuantity{ProductID: productID, Quantity: quantity})
}

// ClearCart empties the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.apply(ctx, sessionID, domain.OpClearCart, domain.ClearCart{})
}

// clearAt empties the cart only if it is still at version. The bool is
// false when another write moved the cart since it was read.
func (s *CartService) clearAt(ctx context.Context, sessionID string, version int) (*domain.Cart, bool, error) {
	return s.commit(ctx, sessionID, domain.OpClearCart, domain.ClearCart{IfVersion: version})
}

func (s *CartService) apply(ctx context.Context, sessionID, operation string, actions ...domain.Action) (*domain.Cart, error) {
	cart, _, err := s.commit(ctx, sessionID, operation, actions...)
	return cart, err
}

// commit applies actions, records the outcome and announces real changes.
// Publishing failures are logged and never fail the operation.
func (s *CartService) commit(ctx context.Context, sessionID, operation string, actions ...domain.Action) (*domain.Cart, bool, error) {
	ctx, span := s.tracer.Start(ctx, "cart."+operation, trace.WithAttributes(
		attribute.String("cart.operation", operation),
		attribute.Int("cart.actions", len(actions)),
	))
	defer span.End()

	cart, changed, err := s.repo.Apply(ctx, sessionID, actions...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		CartOperationsTotal.WithLabelValues(operation, outcomeError).Inc()
		return nil, false, fmt.Errorf("apply %s: %w", operation, err)
	}
	span.SetAttributes(attribute.Bool("cart.changed", changed), attribute.Int("cart.item_count", cart.ItemCount))
	if !changed {
		CartOperationsTotal.WithLabelValues(operation, outcomeNoop).Inc()
		return cart, false, nil
	}
	CartOperationsTotal.WithLabelValues(operation, outcomeChanged).Inc()

	if operation == domain.OpClearCart {
		if err := s.publisher.PublishCartCleared(ctx, cart); err != nil {
			sessionLogger(ctx, s.logger, sessionID).ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("error", err.Error()),
			)
		}
		sessionLogger(ctx, s.logger, sessionID).InfoContext(ctx, "cart cleared")
		return cart, true, nil
	}

	if err := s.publisher.PublishCartUpdated(ctx, operation, cart); err != nil {
		sessionLogger(ctx, s.logger, sessionID).ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}
	if operation != domain.OpAddItem {
		sessionLogger(ctx, s.logger, sessionID).InfoContext(ctx, "cart updated",
			slog.String("operation", operation),
			slog.Int("item_count", cart.ItemCount),
		)
	}
	return cart, true, nil
}
