package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jovalentine/Digi-market/internal/domain"
	"github.com/Jovalentine/Digi-market/pkg/breaker"
	pkgkafka "github.com/Jovalentine/Digi-market/pkg/kafka"
	"github.com/Jovalentine/Digi-market/pkg/logger"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
	TopicOrderPlaced = "storefront.order.placed"
)

// Aggregate types.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifies events emitted by this service.
const Source = "storefront"

// CartItemData is the line payload within cart and order events.
type CartItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Operation string         `json:"operation"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     string         `json:"total"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID    string         `json:"order_id"`
	SessionID  string         `json:"session_id"`
	Email      string         `json:"email"`
	Items      []CartItemData `json:"items"`
	Subtotal   string         `json:"subtotal"`
	Shipping   string         `json:"shipping"`
	Tax        string         `json:"tax"`
	GrandTotal string         `json:"grand_total"`
	PlacedAt   time.Time      `json:"placed_at"`
}

// Producer publishes storefront events. Every publish goes through a
// circuit breaker, so while the broker is down calls fail fast.
type Producer struct {
	publisher pkgkafka.Publisher
	breaker   *breaker.Breaker
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher pkgkafka.Publisher, br *breaker.Breaker, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		breaker:   br,
		logger:    logger,
	}
}

func itemData(items []domain.LineItem) []CartItemData {
	out := make([]CartItemData, len(items))
	for i, item := range items {
		out[i] = CartItemData{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price.StringFixed(2),
			Quantity:  item.Quantity,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, operation string, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Operation: operation,
		Items:     itemData(cart.Items),
		ItemCount: cart.ItemCount,
		Total:     cart.Total.StringFixed(2),
	}
	if err := p.publish(ctx, TopicCartUpdated, AggregateTypeCart, cart.SessionID, cart.Version, data); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, cart *domain.Cart) error {
	data := CartClearedData{SessionID: cart.SessionID}
	if err := p.publish(ctx, TopicCartCleared, AggregateTypeCart, cart.SessionID, cart.Version, data); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}
	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		OrderID:    order.ID,
		SessionID:  order.SessionID,
		Email:      order.Customer.Email,
		Items:      itemData(order.Items),
		Subtotal:   order.Summary.Subtotal.StringFixed(2),
		Shipping:   order.Summary.Shipping.StringFixed(2),
		Tax:        order.Summary.Tax.StringFixed(2),
		GrandTotal: order.Summary.GrandTotal.StringFixed(2),
		PlacedAt:   order.PlacedAt,
	}
	if err := p.publish(ctx, TopicOrderPlaced, AggregateTypeOrder, order.ID, 1, data); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateType, aggregateID string, version int, data any) error {
	opts := []pkgkafka.EventOption{pkgkafka.WithVersion(version)}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		opts = append(opts, pkgkafka.WithCorrelationID(cid))
	}

	evt, err := pkgkafka.NewEvent(topic, aggregateType, aggregateID, Source, data, opts...)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if err := p.breaker.Do(ctx, func(ctx context.Context) error {
		return p.publisher.Publish(ctx, topic, evt)
	}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}
