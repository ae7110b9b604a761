package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jovalentine/Digi-market/internal/domain"
	"github.com/Jovalentine/Digi-market/pkg/breaker"
	pkgkafka "github.com/Jovalentine/Digi-market/pkg/kafka"
	"github.com/Jovalentine/Digi-market/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func newTestProducer(t *testing.T, pub pkgkafka.Publisher) *Producer {
	t.Helper()
	cfg := breaker.DefaultConfig("events-" + t.Name())
	cfg.MinRequests = 2
	return NewProducer(pub, breaker.New(cfg, logger.Discard()), logger.Discard())
}

func sampleCart() *domain.Cart {
	c, _ := domain.ReduceAll(domain.NewCart("sess-1"),
		domain.AddItem{Product: domain.Product{ID: "1", Name: "Premium UI Kit", Price: decimal.NewFromInt(49)}},
		domain.AddItem{Product: domain.Product{ID: "1", Name: "Premium UI Kit", Price: decimal.NewFromInt(49)}},
	)
	return &c
}

func TestProducer_PublishCartUpdated(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(t, pub)

	var captured *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicCartUpdated, mock.AnythingOfType("*kafka.Event")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	require.NoError(t, p.PublishCartUpdated(ctx, domain.OpAddItem, sampleCart()))

	pub.AssertExpectations(t)
	require.NotNil(t, captured)
	assert.Equal(t, TopicCartUpdated, captured.EventType)
	assert.Equal(t, AggregateTypeCart, captured.AggregateType)
	assert.Equal(t, "sess-1", captured.AggregateID)
	assert.Equal(t, 2, captured.Version)
	assert.Equal(t, "corr-1", captured.CorrelationID)
	assert.Equal(t, Source, captured.Source)

	var data CartUpdatedData
	require.NoError(t, captured.DecodeData(&data))
	assert.Equal(t, "add_item", data.Operation)
	assert.Equal(t, 2, data.ItemCount)
	assert.Equal(t, "98.00", data.Total)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "49.00", data.Items[0].Price)
}

func TestProducer_PublishCartCleared(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(t, pub)
	pub.On("Publish", mock.Anything, TopicCartCleared, mock.Anything).Return(nil)

	require.NoError(t, p.PublishCartCleared(context.Background(), sampleCart()))
	pub.AssertExpectations(t)
}

func TestProducer_PublishOrderPlaced(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(t, pub)

	var captured *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicOrderPlaced, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	cart := sampleCart()
	order := &domain.Order{
		ID:        "ord-1",
		SessionID: cart.SessionID,
		Items:     cart.Items,
		Summary:   domain.SummaryOf(cart),
		Customer:  domain.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		CardLast4: "4242",
		PlacedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), order))

	var data OrderPlacedData
	require.NoError(t, captured.DecodeData(&data))
	assert.Equal(t, "ord-1", captured.AggregateID)
	assert.Equal(t, AggregateTypeOrder, captured.AggregateType)
	assert.Equal(t, "ada@example.com", data.Email)
	assert.Equal(t, "98.00", data.Subtotal)
	assert.Equal(t, "9.99", data.Shipping)
	assert.Equal(t, "9.80", data.Tax)
	assert.Equal(t, "117.79", data.GrandTotal)
}

func TestProducer_PublishError(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(t, pub)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := p.PublishCartUpdated(context.Background(), domain.OpAddItem, sampleCart())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish cart.updated event")
	assert.Contains(t, err.Error(), "broker down")
}

func TestProducer_BreakerOpensAfterFailures(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(t, pub)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Times(2)

	for i := 0; i < 2; i++ {
		require.Error(t, p.PublishCartCleared(context.Background(), sampleCart()))
	}

	err := p.PublishCartCleared(context.Background(), sampleCart())
	assert.ErrorIs(t, err, breaker.ErrOpen)
	pub.AssertNumberOfCalls(t, "Publish", 2)
}
