package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/affirmed-honey/dulin2/internal/domain"
	pkgkafka "github.com/affirmed-honey/dulin2/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicOrderCreated   = "dulin.order.created"
	TopicUserRegistered = "dulin.user.registered"
)

const (
	AggregateTypeOrder = "order"
	AggregateTypeUser  = "user"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "dulin-storefront"

// OrderCreatedData is the payload for an order.created event. Amounts are in
// kobo, matching the order record.
type OrderCreatedData struct {
	ID       int64           `json:"id"`
	UserID   *int64          `json:"user_id,omitempty"`
	Status   string          `json:"status"`
	Items    []OrderItemData `json:"items"`
	Subtotal int64           `json:"subtotal"`
	Shipping int64           `json:"shipping"`
	Tax      int64           `json:"tax"`
	Total    int64           `json:"total"`
}

// OrderItemData is the event payload for one order line.
type OrderItemData struct {
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
	Quantity        int    `json:"quantity"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event with the full order
// snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemData{
			ProductID:       item.ProductID,
			Name:            item.Name,
			PriceAtPurchase: item.PriceAtPurchase,
			Quantity:        item.Quantity,
		}
	}

	data := OrderCreatedData{
		ID:       order.ID,
		UserID:   order.UserID,
		Status:   order.Status,
		Items:    items,
		Subtotal: order.Subtotal,
		Shipping: order.Shipping,
		Tax:      order.Tax,
		Total:    order.Total,
	}

	aggregateID := strconv.FormatInt(order.ID, 10)
	event, err := pkgkafka.NewEvent(TopicOrderCreated, aggregateID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.Int64("order_id", order.ID),
	)

	return nil
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}

	aggregateID := strconv.FormatInt(user.ID, 10)
	event, err := pkgkafka.NewEvent(TopicUserRegistered, aggregateID, AggregateTypeUser, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.Int64("user_id", user.ID),
	)

	return nil
}
