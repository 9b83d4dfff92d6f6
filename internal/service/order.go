package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/affirmed-honey/dulin2/internal/domain"
	"github.com/affirmed-honey/dulin2/internal/repository"
	apperrors "github.com/affirmed-honey/dulin2/pkg/errors"
)

// Machine-readable rejection codes for order placement. Clients branch on
// these, so they are part of the API contract.
const (
	CodeEmptyCart               = "EMPTY_CART"
	CodeInvalidProductReference = "INVALID_PRODUCT_REFERENCE"
	CodeProductsNotFound        = "PRODUCTS_NOT_FOUND"
)

// MyOrdersLimit caps how many orders the history endpoint returns.
const MyOrdersLimit = 20

// PricingPolicy holds the storefront's money rules. Rates are in basis
// points and amounts in kobo so every computation stays in integers.
type PricingPolicy struct {
	TaxRateBP             int64
	FreeShippingThreshold int64
	FlatShippingFee       int64
}

// Tax returns the tax on a subtotal, rounded half up.
func (p PricingPolicy) Tax(subtotal int64) int64 {
	return (subtotal*p.TaxRateBP + 5000) / 10000
}

// Shipping returns the shipping fee for a subtotal. Shipping is free only
// when the subtotal strictly exceeds the threshold.
func (p PricingPolicy) Shipping(subtotal int64) int64 {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingFee
}

// EventPublisher publishes storefront domain events. Satisfied by
// event.Producer.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishUserRegistered(ctx context.Context, user *domain.User) error
}

// OrderService implements order placement and retrieval.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	events   EventPublisher
	policy   PricingPolicy
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	events EventPublisher,
	policy PricingPolicy,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		events:   events,
		policy:   policy,
		logger:   logger,
	}
}

// PlaceOrderItemInput is one requested line. Quantity below one is
// normalized to one rather than rejected.
type PlaceOrderItemInput struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderInput holds the parameters for placing an order.
type PlaceOrderInput struct {
	// UserID is the authenticated user, when there is one.
	UserID *int64
	// Email optionally links the order to a customer account, creating a
	// login-less one on first sight.
	Email string
	Name  string
	Items []PlaceOrderItemInput
}

// Receipt is the customer-facing summary of a placed order. All amounts are
// whole naira.
type Receipt struct {
	OrderID   int64         `json:"order_id"`
	Items     []ReceiptLine `json:"items"`
	Subtotal  int64         `json:"subtotal"`
	Shipping  int64         `json:"shipping"`
	Tax       int64         `json:"tax"`
	Total     int64         `json:"total"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// ReceiptLine is one line on a receipt, priced in whole naira.
type ReceiptLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// NewReceipt builds the naira-denominated receipt for an order.
func NewReceipt(o *domain.Order) Receipt {
	lines := make([]ReceiptLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = ReceiptLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     domain.ToNaira(item.PriceAtPurchase),
			Quantity:  item.Quantity,
			LineTotal: domain.ToNaira(item.LineTotal()),
		}
	}
	return Receipt{
		OrderID:   o.ID,
		Items:     lines,
		Subtotal:  domain.ToNaira(o.Subtotal),
		Shipping:  domain.ToNaira(o.Shipping),
		Tax:       domain.ToNaira(o.Tax),
		Total:     domain.ToNaira(o.Total),
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

// PlaceOrder validates the requested lines against the catalog, computes the
// totals, persists the order and returns it with its receipt.
//
// Validation happens in a fixed sequence: an empty cart is rejected first,
// then malformed product references fail the whole batch, then all ids are
// resolved against the catalog in one lookup and any misses fail the batch.
// Quantities are normalized afterwards, never rejected.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, *Receipt, error) {
	if len(input.Items) == 0 {
		return nil, nil, apperrors.BadRequest(CodeEmptyCart, "cart is empty")
	}

	var invalid []string
	for _, item := range input.Items {
		if item.ProductID < 1 {
			invalid = append(invalid, strconv.FormatInt(item.ProductID, 10))
		}
	}
	if len(invalid) > 0 {
		return nil, nil, apperrors.BadRequest(CodeInvalidProductReference,
			fmt.Sprintf("invalid product reference: %s", strings.Join(invalid, ", ")))
	}

	// Resolve every referenced product in one batch, deduplicated.
	ids := make([]int64, 0, len(input.Items))
	seen := make(map[int64]bool, len(input.Items))
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve products: %w", err)
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, strconv.FormatInt(id, 10))
		}
	}
	if len(missing) > 0 {
		return nil, nil, apperrors.BadRequest(CodeProductsNotFound,
			fmt.Sprintf("products not found: %s", strings.Join(missing, ", ")))
	}

	// Snapshot prices from the catalog. Whatever the client sent for price
	// is ignored.
	var subtotal int64
	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		p := byID[item.ProductID]
		items[i] = domain.OrderItem{
			ProductID:       p.ID,
			Name:            p.Name,
			Image:           p.Image,
			PriceAtPurchase: p.Price,
			Quantity:        qty,
		}
		subtotal += items[i].LineTotal()
	}

	shipping := s.policy.Shipping(subtotal)
	tax := s.policy.Tax(subtotal)

	order := &domain.Order{
		UserID:   input.UserID,
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
		Status:   domain.OrderStatusPending,
	}

	// Link the order to a customer account. The authenticated user wins;
	// otherwise an email creates or reuses a login-less account. The upsert
	// is idempotent, so a failure between it and the order insert leaves
	// nothing that a retry will not reuse.
	if order.UserID == nil && input.Email != "" {
		user, err := s.users.UpsertByEmail(ctx, input.Email, input.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("link customer: %w", err)
		}
		order.UserID = &user.ID
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.created event",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("total", order.Total),
		slog.Int("items", len(order.Items)),
	)

	receipt := NewReceipt(order)
	return order, &receipt, nil
}

// GetOrder retrieves an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListMyOrders returns the user's most recent orders, newest first.
func (s *OrderService) ListMyOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, MyOrdersLimit)
}
