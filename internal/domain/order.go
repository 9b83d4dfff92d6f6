package domain

import "time"

// OrderStatusPending is the status every new order is created with.
const OrderStatusPending = "pending"

// KoboPerNaira converts between minor and major currency units.
const KoboPerNaira = 100

// Order is an immutable purchase record. All monetary fields are in kobo
// and are derived server-side; total = subtotal + shipping + tax always.
type Order struct {
	ID        int64       `json:"id"`
	UserID    *int64      `json:"user_id,omitempty"`
	Items     []OrderItem `json:"items"`
	Subtotal  int64       `json:"subtotal"`
	Shipping  int64       `json:"shipping"`
	Tax       int64       `json:"tax"`
	Total     int64       `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is a point-in-time snapshot of a product at purchase. It is
// deliberately decoupled from the live Product record so later catalog
// changes never alter order history.
type OrderItem struct {
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	Image           string `json:"image"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
	Quantity        int    `json:"quantity"`
}

// LineTotal returns the kobo total for this line.
func (i OrderItem) LineTotal() int64 {
	return i.PriceAtPurchase * int64(i.Quantity)
}

// ToNaira converts a kobo amount to whole naira by integer division. The
// remainder is dropped; all rounding has already happened upstream in the
// tax computation.
func ToNaira(kobo int64) int64 {
	return kobo / KoboPerNaira
}
