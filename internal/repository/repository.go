package repository

import (
	"context"

	"github.com/affirmed-honey/dulin2/internal/domain"
)

// ProductFilter defines filter criteria for listing catalog products.
type ProductFilter struct {
	// Query matches name, category and description case-insensitively.
	Query    string
	Category string
	// Sort is one of "price-asc", "price-desc" or empty for newest first.
	Sort string
}

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	// List returns products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// GetByID retrieves a single product by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetByIDs retrieves all products whose ids appear in the given set.
	// Missing ids are simply absent from the result; callers decide whether
	// that is an error.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)

	// Create inserts a new product. Used by seeding.
	Create(ctx context.Context, p *domain.Product) error
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create inserts a new order with its item snapshots atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its identifier, including items.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByUser returns the user's most recent orders, newest first,
	// capped at limit.
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// UpsertByEmail creates the user if the email is unseen, otherwise
	// refreshes the name when one is supplied. The stored password hash is
	// never touched by an upsert.
	UpsertByEmail(ctx context.Context, email, name string) (*domain.User, error)

	// Create inserts a new credentialed user.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// UpdatePassword replaces the user's password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// UpdateEmail changes the user's email address.
	UpdateEmail(ctx context.Context, id int64, email string) error

	// SetCredentials attaches a password hash and optional name to an
	// existing account, used when a guest account signs up properly.
	SetCredentials(ctx context.Context, id int64, name, passwordHash string) error
}

// CartRepository defines the interface for cart persistence.
type CartRepository interface {
	// Get loads a cart by id. A missing cart returns an empty cart, not an
	// error.
	Get(ctx context.Context, id string) (domain.Cart, error)

	// Save stores the cart, refreshing its expiry.
	Save(ctx context.Context, cart domain.Cart) error

	// Delete removes the cart.
	Delete(ctx context.Context, id string) error
}
