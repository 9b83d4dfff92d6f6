package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/affirmed-honey/dulin2/internal/domain"
	"github.com/affirmed-honey/dulin2/internal/repository"
	apperrors "github.com/affirmed-honey/dulin2/pkg/errors"
)

// CartService implements cart management. Cart prices are display hints
// captured at add time; checkout always re-resolves prices from the catalog.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// CreateCart mints a new empty cart with a server-assigned id. Saving it
// immediately starts the expiry clock even if nothing is ever added.
func (s *CartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	cart := domain.Cart{ID: uuid.NewString()}
	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// GetCart loads a cart, returning an empty one for ids never seen.
func (s *CartService) GetCart(ctx context.Context, id string) (domain.Cart, error) {
	return s.carts.Get(ctx, id)
}

// AddItem adds a product to the cart, merging into an existing line. The
// product must exist; its current name, image and price are captured on the
// line for display.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID int64, qty int) (domain.Cart, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart = cart.Add(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
		Quantity:  qty,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// SetQuantity updates a line's quantity. Zero or below removes the line.
func (s *CartService) SetQuantity(ctx context.Context, cartID string, productID int64, qty int) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	if qty >= 1 {
		found := false
		for _, item := range cart.Items {
			if item.ProductID == productID {
				found = true
				break
			}
		}
		if !found {
			return domain.Cart{}, apperrors.NotFound("cart item", "")
		}
	}

	cart = cart.SetQuantity(productID, qty)

	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID int64) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart = cart.Remove(productID)

	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// ClearCart deletes the whole cart, typically after checkout.
func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	return s.carts.Delete(ctx, cartID)
}
