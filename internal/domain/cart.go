package domain

// Cart is a value type holding a shopper's pending selections. Prices on
// cart lines are display hints only; checkout re-resolves every price from
// the catalog.
type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`
}

// CartItem is one line in a cart.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Image     string `json:"image,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Add returns a copy of the cart with qty of the product added, merging
// into an existing line when one exists. Quantities below one are treated
// as one.
func (c Cart) Add(item CartItem) Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	out := c.clone()
	for i, existing := range out.Items {
		if existing.ProductID == item.ProductID {
			out.Items[i].Quantity += item.Quantity
			return out
		}
	}
	out.Items = append(out.Items, item)
	return out
}

// SetQuantity returns a copy of the cart with the product's quantity set.
// A quantity below one removes the line.
func (c Cart) SetQuantity(productID int64, qty int) Cart {
	if qty < 1 {
		return c.Remove(productID)
	}
	out := c.clone()
	for i, existing := range out.Items {
		if existing.ProductID == productID {
			out.Items[i].Quantity = qty
			return out
		}
	}
	return out
}

// Remove returns a copy of the cart without the product's line.
func (c Cart) Remove(productID int64) Cart {
	out := Cart{ID: c.ID, Items: make([]CartItem, 0, len(c.Items))}
	for _, existing := range c.Items {
		if existing.ProductID != productID {
			out.Items = append(out.Items, existing)
		}
	}
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) clone() Cart {
	out := Cart{ID: c.ID, Items: make([]CartItem, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}
