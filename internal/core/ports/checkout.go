package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// CartRepository exposes the cart and catalog collaborators to checkout.
type CartRepository interface {
	// Items lists the customer's cart rows for products of restaurantID,
	// priced at the current catalog price.
	Items(ctx context.Context, customerID, restaurantID kernel.ID) ([]order.CartItem, error)

	Clear(ctx context.Context, customerID, restaurantID kernel.ID) error
}

// PartyDirectory resolves user identities supplied by the identity collaborator.
type PartyDirectory interface {
	HasRole(ctx context.Context, id kernel.ID, role kernel.Role) (bool, error)
}
