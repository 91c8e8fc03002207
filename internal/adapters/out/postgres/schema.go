package postgres

import (
	"fmt"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/partyrepo"
	"marketplace/internal/adapters/out/postgres/riderrepo"

	"gorm.io/gorm"
)

// Tables lists every table the service migrates, in dependency order.
func Tables() []string {
	return []string{
		"users", "products", "cart_items",
		"orders", "order_lines", "order_status_changes",
		"riders", "rider_earnings",
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&partyrepo.UserDTO{},
		&cartrepo.ProductDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.StatusChangeDTO{},
		&riderrepo.RiderDTO{},
		&riderrepo.EarningDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
