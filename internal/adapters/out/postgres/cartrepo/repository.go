package cartrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCartRepository reads priced cart rows and clears them at checkout.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Items(ctx context.Context, customerID, restaurantID kernel.ID) ([]order.CartItem, error) {
	var rows []struct {
		ProductID int64
		Quantity  int
		Price     decimal.Decimal
	}

	err := r.db.WithContext(ctx).
		Table("cart_items AS c").
		Select("c.product_id, c.quantity, p.price").
		Joins("JOIN products AS p ON p.id = c.product_id").
		Where("c.customer_id = ? AND p.restaurant_id = ?", customerID.Int64(), restaurantID.Int64()).
		Order("c.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]order.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, order.CartItem{
			ProductID: kernel.ID(row.ProductID),
			Quantity:  row.Quantity,
			UnitPrice: row.Price,
		})
	}
	return items, nil
}

func (r *GormCartRepository) Clear(ctx context.Context, customerID, restaurantID kernel.ID) error {
	products := r.db.Model(&ProductDTO{}).Select("id").Where("restaurant_id = ?", restaurantID.Int64())

	return r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id IN (?)", customerID.Int64(), products).
		Delete(&CartItemDTO{}).Error
}
