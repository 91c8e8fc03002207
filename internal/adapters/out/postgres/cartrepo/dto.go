package cartrepo

import "github.com/shopspring/decimal"

// ProductDTO maps the catalog table. Only the columns checkout reads are mapped.
type ProductDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	RestaurantID int64           `gorm:"not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// CartItemDTO maps the cart table owned by the cart collaborator.
type CartItemDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	CustomerID int64 `gorm:"not null;index"`
	ProductID  int64 `gorm:"not null;index"`
	Quantity   int   `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}
