package partyrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// UserDTO maps the identity collaborator's user table.
type UserDTO struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Role string `gorm:"type:varchar(20);not null;index"`
}

func (UserDTO) TableName() string {
	return "users"
}

// GormPartyDirectory resolves user ids and roles.
type GormPartyDirectory struct {
	db *gorm.DB
}

func NewGormPartyDirectory(db *gorm.DB) *GormPartyDirectory {
	return &GormPartyDirectory{db: db}
}

func (d *GormPartyDirectory) HasRole(ctx context.Context, id kernel.ID, role kernel.Role) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ? AND role = ?", id.Int64(), role.String()).
		Count(&count).Error
	return count > 0, err
}
