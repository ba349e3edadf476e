package models

import (
	"time"

	"github.com/google/uuid"
)

// CartCodeLength is the fixed length of client-facing cart codes.
const CartCodeLength = 11

// Cart is an anonymous cart addressed by its short opaque code. It is
// created on first item add and only ever mutated through its items.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartCode  string     `gorm:"column:cart_code;type:char(11);not null;uniqueIndex"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
