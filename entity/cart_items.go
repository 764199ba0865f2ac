package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID string `gorm:"size:36;index;not null" json:"cartId"`
	Cart   Cart   `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Qty       int    `gorm:"not null" json:"qty"`
	UnitPrice int64  `gorm:"not null" json:"unitPrice"` // snapshot ตอน add ไม่อิงราคาเมนูปัจจุบัน
	Total     int64  `gorm:"not null" json:"total"`
	Note      string `gorm:"size:500" json:"note"`
}
