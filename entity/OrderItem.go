package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Qty       int    `gorm:"not null" json:"qty"`
	UnitPrice int64  `gorm:"not null" json:"unitPrice"` // copy มาจาก cart ไม่คำนวณใหม่
	Total     int64  `gorm:"not null" json:"total"`
	Note      string `gorm:"size:500" json:"note"`
}
