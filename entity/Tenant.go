package entity

import (
	"gorm.io/gorm"
)

type Tenant struct {
	gorm.Model
	Code string `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:255;not null" json:"name"`

	// ภาษีคิดเป็น basis points (1000 = 10%) ตั้งได้ต่อ tenant
	TaxRateBps int    `gorm:"not null;default:1000" json:"taxRateBps"`
	Currency   string `gorm:"size:8;not null;default:'usd'" json:"currency"`

	Tables    []DiningTable `json:"-"`
	MenuItems []MenuItem    `json:"-"`
}
