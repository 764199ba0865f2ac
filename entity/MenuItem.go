package entity

import (
	"gorm.io/gorm"
)

// MenuItem เก็บเท่าที่ engine ต้องใช้ (id, price, availability)
// ส่วน CRUD ของเมนูเต็ม ๆ เป็นของระบบอื่น
type MenuItem struct {
	gorm.Model
	TenantID uint   `gorm:"index;not null" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Name      string `gorm:"size:255;not null" json:"name"`
	Price     int64  `gorm:"not null" json:"price"` // สตางค์/cents
	Available bool   `gorm:"not null;default:true" json:"available"`
}
