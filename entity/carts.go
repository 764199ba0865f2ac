package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderModeDineIn   = "dine_in"
	OrderModeTakeaway = "takeaway"
)

// Cart = ตะกร้าที่ยังไม่ confirm; ถูกลบทิ้งตอนแปลงเป็น order (one-way)
type Cart struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID uint   `gorm:"index;not null" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	OrderMode string `gorm:"size:16;not null" json:"orderMode"`
	TableID   *uint  `json:"tableId,omitempty"` // บังคับเมื่อ dine_in

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
