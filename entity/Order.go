package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order = บันทึกการเงิน/การครัวแบบ immutable; ยอดเงินคำนวณครั้งเดียวตอนสร้าง
type Order struct {
	gorm.Model
	TenantID uint   `gorm:"index;not null" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	TableID   *uint  `json:"tableId,omitempty"`
	OrderMode string `gorm:"size:16;not null" json:"orderMode"`

	OrderNumber string `gorm:"size:64;uniqueIndex;not null" json:"orderNumber"`
	Status      string `gorm:"size:16;not null;default:'new'" json:"status"`

	Subtotal  int64 `gorm:"not null" json:"subtotal"`
	TaxAmount int64 `gorm:"not null" json:"taxAmount"`
	Total     int64 `gorm:"not null" json:"total"` // = Subtotal + TaxAmount เสมอ

	SpecialInstructions string `gorm:"size:1000" json:"specialInstructions"`

	ReadyAt  *time.Time `json:"readyAt,omitempty"`
	ServedAt *time.Time `json:"servedAt,omitempty"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`

	// optimistic concurrency: ทุก status update ต้อง match version เดิม
	Version uint `gorm:"not null;default:0" json:"version"`

	OrderItems   []OrderItem        `json:"-"`
	StatusEvents []OrderStatusEvent `json:"-"`
}
