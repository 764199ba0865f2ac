package entity

import (
	"gorm.io/gorm"
)

// TenantPaymentConfig เปิด/ปิดความสามารถรับเงินของ tenant
// แก้โดย operator เท่านั้น ไม่อยู่ใน state machine
type TenantPaymentConfig struct {
	gorm.Model
	TenantID uint   `gorm:"uniqueIndex;not null" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Provider       string `gorm:"size:16;not null;default:'mock'" json:"provider"`
	LiveMode       bool   `gorm:"not null;default:false" json:"liveMode"`
	Currency       string `gorm:"size:8;not null;default:'usd'" json:"currency"`
	EnabledMethods string `gorm:"size:255" json:"enabledMethods"` // csv เช่น "card,cash"
	PublishableKey string `gorm:"size:255" json:"publishableKey,omitempty"`
	SecretMasked   string `gorm:"size:64" json:"secretMasked,omitempty"` // เก็บเฉพาะ masked ไม่เก็บ secret จริง
	Enabled        bool   `gorm:"not null;default:true" json:"enabled"`
}
