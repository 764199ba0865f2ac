package entity

import (
	"gorm.io/gorm"
)

type PaymentRefund struct {
	gorm.Model
	TenantID uint   `gorm:"index;not null" json:"tenantId"`
	IntentID string `gorm:"size:36;index;not null" json:"intentId"`

	Amount int64  `gorm:"not null" json:"amount"`
	Reason string `gorm:"size:500" json:"reason"`
	Status string `gorm:"size:16;not null;default:'completed'" json:"status"`
}
