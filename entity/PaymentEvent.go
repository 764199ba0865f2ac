package entity

import (
	"time"
)

// PaymentEvent = append-only; มาจาก webhook หรือ client emit ใช้ขับ status + audit
type PaymentEvent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	IntentID string `gorm:"size:36;index;not null" json:"intentId"`
	TenantID uint   `gorm:"index;not null" json:"tenantId"`

	EventType string `gorm:"size:64;not null" json:"eventType"`
	Payload   string `gorm:"type:text" json:"payload,omitempty"` // raw JSON ตามที่รับมา

	CreatedAt time.Time `json:"createdAt"`
}
