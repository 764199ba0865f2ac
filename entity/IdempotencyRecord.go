package entity

import (
	"gorm.io/gorm"
)

// IdempotencyRecord = fallback store ฝั่ง DB เมื่อไม่ได้ต่อ redis
type IdempotencyRecord struct {
	gorm.Model
	TenantID uint   `gorm:"uniqueIndex:idx_idem_scope_key;not null" json:"tenantId"`
	Scope    string `gorm:"size:32;uniqueIndex:idx_idem_scope_key;not null" json:"scope"`
	Key      string `gorm:"size:128;uniqueIndex:idx_idem_scope_key;not null" json:"key"`
	Value    string `gorm:"size:128" json:"value"`
}
