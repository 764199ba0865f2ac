package entity

import (
	"time"
)

// OrderStatusEvent = append-only ledger ของการเปลี่ยนสถานะ ห้ามแก้/ลบ
type OrderStatusEvent struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	OrderID  uint  `gorm:"index;not null" json:"orderId"`
	Order    Order `json:"-"`
	TenantID uint  `gorm:"index;not null" json:"tenantId"`

	FromStatus *string `gorm:"size:16" json:"fromStatus"` // nil สำหรับ event แรก
	ToStatus   string  `gorm:"size:16;not null" json:"toStatus"`
	Note       string  `gorm:"size:500" json:"note"`
	ActorID    uint    `json:"actorId"`

	CreatedAt time.Time `json:"createdAt"`
}
