package entity

import (
	"gorm.io/gorm"
)

// PaymentSplit = หนึ่งส่วนของบิลที่ถูกแบ่งจ่าย; แถวในกลุ่มเดียวกันแชร์ SplitGroupID
type PaymentSplit struct {
	gorm.Model
	TenantID     uint   `gorm:"index;not null" json:"tenantId"`
	SplitGroupID string `gorm:"size:36;index;not null" json:"splitGroupId"`

	Amount    int64  `gorm:"not null" json:"amount"`
	PayerType string `gorm:"size:32;not null" json:"payerType"`
	Method    string `gorm:"size:32;not null" json:"method"`
	Note      string `gorm:"size:500" json:"note"`
}
