package entity

import (
	"gorm.io/gorm"
)

type DiningTable struct {
	gorm.Model
	TenantID uint   `gorm:"index;not null" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Label string `gorm:"size:32;not null" json:"label"`
}
