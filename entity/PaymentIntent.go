package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProviderMock     = "mock"
	ProviderStripe   = "stripe"
	ProviderRazorpay = "razorpay"
)

// intent statuses
const (
	IntentRequiresPaymentMethod = "requires_payment_method"
	IntentRequiresConfirmation  = "requires_confirmation"
	IntentProcessing            = "processing"
	IntentSucceeded             = "succeeded"
	IntentFailed                = "failed"
	IntentCanceled              = "canceled"
)

// PaymentIntent = ความพยายามเก็บเงินหนึ่งครั้ง ผูกกับ order หรือ cart อย่างใดอย่างหนึ่ง
// Amount ล็อกตอนสร้าง เปลี่ยนไม่ได้
type PaymentIntent struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID uint   `gorm:"index;not null" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	OrderID *uint   `gorm:"index" json:"orderId,omitempty"`
	CartID  *string `gorm:"size:36;index" json:"cartId,omitempty"`

	Provider string `gorm:"size:16;not null" json:"provider"`
	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"size:8;not null" json:"currency"`
	Status   string `gorm:"size:32;not null" json:"status"`

	ClientSecret  string `gorm:"size:128" json:"clientSecret,omitempty"`
	TransactionID string `gorm:"size:64" json:"transactionId,omitempty"`

	Events []PaymentEvent `gorm:"foreignKey:IntentID" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
