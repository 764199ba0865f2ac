package services

import (
	"backend/entity"
	"backend/pkg/apperr"
	"backend/utils"
)

// PaymentProvider = ชุดความสามารถต่อ provider หนึ่งเจ้า
// mock เป็น reference implementation; เจ้าจริงเสียบเพิ่มได้โดยไม่แตะ engine
type PaymentProvider interface {
	CreateIntent(in *entity.PaymentIntent) error
	Capture(in *entity.PaymentIntent, txnID string) error
	Refund(in *entity.PaymentIntent, amount int64) error
}

type MockProvider struct{}

func (MockProvider) CreateIntent(in *entity.PaymentIntent) error {
	in.Status = entity.IntentRequiresPaymentMethod
	in.ClientSecret = utils.MockClientSecret(in.ID)
	return nil
}

func (MockProvider) Capture(in *entity.PaymentIntent, txnID string) error {
	if txnID == "" {
		txnID = utils.GenerateTransactionID()
	}
	in.Status = entity.IntentSucceeded
	in.TransactionID = txnID
	return nil
}

func (MockProvider) Refund(in *entity.PaymentIntent, amount int64) error {
	return nil // mock คืนเงินสำเร็จเสมอ
}

type ProviderRegistry struct {
	providers map[string]PaymentProvider
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: map[string]PaymentProvider{
		entity.ProviderMock: MockProvider{},
	}}
}

// Resolve: stripe/razorpay รู้จักชื่อแต่ยังไม่ implement → 501 ไม่ใช่ crash
func (r *ProviderRegistry) Resolve(name string) (PaymentProvider, error) {
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	switch name {
	case entity.ProviderStripe, entity.ProviderRazorpay:
		return nil, apperr.ProviderNotImplemented(name)
	}
	return nil, apperr.Validation("unknown_provider", "unknown provider "+name)
}
