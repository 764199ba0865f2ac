package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/logger"
	"backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// event type → intent status; นอกเหนือจากนี้เก็บเป็นประวัติเฉย ๆ
var eventStatusMap = map[string]string{
	"payment_processing": entity.IntentProcessing,
	"payment_succeeded":  entity.IntentSucceeded,
	"payment_failed":     entity.IntentFailed,
}

type PaymentService struct {
	DB        *gorm.DB
	Repo      *repository.PaymentRepository
	Providers *ProviderRegistry
	Idem      repository.IdempotencyStore
	Log       *logger.Logger
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository,
	providers *ProviderRegistry, idem repository.IdempotencyStore, log *logger.Logger) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Providers: providers, Idem: idem, Log: log}
}

// ----- DTOs -----

type CreateIntentIn struct {
	Amount   int64   `json:"amount" binding:"required,min=1"`
	Currency string  `json:"currency"`
	Provider string  `json:"provider"`
	OrderID  *uint   `json:"orderId"`
	CartID   *string `json:"cartId"`
}

type RefundIn struct {
	IntentID string `json:"paymentId" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,min=1"`
	Reason   string `json:"reason"`
}

type SplitEntryIn struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	PayerType string `json:"payerType" binding:"required"`
	Method    string `json:"method" binding:"required"`
	Note      string `json:"note"`
}

type SplitIn struct {
	Total    int64          `json:"total" binding:"required,min=1"`
	Currency string         `json:"currency"`
	Splits   []SplitEntryIn `json:"splits" binding:"required,min=1,dive"`
}

type SplitGroupOut struct {
	SplitGroupID string                `json:"splitGroupId"`
	Total        int64                 `json:"total"`
	Currency     string                `json:"currency"`
	Splits       []entity.PaymentSplit `json:"splits"`
	Persisted    bool                  `json:"persisted"` // best-effort: false = validate ผ่านแต่ยังไม่ durable
}

type EmitEventOut struct {
	Event         *entity.PaymentEvent `json:"event"`
	AppliedStatus string               `json:"appliedStatus,omitempty"`
}

// ----- Operations -----

// CreateIntent: durable write — ยืนยัน persist ไม่ได้ห้ามตอบสำเร็จ
func (s *PaymentService) CreateIntent(tenantID uint, in *CreateIntentIn, idemKey string) (*entity.PaymentIntent, error) {
	cfg, err := s.Repo.GetTenantConfig(tenantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("payment_not_configured", "tenant has no payment config")
	}
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	if !cfg.Enabled {
		return nil, apperr.Validation("payment_not_configured", "payments disabled for tenant")
	}

	provider := in.Provider
	if provider == "" {
		provider = cfg.Provider
	}
	p, err := s.Providers.Resolve(provider)
	if err != nil {
		return nil, err
	}

	if in.OrderID != nil && in.CartID != nil {
		return nil, apperr.Validation("invalid_intent_scope", "intent is scoped to an order or a cart, not both")
	}

	if idemKey != "" {
		if id, ok, _ := s.Idem.Recall(context.Background(), tenantID, "intent_create", idemKey); ok {
			if existing, err := s.Repo.GetIntent(tenantID, id); err == nil {
				return existing, nil
			}
		}
	}

	currency := in.Currency
	if currency == "" {
		currency = cfg.Currency
	}

	intent := &entity.PaymentIntent{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		OrderID:  in.OrderID,
		CartID:   in.CartID,
		Provider: provider,
		Amount:   in.Amount,
		Currency: currency,
	}
	if err := p.CreateIntent(intent); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateIntent(s.DB, intent); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	if idemKey != "" {
		_ = s.Idem.Remember(context.Background(), tenantID, "intent_create", idemKey, intent.ID)
	}
	s.Log.LogPayment("CREATE", intent.ID, fmt.Sprintf("intent %d %s via %s", intent.Amount, intent.Currency, provider))
	return intent, nil
}

// Capture: idempotent — intent ที่ succeeded แล้วคืนผลเดิม ไม่เกิด side effect ซ้ำ
func (s *PaymentService) Capture(tenantID uint, intentID, providerTxnID string) (*entity.PaymentIntent, error) {
	intent, err := s.Repo.GetIntent(tenantID, intentID)
	if err != nil {
		return nil, intentErr(err)
	}

	if intent.Status == entity.IntentSucceeded {
		s.Log.LogPayment("CAPTURE", intent.ID, "already succeeded, no-op")
		return intent, nil
	}
	if intent.Status == entity.IntentCanceled || intent.Status == entity.IntentFailed {
		return nil, apperr.Validation("intent_not_capturable", "intent is "+intent.Status)
	}

	p, err := s.Providers.Resolve(intent.Provider)
	if err != nil {
		return nil, err
	}
	if err := p.Capture(intent, providerTxnID); err != nil {
		return nil, err
	}

	// การเงินเปลี่ยนสถานะ = durable ทั้ง intent และ event
	// เขียนผ่าน guard: สอง capture ที่ชนกันจริง ๆ จะมีแค่ตัวเดียวที่ append event
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.MarkIntentStatusGuard(tx, tenantID, intent.ID, map[string]any{
			"status":         entity.IntentSucceeded,
			"transaction_id": intent.TransactionID,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("conflict")
		}
		return s.Repo.AppendEvent(tx, &entity.PaymentEvent{
			IntentID:  intent.ID,
			TenantID:  tenantID,
			EventType: "payment_succeeded",
			Payload:   fmt.Sprintf(`{"transactionId":%q}`, intent.TransactionID),
		})
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.KindConflict {
			// แพ้ race ให้ capture อีกตัว: ถ้าอีกฝั่งจบแบบ succeeded ถือเป็นผลเดิม
			if cur, gerr := s.Repo.GetIntent(tenantID, intentID); gerr == nil && cur.Status == entity.IntentSucceeded {
				return cur, nil
			}
			return nil, apperr.Validation("intent_not_capturable", "intent already finished")
		}
		return nil, apperr.StorageUnavailable(err)
	}

	s.Log.LogPayment("CAPTURE", intent.ID, "captured as "+intent.TransactionID)
	return intent, nil
}

func (s *PaymentService) Refund(tenantID uint, in *RefundIn) (*entity.PaymentRefund, error) {
	intent, err := s.Repo.GetIntent(tenantID, in.IntentID)
	if err != nil {
		return nil, intentErr(err)
	}
	if intent.Status != entity.IntentSucceeded {
		return nil, apperr.Validation("intent_not_refundable", "intent is "+intent.Status)
	}

	refunded, err := s.Repo.SumRefunded(tenantID, intent.ID)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	if in.Amount+refunded > intent.Amount {
		return nil, apperr.Validation("invalid_refund_amount",
			fmt.Sprintf("refund %d exceeds captured %d (already refunded %d)", in.Amount, intent.Amount, refunded))
	}

	p, err := s.Providers.Resolve(intent.Provider)
	if err != nil {
		return nil, err
	}
	if err := p.Refund(intent, in.Amount); err != nil {
		return nil, err
	}

	rf := &entity.PaymentRefund{
		TenantID: tenantID,
		IntentID: intent.ID,
		Amount:   in.Amount,
		Reason:   in.Reason,
		Status:   "completed",
	}
	if err := s.Repo.CreateRefund(s.DB, rf); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	s.Log.LogPayment("REFUND", intent.ID, fmt.Sprintf("refunded %d", in.Amount))
	return rf, nil
}

// Split: validate ก่อนเสมอ; persist เป็น best-effort — store ล่มยังตอบ group ที่ validate แล้ว
// (นโยบาย availability-over-durability, มีธงบอกใน response)
func (s *PaymentService) Split(tenantID uint, in *SplitIn) (*SplitGroupOut, error) {
	var sum int64
	for _, sp := range in.Splits {
		if sp.Amount <= 0 {
			return nil, apperr.Validation("invalid_split_total", "split amount must be > 0")
		}
		sum += sp.Amount
	}
	// ยอดเป็นสตางค์: เพี้ยนแม้แต่ 1 หน่วย (0.01) ก็ปัดตก
	if sum != in.Total {
		return nil, apperr.Validation("invalid_split_total",
			fmt.Sprintf("split sum %d != total %d", sum, in.Total))
	}

	groupID := uuid.NewString()
	rows := make([]entity.PaymentSplit, 0, len(in.Splits))
	for _, sp := range in.Splits {
		rows = append(rows, entity.PaymentSplit{
			TenantID:     tenantID,
			SplitGroupID: groupID,
			Amount:       sp.Amount,
			PayerType:    sp.PayerType,
			Method:       sp.Method,
			Note:         sp.Note,
		})
	}

	out := &SplitGroupOut{SplitGroupID: groupID, Total: in.Total, Currency: in.Currency, Splits: rows, Persisted: true}
	if err := s.Repo.CreateSplits(s.DB, rows); err != nil {
		s.Log.Warn("PAYMENT", fmt.Sprintf("split group %s not persisted: %v", groupID, err))
		out.Persisted = false
	}
	return out, nil
}

// EmitEvent: append คือ durable write หลัก ล้มเหลว = fail ทั้ง operation
func (s *PaymentService) EmitEvent(tenantID uint, intentID, eventType string, payload json.RawMessage) (*EmitEventOut, error) {
	intent, err := s.Repo.GetIntent(tenantID, intentID)
	if err != nil {
		return nil, intentErr(err)
	}

	ev := &entity.PaymentEvent{
		IntentID:  intent.ID,
		TenantID:  tenantID,
		EventType: eventType,
		Payload:   string(payload),
	}

	applied := ""
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return err
		}
		if next, ok := eventStatusMap[eventType]; ok {
			intent.Status = next
			applied = next
			return s.Repo.SaveIntent(tx, intent)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return &EmitEventOut{Event: ev, AppliedStatus: applied}, nil
}

// HandleWebhook ตอบรับเสมอ (ผู้ส่งห้าม retry ไม่รู้จบเพราะ storage ฝั่งเราสะดุด)
// persist ไม่ได้ → log แล้วปล่อย
func (s *PaymentService) HandleWebhook(provider string, payload []byte) {
	var body struct {
		Type     string `json:"type"`
		IntentID string `json:"intentId"`
		TenantID uint   `json:"tenantId"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		s.Log.Warn("WEBHOOK", fmt.Sprintf("unparseable %s webhook: %v", provider, err))
		return
	}
	if body.IntentID == "" {
		s.Log.Warn("WEBHOOK", fmt.Sprintf("%s webhook without intent id, stored nothing", provider))
		return
	}
	if _, err := s.EmitEvent(body.TenantID, body.IntentID, body.Type, payload); err != nil {
		s.Log.Warn("WEBHOOK", fmt.Sprintf("%s webhook for %s not stored: %v", provider, body.IntentID, err))
	}
}

func intentErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("intent_not_found")
	}
	return apperr.StorageUnavailable(err)
}
