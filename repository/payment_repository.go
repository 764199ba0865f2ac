package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// ---------------- Intents ----------------

func (r *PaymentRepository) CreateIntent(tx *gorm.DB, in *entity.PaymentIntent) error {
	return tx.Create(in).Error
}

func (r *PaymentRepository) GetIntent(tenantID uint, intentID string) (*entity.PaymentIntent, error) {
	var in entity.PaymentIntent
	err := r.DB.Where("id = ? AND tenant_id = ?", intentID, tenantID).First(&in).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *PaymentRepository) SaveIntent(tx *gorm.DB, in *entity.PaymentIntent) error {
	return tx.Save(in).Error
}

// MarkIntentStatusGuard: เขียนทับได้เฉพาะ intent ที่ยังไม่จบ
// คืน RowsAffected; 0 = มี capture/confirm อีกตัวปิด intent ตัดหน้าไปแล้ว
func (r *PaymentRepository) MarkIntentStatusGuard(tx *gorm.DB, tenantID uint, intentID string, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.PaymentIntent{}).
		Where("id = ? AND tenant_id = ? AND status NOT IN ?", intentID, tenantID,
			[]string{entity.IntentSucceeded, entity.IntentCanceled, entity.IntentFailed}).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ---------------- Events (append-only) ----------------

func (r *PaymentRepository) AppendEvent(tx *gorm.DB, ev *entity.PaymentEvent) error {
	return tx.Create(ev).Error
}

func (r *PaymentRepository) ListEvents(tenantID uint, intentID string) ([]entity.PaymentEvent, error) {
	var evs []entity.PaymentEvent
	err := r.DB.Where("intent_id = ? AND tenant_id = ?", intentID, tenantID).
		Order("created_at ASC, id ASC").
		Find(&evs).Error
	return evs, err
}

// ---------------- Refunds ----------------

func (r *PaymentRepository) CreateRefund(tx *gorm.DB, rf *entity.PaymentRefund) error {
	return tx.Create(rf).Error
}

func (r *PaymentRepository) SumRefunded(tenantID uint, intentID string) (int64, error) {
	var sum int64
	err := r.DB.Model(&entity.PaymentRefund{}).
		Where("tenant_id = ? AND intent_id = ? AND status = ?", tenantID, intentID, "completed").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// ---------------- Splits ----------------

func (r *PaymentRepository) CreateSplits(tx *gorm.DB, rows []entity.PaymentSplit) error {
	return tx.Create(&rows).Error
}

// ---------------- Tenant config ----------------

func (r *PaymentRepository) GetTenantConfig(tenantID uint) (*entity.TenantPaymentConfig, error) {
	var cfg entity.TenantPaymentConfig
	err := r.DB.Where("tenant_id = ?", tenantID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
