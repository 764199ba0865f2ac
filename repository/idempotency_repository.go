package repository

import (
	"context"
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

// สัญญาเดียวกันทั้ง redis (cache.RedisIdempotencyStore) และ fallback ฝั่ง DB ตัวนี้
type IdempotencyStore interface {
	Remember(ctx context.Context, tenantID uint, scope, key, value string) error
	Recall(ctx context.Context, tenantID uint, scope, key string) (string, bool, error)
}

type dbIdempotencyStore struct{ db *gorm.DB }

func NewDBIdempotencyStore(db *gorm.DB) IdempotencyStore {
	return &dbIdempotencyStore{db: db}
}

func (s *dbIdempotencyStore) Remember(_ context.Context, tenantID uint, scope, key, value string) error {
	rec := entity.IdempotencyRecord{TenantID: tenantID, Scope: scope, Key: key, Value: value}
	// unique(tenant, scope, key): แพ้ race ก็ไม่เป็นไร ค่าแรกชนะ
	return s.db.Create(&rec).Error
}

func (s *dbIdempotencyStore) Recall(_ context.Context, tenantID uint, scope, key string) (string, bool, error) {
	var rec entity.IdempotencyRecord
	err := s.db.Where("tenant_id = ? AND scope = ? AND key = ?", tenantID, scope, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}
