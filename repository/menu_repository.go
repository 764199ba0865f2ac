package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

// MenuRepository ทำหน้าที่เป็น gateway ไปหาเมนู/โต๊ะของ tenant
// engine ใช้แค่ตรวจว่า item มีจริง+ขายอยู่ และ snapshot ราคา
type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// เอาเมนูพื้นฐาน (id, price, available) แบบ tenant-scoped
func (r *MenuRepository) GetMenuItems(tenantID uint, ids []uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Select("id, tenant_id, price, available").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) TableBelongsToTenant(tenantID, tableID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.DiningTable{}).
		Where("id = ? AND tenant_id = ?", tableID, tenantID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *MenuRepository) GetTenant(tenantID uint) (*entity.Tenant, error) {
	var t entity.Tenant
	if err := r.DB.First(&t, tenantID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
