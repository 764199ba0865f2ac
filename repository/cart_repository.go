package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) Create(c *entity.Cart) error {
	return r.DB.Create(c).Error
}

// ทุก read กรอง tenant_id เสมอ; เดา cart_id ข้าม tenant → not found
func (r *CartRepository) GetWithItems(tenantID uint, cartID string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("id = ? AND tenant_id = ?", cartID, tenantID).
		Preload("Items").
		First(&c).Error
	return &c, err
}

func (r *CartRepository) Get(tenantID uint, cartID string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("id = ? AND tenant_id = ?", cartID, tenantID).First(&c).Error
	return &c, err
}

// เพิ่มหรือรวม line: เมนูเดียวกัน + note เดียวกัน → บวก qty ไม่สร้างแถวใหม่
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID string, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ? AND note = ?", cartID, row.MenuItemID, row.Note).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		exist.Total = int64(exist.Qty) * exist.UnitPrice
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

func (r *CartRepository) UpdateQty(tx *gorm.DB, tenantID uint, cartID string, itemID uint, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(tx, tenantID, cartID, itemID)
	}
	return tx.Exec(`
		UPDATE cart_items
		   SET qty = ?, total = unit_price * ?
		 WHERE id = ?
		   AND cart_id IN (SELECT id FROM carts WHERE id = ? AND tenant_id = ?)
	`, qty, qty, itemID, cartID, tenantID).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, tenantID uint, cartID string, itemID uint) error {
	return tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE id = ? AND tenant_id = ?)",
			itemID, cartID, tenantID).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearItems(tx *gorm.DB, cartID string) error {
	return tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

// retire cart หลัง confirm สำเร็จ (hard delete → confirm ซ้ำต้องเจอ not found)
func (r *CartRepository) Consume(tx *gorm.DB, tenantID uint, cartID string) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().
		Where("id = ? AND tenant_id = ?", cartID, tenantID).
		Delete(&entity.Cart{}).Error
}
