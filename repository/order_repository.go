package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(tenantID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND tenant_id = ?", orderID, tenantID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID          uint      `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	OrderMode   string    `json:"orderMode"`
	TableID     *uint     `json:"tableId,omitempty"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(tenantID uint, status string, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	db := r.DB.Model(&entity.Order{}).
		Select("id, order_number, order_mode, table_id, status, total, created_at").
		Where("tenant_id = ?", tenantID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

// สำหรับ KDS: order ที่ยัง live (ไม่ terminal, ไม่ served) เรียงเก่าสุดก่อน
func (r *OrderRepository) ListActiveOrders(tenantID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]string{"new", "pending", "confirmed", "preparing", "ready"}).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// UpdateStatusGuard: optimistic concurrency ผ่าน version check
// คืน RowsAffected; 0 = มีคนแก้ตัดหน้า (conflict) หรือ order หาย
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, tenantID, orderID, version uint, updates map[string]any) (int64, error) {
	updates["version"] = version + 1
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND tenant_id = ? AND version = ?", orderID, tenantID, version).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, qty, unit_price, total, note, menu_item_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// ---------------- Status Events ----------------

func (r *OrderRepository) AppendStatusEvent(tx *gorm.DB, ev *entity.OrderStatusEvent) error {
	return tx.Create(ev).Error
}

func (r *OrderRepository) ListStatusEvents(tenantID, orderID uint) ([]entity.OrderStatusEvent, error) {
	var evs []entity.OrderStatusEvent
	err := r.DB.Where("order_id = ? AND tenant_id = ?", orderID, tenantID).
		Order("created_at ASC, id ASC").
		Find(&evs).Error
	return evs, err
}

func (r *OrderRepository) LatestStatusEvent(tenantID, orderID uint) (*entity.OrderStatusEvent, error) {
	var ev entity.OrderStatusEvent
	err := r.DB.Where("order_id = ? AND tenant_id = ?", orderID, tenantID).
		Order("created_at DESC, id DESC").
		First(&ev).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
