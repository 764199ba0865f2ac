package services

import (
	"context"
	"errors"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
	"backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartService struct {
	DB        *gorm.DB
	CartRepo  *repository.CartRepository
	OrderRepo *repository.OrderRepository
	MenuRepo  *repository.MenuRepository // gateway: ตรวจเมนู/โต๊ะ + tax ของ tenant
	Idem      repository.IdempotencyStore
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, or *repository.OrderRepository,
	mr *repository.MenuRepository, idem repository.IdempotencyStore) *CartService {
	return &CartService{DB: db, CartRepo: cr, OrderRepo: or, MenuRepo: mr, Idem: idem}
}

// ----- DTOs -----

type StartCartIn struct {
	OrderMode string `json:"orderMode" binding:"required,oneof=dine_in takeaway"`
	TableID   *uint  `json:"tableId"`
}

type CartItemIn struct {
	MenuItemID uint   `json:"menuItemId" binding:"required"`
	Qty        int    `json:"qty" binding:"min=1"`
	Note       string `json:"note"`
}

type CartTotals struct {
	Subtotal  int64 `json:"subtotal"`
	TaxAmount int64 `json:"taxAmount"`
	Total     int64 `json:"total"`
}

type CartOut struct {
	Cart   *entity.Cart `json:"cart"`
	Totals CartTotals   `json:"totals"`
}

type ConfirmCartIn struct {
	Notes string `json:"notes"`
}

// ----- Operations -----

func (s *CartService) Start(tenantID uint, in *StartCartIn, idemKey string) (*entity.Cart, error) {
	// retry ด้วย key เดิมต้องได้ cart เดิม ไม่สร้างซ้ำ
	if idemKey != "" {
		if id, ok, _ := s.Idem.Recall(context.Background(), tenantID, "cart_start", idemKey); ok {
			if c, err := s.CartRepo.GetWithItems(tenantID, id); err == nil {
				return c, nil
			}
		}
	}

	if in.OrderMode == entity.OrderModeDineIn {
		if in.TableID == nil {
			return nil, apperr.Validation("table_required", "dine_in cart requires a table")
		}
		ok, err := s.MenuRepo.TableBelongsToTenant(tenantID, *in.TableID)
		if err != nil {
			return nil, apperr.StorageUnavailable(err)
		}
		if !ok {
			return nil, apperr.NotFound("table_not_found")
		}
	} else {
		in.TableID = nil
	}

	c := &entity.Cart{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		OrderMode: in.OrderMode,
		TableID:   in.TableID,
	}
	if err := s.CartRepo.Create(c); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	if idemKey != "" {
		_ = s.Idem.Remember(context.Background(), tenantID, "cart_start", idemKey, c.ID)
	}
	return c, nil
}

// AddItems ตรวจทุก item ก่อนเขียน ถ้าพังตัวเดียว fail ทั้งก้อน (no partial insert)
func (s *CartService) AddItems(tenantID uint, cartID string, items []CartItemIn) (*CartOut, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("invalid_menu_items", "items is required")
	}

	cart, err := s.CartRepo.Get(tenantID, cartID)
	if err != nil {
		return nil, cartErr(err)
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if it.Qty <= 0 {
			return nil, apperr.Validation("invalid_menu_items", "qty must be > 0")
		}
		ids = append(ids, it.MenuItemID)
	}

	menus, err := s.MenuRepo.GetMenuItems(tenantID, ids)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	byID := make(map[uint]entity.MenuItem, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}
	for _, it := range items {
		m, ok := byID[it.MenuItemID]
		if !ok || !m.Available {
			return nil, apperr.Validation("invalid_menu_items", "menu item missing or unavailable")
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			m := byID[it.MenuItemID]
			line := &entity.CartItem{
				MenuItemID: m.ID,
				Qty:        it.Qty,
				UnitPrice:  m.Price, // snapshot ณ ตอน add
				Total:      m.Price * int64(it.Qty),
				Note:       it.Note,
			}
			if err := s.CartRepo.UpsertItem(tx, cart.ID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	return s.Get(tenantID, cartID)
}

// Get คำนวณยอดสดทุกครั้ง ไม่ cache
func (s *CartService) Get(tenantID uint, cartID string) (*CartOut, error) {
	cart, err := s.CartRepo.GetWithItems(tenantID, cartID)
	if err != nil {
		return nil, cartErr(err)
	}
	totals, err := s.totals(cart)
	if err != nil {
		return nil, err
	}
	return &CartOut{Cart: cart, Totals: totals}, nil
}

func (s *CartService) UpdateItemQty(tenantID uint, cartID string, itemID uint, qty int) error {
	if _, err := s.CartRepo.Get(tenantID, cartID); err != nil {
		return cartErr(err)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, tenantID, cartID, itemID, qty)
	})
}

func (s *CartService) RemoveItem(tenantID uint, cartID string, itemID uint) error {
	if _, err := s.CartRepo.Get(tenantID, cartID); err != nil {
		return cartErr(err)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, tenantID, cartID, itemID)
	})
}

func (s *CartService) Clear(tenantID uint, cartID string) error {
	if _, err := s.CartRepo.Get(tenantID, cartID); err != nil {
		return cartErr(err)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearItems(tx, cartID)
	})
}

// Confirm แปลง cart → order แบบ one-way; confirm ซ้ำจะเจอ cart_not_found
func (s *CartService) Confirm(tenantID uint, cartID string, in *ConfirmCartIn, actorID uint) (*entity.Order, error) {
	cart, err := s.CartRepo.GetWithItems(tenantID, cartID)
	if err != nil {
		return nil, cartErr(err)
	}
	if len(cart.Items) == 0 {
		return nil, apperr.Validation("cart_empty", "cart has no items")
	}

	totals, err := s.totals(cart)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		TenantID:            tenantID,
		TableID:             cart.TableID,
		OrderMode:           cart.OrderMode,
		OrderNumber:         utils.GenerateOrderNumber(now),
		Status:              StatusNew,
		Subtotal:            totals.Subtotal,
		TaxAmount:           totals.TaxAmount,
		Total:               totals.Total,
		SpecialInstructions: in.Notes,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.OrderRepo.CreateOrder(tx, order); err != nil {
			return err
		}
		for _, it := range cart.Items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Qty:        it.Qty,
				UnitPrice:  it.UnitPrice, // copy snapshot ไม่คำนวณใหม่
				Total:      it.Total,
				Note:       it.Note,
			}
			if err := s.OrderRepo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		ev := entity.OrderStatusEvent{
			OrderID:  order.ID,
			TenantID: tenantID,
			ToStatus: StatusNew, // event แรก from = nil
			ActorID:  actorID,
		}
		if err := s.OrderRepo.AppendStatusEvent(tx, &ev); err != nil {
			return err
		}
		return s.CartRepo.Consume(tx, tenantID, cart.ID)
	})
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return order, nil
}

func (s *CartService) totals(cart *entity.Cart) (CartTotals, error) {
	tenant, err := s.MenuRepo.GetTenant(cart.TenantID)
	if err != nil {
		return CartTotals{}, apperr.StorageUnavailable(err)
	}
	var subtotal int64
	for _, it := range cart.Items {
		subtotal += it.UnitPrice * int64(it.Qty)
	}
	tax := taxOf(subtotal, tenant.TaxRateBps)
	return CartTotals{Subtotal: subtotal, TaxAmount: tax, Total: subtotal + tax}, nil
}

// ภาษีคิดจาก basis points ปัดครึ่งขึ้น
func taxOf(subtotal int64, bps int) int64 {
	return (subtotal*int64(bps) + 5000) / 10000
}

func cartErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("cart_not_found")
	}
	return apperr.StorageUnavailable(err)
}
