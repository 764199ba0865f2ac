package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
	"backend/utils"

	"gorm.io/gorm"
)

// Checkout = เส้นทาง pre-paid: จ่ายก่อนแล้วค่อย materialize order เป็น paid เลย
// เป็นทางเข้า state machine อีกทาง ไม่ใช่การ bypass กติกา
type CheckoutService struct {
	DB        *gorm.DB
	CartSvc   *CartService
	PaySvc    *PaymentService
	PayRepo   *repository.PaymentRepository
	CartRepo  *repository.CartRepository
	OrderRepo *repository.OrderRepository
}

func NewCheckoutService(db *gorm.DB, cartSvc *CartService, paySvc *PaymentService,
	payRepo *repository.PaymentRepository, cartRepo *repository.CartRepository,
	orderRepo *repository.OrderRepository) *CheckoutService {
	return &CheckoutService{
		DB: db, CartSvc: cartSvc, PaySvc: paySvc,
		PayRepo: payRepo, CartRepo: cartRepo, OrderRepo: orderRepo,
	}
}

type CheckoutIntentIn struct {
	CartID   string `json:"cartId" binding:"required"`
	Provider string `json:"provider"`
}

type CheckoutConfirmIn struct {
	IntentID string `json:"intentId" binding:"required"`
}

type CheckoutConfirmOut struct {
	Intent *entity.PaymentIntent `json:"intent"`
	Order  *entity.Order         `json:"order"`
}

// CreateIntent over cart: amount = ยอด cart ที่คำนวณสด ณ ตอนนี้
func (s *CheckoutService) CreateIntent(tenantID uint, in *CheckoutIntentIn, idemKey string) (*entity.PaymentIntent, error) {
	cart, err := s.CartSvc.Get(tenantID, in.CartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Cart.Items) == 0 {
		return nil, apperr.Validation("cart_empty", "cart has no items")
	}

	return s.PaySvc.CreateIntent(tenantID, &CreateIntentIn{
		Amount:   cart.Totals.Total,
		Provider: in.Provider,
		CartID:   &in.CartID,
	}, idemKey)
}

// Confirm: หน่วยเดียว — order (paid) + items + event (nil→paid) + intent succeeded + retire cart
// confirm ซ้ำบน intent ที่จบแล้วคืนผลเดิม
func (s *CheckoutService) Confirm(tenantID uint, in *CheckoutConfirmIn, actorID uint) (*CheckoutConfirmOut, error) {
	intent, err := s.PayRepo.GetIntent(tenantID, in.IntentID)
	if err != nil {
		return nil, intentErr(err)
	}
	if intent.CartID == nil {
		return nil, apperr.Validation("intent_not_checkout", "intent is not scoped to a cart")
	}

	// idempotent replay
	if intent.Status == entity.IntentSucceeded && intent.OrderID != nil {
		o, err := s.OrderRepo.GetOrder(tenantID, *intent.OrderID)
		if err != nil {
			return nil, orderErr(err)
		}
		return &CheckoutConfirmOut{Intent: intent, Order: o}, nil
	}
	if intent.Status == entity.IntentCanceled || intent.Status == entity.IntentFailed {
		return nil, apperr.Validation("intent_not_capturable", "intent is "+intent.Status)
	}

	p, err := s.PaySvc.Providers.Resolve(intent.Provider)
	if err != nil {
		return nil, err
	}

	cart, err := s.CartRepo.GetWithItems(tenantID, *intent.CartID)
	if err != nil {
		return nil, cartErr(err)
	}
	if len(cart.Items) == 0 {
		return nil, apperr.Validation("cart_empty", "cart has no items")
	}
	totals, err := s.CartSvc.totals(cart)
	if err != nil {
		return nil, err
	}

	if err := p.Capture(intent, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		TenantID:    tenantID,
		TableID:     cart.TableID,
		OrderMode:   cart.OrderMode,
		OrderNumber: utils.GenerateOrderNumber(now),
		Status:      StatusPaid,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		Total:       totals.Total,
		PaidAt:      &now,
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
				UnitPrice:  it.UnitPrice,
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
			ToStatus: StatusPaid, // ทางลัด pre-paid: event เดียว nil→paid
			ActorID:  actorID,
		}
		if err := s.OrderRepo.AppendStatusEvent(tx, &ev); err != nil {
			return err
		}

		// guard เดียวกับ capture: intent ที่จบแล้วเขียนทับไม่ได้
		affected, err := s.PayRepo.MarkIntentStatusGuard(tx, tenantID, intent.ID, map[string]any{
			"status":         entity.IntentSucceeded,
			"transaction_id": intent.TransactionID,
			"order_id":       order.ID,
			"cart_id":        nil,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("conflict")
		}
		if err := s.PayRepo.AppendEvent(tx, &entity.PaymentEvent{
			IntentID:  intent.ID,
			TenantID:  tenantID,
			EventType: "payment_succeeded",
		}); err != nil {
			return err
		}

		return s.CartRepo.Consume(tx, tenantID, cart.ID)
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.KindConflict {
			// confirm อีกตัวชิงปิด intent ไปแล้ว: คืนผลของรอบที่ชนะ (order เราถูก rollback)
			if cur, gerr := s.PayRepo.GetIntent(tenantID, intent.ID); gerr == nil &&
				cur.Status == entity.IntentSucceeded && cur.OrderID != nil {
				if o, oerr := s.OrderRepo.GetOrder(tenantID, *cur.OrderID); oerr == nil {
					return &CheckoutConfirmOut{Intent: cur, Order: o}, nil
				}
			}
			return nil, apperr.Validation("intent_not_capturable", "intent already finished")
		}
		return nil, apperr.StorageUnavailable(err)
	}
	intent.OrderID = &order.ID
	intent.CartID = nil

	return &CheckoutConfirmOut{Intent: intent, Order: order}, nil
}

func (s *CheckoutService) Cancel(tenantID uint, intentID string) (*entity.PaymentIntent, error) {
	intent, err := s.PayRepo.GetIntent(tenantID, intentID)
	if err != nil {
		return nil, intentErr(err)
	}
	if intent.Status == entity.IntentSucceeded {
		return nil, apperr.Validation("intent_not_cancelable", "intent already succeeded")
	}
	if intent.Status == entity.IntentCanceled {
		return intent, nil // cancel ซ้ำ = no-op
	}

	intent.Status = entity.IntentCanceled
	if err := s.PayRepo.SaveIntent(s.DB, intent); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return intent, nil
}
