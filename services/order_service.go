package services

import (
	"errors"
	"fmt"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/logger"
	"backend/repository"

	"gorm.io/gorm"
)

// LaneUpdate ถูก push ไปหา KDS client ทุกครั้งที่สถานะเปลี่ยน
type LaneUpdate struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Lane        string `json:"lane"` // "" = หลุดจากทุก lane แล้ว
}

type LaneNotifier interface {
	BroadcastLaneChange(tenantID uint, u LaneUpdate)
}

type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
	Log  *logger.Logger

	// optional: ไม่ set ก็ทำงานได้ (เช่นใน test)
	Notifier LaneNotifier
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, log *logger.Logger) *OrderService {
	return &OrderService{DB: db, Repo: repo, Log: log}
}

// ----- DTOs -----

type AdvanceStatusIn struct {
	ToStatus string `json:"toStatus" binding:"required"`
	Note     string `json:"note"`
}

type TimelineOut struct {
	Current string                    `json:"current"`
	Events  []entity.OrderStatusEvent `json:"events"`
}

type StatusResult struct {
	Order *entity.Order            `json:"order"`
	Event *entity.OrderStatusEvent `json:"event"`
}

// ----- Operations -----

// AdvanceStatus: header update อยู่ใต้ version check (สอง request ชนกัน → conflict)
// event append เป็น best-effort หลัง commit — สถานะคือ source of truth, log คือ audit
func (s *OrderService) AdvanceStatus(tenantID, orderID uint, in *AdvanceStatusIn, actorID uint) (*StatusResult, error) {
	to := in.ToStatus
	if !KnownStatus(to) {
		return nil, apperr.Validation("unknown_status", "unknown status "+to)
	}

	o, err := s.Repo.GetOrder(tenantID, orderID)
	if err != nil {
		return nil, orderErr(err)
	}
	from := o.Status
	if !CanTransition(from, to) {
		return nil, apperr.Validation("invalid_status_transition",
			fmt.Sprintf("cannot move %s -> %s", from, to))
	}

	now := time.Now()
	updates := map[string]any{"status": to}
	switch to {
	case StatusReady:
		updates["ready_at"] = now
	case StatusServed:
		updates["served_at"] = now
	case StatusPaid:
		updates["paid_at"] = now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, tenantID, orderID, o.Version, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("conflict")
		}
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.StorageUnavailable(err)
	}

	// append event หลัง header commit แล้ว; ล้มเหลว → log อย่างเดียว ไม่ fail operation
	ev := &entity.OrderStatusEvent{
		OrderID:    orderID,
		TenantID:   tenantID,
		FromStatus: &from,
		ToStatus:   to,
		Note:       in.Note,
		ActorID:    actorID,
	}
	if err := s.Repo.AppendStatusEvent(s.DB, ev); err != nil {
		s.Log.Warn("ORDER", fmt.Sprintf("status event append failed for order %d (%s->%s): %v", orderID, from, to, err))
		ev = nil
	}

	o, err = s.Repo.GetOrder(tenantID, orderID)
	if err != nil {
		return nil, orderErr(err)
	}

	if s.Notifier != nil {
		s.Notifier.BroadcastLaneChange(tenantID, LaneUpdate{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			Lane:        LaneFor(o.Status),
		})
	}

	return &StatusResult{Order: o, Event: ev}, nil
}

// Timeline: ถ้า log ว่าง current = คอลัมน์ status (backward compat)
func (s *OrderService) Timeline(tenantID, orderID uint) (*TimelineOut, error) {
	o, err := s.Repo.GetOrder(tenantID, orderID)
	if err != nil {
		return nil, orderErr(err)
	}
	evs, err := s.Repo.ListStatusEvents(tenantID, orderID)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	current := o.Status
	if len(evs) > 0 {
		current = evs[len(evs)-1].ToStatus
	}
	return &TimelineOut{Current: current, Events: evs}, nil
}

// EmitStatusEvent ต่อประวัติอย่างเดียว ไม่แตะ header
// from = to_status ล่าสุดใน log (ไม่มี → "pending"); เขียนแบบ durable
// ตารางเปลี่ยนสถานะบังคับเหมือน AdvanceStatus — log ต้องเดินหน้าเท่านั้น
func (s *OrderService) EmitStatusEvent(tenantID, orderID uint, toStatus, note string, actorID uint) (*entity.OrderStatusEvent, error) {
	if !KnownStatus(toStatus) {
		return nil, apperr.Validation("unknown_status", "unknown status "+toStatus)
	}
	if _, err := s.Repo.GetOrder(tenantID, orderID); err != nil {
		return nil, orderErr(err)
	}

	from := StatusPending
	if last, err := s.Repo.LatestStatusEvent(tenantID, orderID); err == nil {
		from = last.ToStatus
	}
	if !CanTransition(from, toStatus) {
		return nil, apperr.Validation("invalid_status_transition",
			fmt.Sprintf("cannot move %s -> %s", from, toStatus))
	}

	ev := &entity.OrderStatusEvent{
		OrderID:    orderID,
		TenantID:   tenantID,
		FromStatus: &from,
		ToStatus:   toStatus,
		Note:       note,
		ActorID:    actorID,
	}
	if err := s.Repo.AppendStatusEvent(s.DB, ev); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return ev, nil
}

// ----- Reads -----

type OrderDetail struct {
	Order *entity.Order      `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) Detail(tenantID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(tenantID, orderID)
	if err != nil {
		return nil, orderErr(err)
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

func (s *OrderService) List(tenantID uint, status string, limit int) ([]repository.OrderSummary, error) {
	if status != "" && !KnownStatus(status) {
		return nil, apperr.Validation("unknown_status", "unknown status "+status)
	}
	out, err := s.Repo.ListOrders(tenantID, status, limit)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return out, nil
}

func orderErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("order_not_found")
	}
	return apperr.StorageUnavailable(err)
}
