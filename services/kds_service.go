package services

import (
	"backend/pkg/apperr"
	"backend/repository"
)

// KDS = read-side projection ของ order ที่ยัง live แบ่งเป็น lane ตามสถานะ
type KDSService struct {
	OrderRepo *repository.OrderRepository
	OrderSvc  *OrderService
}

func NewKDSService(orderRepo *repository.OrderRepository, orderSvc *OrderService) *KDSService {
	return &KDSService{OrderRepo: orderRepo, OrderSvc: orderSvc}
}

type LaneOrder struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"orderNumber"`
	OrderMode   string `json:"orderMode"`
	TableID     *uint  `json:"tableId,omitempty"`
	Status      string `json:"status"`
	Total       int64  `json:"total"`
}

type LanesOut struct {
	Queued    []LaneOrder `json:"queued"`
	Preparing []LaneOrder `json:"preparing"`
	Ready     []LaneOrder `json:"ready"`
}

func (s *KDSService) Lanes(tenantID uint) (*LanesOut, error) {
	orders, err := s.OrderRepo.ListActiveOrders(tenantID)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	out := &LanesOut{
		Queued:    []LaneOrder{},
		Preparing: []LaneOrder{},
		Ready:     []LaneOrder{},
	}
	for _, o := range orders {
		// สถานะปัจจุบัน = event ล่าสุด (fallback เป็น header)
		current := o.Status
		if last, err := s.OrderRepo.LatestStatusEvent(tenantID, o.ID); err == nil {
			current = last.ToStatus
		}
		row := LaneOrder{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			OrderMode:   o.OrderMode,
			TableID:     o.TableID,
			Status:      current,
			Total:       o.Total,
		}
		switch LaneFor(current) {
		case "queued":
			out.Queued = append(out.Queued, row)
		case "preparing":
			out.Preparing = append(out.Preparing, row)
		case "ready":
			out.Ready = append(out.Ready, row)
		}
	}
	return out, nil
}

// Advance = ทางเข้าจำกัดของครัว: ไปได้แค่ preparing/ready/served
// (role check อยู่ที่ route middleware)
func (s *KDSService) Advance(tenantID, orderID uint, toStatus, note string, actorID uint) (*StatusResult, error) {
	switch toStatus {
	case StatusPreparing, StatusReady, StatusServed:
	default:
		return nil, apperr.Validation("invalid_kds_status", "kds can only advance to preparing/ready/served")
	}
	return s.OrderSvc.AdvanceStatus(tenantID, orderID, &AdvanceStatusIn{ToStatus: toStatus, Note: note}, actorID)
}
