package services

import (
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStatusAppendsTimeline(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	res, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID,
		&AdvanceStatusIn{ToStatus: StatusPreparing, Note: "fire it"}, 9)
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, res.Order.Status)
	require.NotNil(t, res.Event)
	require.NotNil(t, res.Event.FromStatus)
	assert.Equal(t, StatusNew, *res.Event.FromStatus)

	tl, err := env.OrderSvc.Timeline(env.Tenant.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, tl.Current)
	// สอง event เป๊ะ: (nil→new) ตอน confirm, (new→preparing) ตอน advance
	require.Len(t, tl.Events, 2)
	assert.Nil(t, tl.Events[0].FromStatus)
	assert.Equal(t, StatusNew, tl.Events[0].ToStatus)
	assert.Equal(t, StatusPreparing, tl.Events[1].ToStatus)
	assert.Equal(t, "fire it", tl.Events[1].Note)
}

func TestAdvanceStatusStampsTimestamps(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	for _, to := range []string{StatusPreparing, StatusReady, StatusServed, StatusPaid} {
		_, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: to}, 1)
		require.NoError(t, err)
	}

	o, err := env.OrderRepo.GetOrder(env.Tenant.ID, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, o.ReadyAt)
	assert.NotNil(t, o.ServedAt)
	assert.NotNil(t, o.PaidAt)
}

func TestAdvanceStatusRejectsBackward(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	_, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: StatusReady}, 1)
	require.NoError(t, err)

	_, err = env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: StatusPreparing}, 1)
	require.Error(t, err)
	assert.Equal(t, "invalid_status_transition", apperr.CodeOf(err))
}

func TestAdvanceStatusRejectsTerminalMutation(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	_, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: StatusCancelled}, 1)
	require.NoError(t, err)

	for _, to := range []string{StatusPreparing, StatusPaid, StatusVoided} {
		_, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: to}, 1)
		require.Error(t, err, to)
		assert.Equal(t, "invalid_status_transition", apperr.CodeOf(err))
	}
}

func TestAdvanceStatusUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	_, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: "shipped"}, 1)
	require.Error(t, err)
	assert.Equal(t, "unknown_status", apperr.CodeOf(err))
}

// version guard: คนที่ถือ version เก่าต้องแพ้ (0 rows) ไม่ใช่ทับกันเงียบ ๆ
func TestUpdateStatusGuardStaleVersion(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t) // version 0

	affected, err := env.OrderRepo.UpdateStatusGuard(env.DB, env.Tenant.ID, order.ID, 0,
		map[string]any{"status": StatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// ยิงซ้ำด้วย version 0 เดิม → ไม่โดนอะไรเลย
	affected, err = env.OrderRepo.UpdateStatusGuard(env.DB, env.Tenant.ID, order.ID, 0,
		map[string]any{"status": StatusReady})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	o, err := env.OrderRepo.GetOrder(env.Tenant.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, o.Status)
	assert.Equal(t, uint(1), o.Version)
}

func TestEmitStatusEventInfersFrom(t *testing.T) {
	env := newTestEnv(t)

	// order ที่เกิดตรง ๆ ไม่ผ่าน confirm → log ว่าง (เส้น backward compat)
	order := entity.Order{
		TenantID: env.Tenant.ID, OrderMode: entity.OrderModeTakeaway,
		OrderNumber: "ORD-TEST-0001", Status: StatusConfirmed,
		Subtotal: 1000, TaxAmount: 100, Total: 1100,
	}
	require.NoError(t, env.DB.Create(&order).Error)

	// log ว่าง → from default = pending
	ev, err := env.OrderSvc.EmitStatusEvent(env.Tenant.ID, order.ID, StatusPreparing, "", 1)
	require.NoError(t, err)
	require.NotNil(t, ev.FromStatus)
	assert.Equal(t, StatusPending, *ev.FromStatus)

	// มี log แล้ว → from = to ล่าสุด
	ev2, err := env.OrderSvc.EmitStatusEvent(env.Tenant.ID, order.ID, StatusReady, "", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, *ev2.FromStatus)
}

func TestEmitStatusEventGuardsTransitions(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	for _, to := range []string{StatusPreparing, StatusReady, StatusServed, StatusPaid} {
		_, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: to}, 1)
		require.NoError(t, err)
	}

	// order ปิดแล้ว ห้าม emit ต่อ — ไม่งั้น timeline ของ order ที่จ่ายแล้วโดน rewrite
	for _, to := range []string{StatusNew, StatusPreparing, StatusCancelled} {
		_, err := env.OrderSvc.EmitStatusEvent(env.Tenant.ID, order.ID, to, "", 1)
		require.Error(t, err, to)
		assert.Equal(t, "invalid_status_transition", apperr.CodeOf(err))
	}

	tl, err := env.OrderSvc.Timeline(env.Tenant.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, tl.Current)

	// ถอยหลังบน order ที่ยัง live ก็ไม่ได้เหมือนกัน
	live := env.confirmedOrder(t)
	_, err = env.OrderSvc.AdvanceStatus(env.Tenant.ID, live.ID, &AdvanceStatusIn{ToStatus: StatusReady}, 1)
	require.NoError(t, err)
	_, err = env.OrderSvc.EmitStatusEvent(env.Tenant.ID, live.ID, StatusPreparing, "", 1)
	require.Error(t, err)
	assert.Equal(t, "invalid_status_transition", apperr.CodeOf(err))
}

// log พัง header ยังต้องเดินต่อ (append เป็น best-effort หลัง commit)
func TestAdvanceStatusSurvivesEventLogFailure(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	require.NoError(t, env.DB.Migrator().DropTable(&entity.OrderStatusEvent{}))

	res, err := env.OrderSvc.AdvanceStatus(env.Tenant.ID, order.ID, &AdvanceStatusIn{ToStatus: StatusPreparing}, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, res.Order.Status)
	assert.Nil(t, res.Event) // append ไม่สำเร็จ → ไม่มี event ใน response แต่ operation ไม่ fail
}

func TestTimelineFallsBackToHeader(t *testing.T) {
	env := newTestEnv(t)

	order := entity.Order{
		TenantID: env.Tenant.ID, OrderMode: entity.OrderModeTakeaway,
		OrderNumber: "ORD-TEST-0002", Status: StatusConfirmed,
		Subtotal: 1000, TaxAmount: 100, Total: 1100,
	}
	require.NoError(t, env.DB.Create(&order).Error)

	tl, err := env.OrderSvc.Timeline(env.Tenant.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, tl.Current)
	assert.Empty(t, tl.Events)
}

func TestOrderCrossTenantIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	_, err := env.OrderSvc.Timeline(env.Tenant2.ID, order.ID)
	require.Error(t, err)
	assert.Equal(t, "order_not_found", apperr.CodeOf(err))

	_, err = env.OrderSvc.AdvanceStatus(env.Tenant2.ID, order.ID, &AdvanceStatusIn{ToStatus: StatusPreparing}, 1)
	require.Error(t, err)
	assert.Equal(t, "order_not_found", apperr.CodeOf(err))
}
