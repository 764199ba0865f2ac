package services

import (
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutIntentUsesCartTotal(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t) // 20.00 + ภาษี 10%

	intent, err := env.CheckoutSvc.CreateIntent(env.Tenant.ID, &CheckoutIntentIn{CartID: cartID}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2200), intent.Amount)
	require.NotNil(t, intent.CartID)
	assert.Equal(t, cartID, *intent.CartID)
	assert.Nil(t, intent.OrderID)
}

func TestCheckoutIntentRejectsEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	cart, err := env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeTakeaway}, "")
	require.NoError(t, err)

	_, err = env.CheckoutSvc.CreateIntent(env.Tenant.ID, &CheckoutIntentIn{CartID: cart.ID}, "")
	require.Error(t, err)
	assert.Equal(t, "cart_empty", apperr.CodeOf(err))
}

func TestCheckoutConfirmMaterializesPaidOrder(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t)

	intent, err := env.CheckoutSvc.CreateIntent(env.Tenant.ID, &CheckoutIntentIn{CartID: cartID}, "")
	require.NoError(t, err)

	out, err := env.CheckoutSvc.Confirm(env.Tenant.ID, &CheckoutConfirmIn{IntentID: intent.ID}, 3)
	require.NoError(t, err)

	// order เกิดมา paid เลย พร้อม timestamp และยอดตรง cart
	assert.Equal(t, StatusPaid, out.Order.Status)
	assert.NotNil(t, out.Order.PaidAt)
	assert.Equal(t, int64(2200), out.Order.Total)

	items, err := env.OrderRepo.GetOrderItems(out.Order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)

	// log มี event เดียว: nil→paid
	evs, err := env.OrderRepo.ListStatusEvents(env.Tenant.ID, out.Order.ID)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Nil(t, evs[0].FromStatus)
	assert.Equal(t, StatusPaid, evs[0].ToStatus)
	assert.Equal(t, uint(3), evs[0].ActorID)

	// intent ย้าย scope จาก cart → order
	assert.Equal(t, entity.IntentSucceeded, out.Intent.Status)
	require.NotNil(t, out.Intent.OrderID)
	assert.Equal(t, out.Order.ID, *out.Intent.OrderID)
	assert.Nil(t, out.Intent.CartID)

	// cart ถูก retire แล้ว
	_, err = env.CartSvc.Get(env.Tenant.ID, cartID)
	assert.Equal(t, "cart_not_found", apperr.CodeOf(err))
}

func TestCheckoutConfirmIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t)

	intent, err := env.CheckoutSvc.CreateIntent(env.Tenant.ID, &CheckoutIntentIn{CartID: cartID}, "")
	require.NoError(t, err)

	first, err := env.CheckoutSvc.Confirm(env.Tenant.ID, &CheckoutConfirmIn{IntentID: intent.ID}, 3)
	require.NoError(t, err)
	second, err := env.CheckoutSvc.Confirm(env.Tenant.ID, &CheckoutConfirmIn{IntentID: intent.ID}, 3)
	require.NoError(t, err)

	assert.Equal(t, first.Order.ID, second.Order.ID)

	var count int64
	env.DB.Model(&entity.Order{}).Where("tenant_id = ?", env.Tenant.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	evs, err := env.OrderRepo.ListStatusEvents(env.Tenant.ID, first.Order.ID)
	require.NoError(t, err)
	assert.Len(t, evs, 1) // replay ห้ามงอก event
}

func TestCheckoutConfirmRejectsOrderScopedIntent(t *testing.T) {
	env := newTestEnv(t)
	order := env.confirmedOrder(t)

	intent, err := env.PaySvc.CreateIntent(env.Tenant.ID,
		&CreateIntentIn{Amount: order.Total, OrderID: &order.ID}, "")
	require.NoError(t, err)

	_, err = env.CheckoutSvc.Confirm(env.Tenant.ID, &CheckoutConfirmIn{IntentID: intent.ID}, 1)
	require.Error(t, err)
	assert.Equal(t, "intent_not_checkout", apperr.CodeOf(err))
}

func TestCheckoutCancel(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t)

	intent, err := env.CheckoutSvc.CreateIntent(env.Tenant.ID, &CheckoutIntentIn{CartID: cartID}, "")
	require.NoError(t, err)

	got, err := env.CheckoutSvc.Cancel(env.Tenant.ID, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentCanceled, got.Status)

	// cancel ซ้ำ = no-op
	again, err := env.CheckoutSvc.Cancel(env.Tenant.ID, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentCanceled, again.Status)

	// intent ตายแล้ว confirm ไม่ได้
	_, err = env.CheckoutSvc.Confirm(env.Tenant.ID, &CheckoutConfirmIn{IntentID: intent.ID}, 1)
	require.Error(t, err)
	assert.Equal(t, "intent_not_capturable", apperr.CodeOf(err))

	// cart ยังอยู่ สั่งต่อทางปกติได้
	_, err = env.CartSvc.Get(env.Tenant.ID, cartID)
	require.NoError(t, err)
}

func TestCheckoutCancelAfterSuccess(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t)

	intent, err := env.CheckoutSvc.CreateIntent(env.Tenant.ID, &CheckoutIntentIn{CartID: cartID}, "")
	require.NoError(t, err)
	_, err = env.CheckoutSvc.Confirm(env.Tenant.ID, &CheckoutConfirmIn{IntentID: intent.ID}, 1)
	require.NoError(t, err)

	_, err = env.CheckoutSvc.Cancel(env.Tenant.ID, intent.ID)
	require.Error(t, err)
	assert.Equal(t, "intent_not_cancelable", apperr.CodeOf(err))
}
