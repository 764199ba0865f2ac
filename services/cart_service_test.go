package services

import (
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotalsComputedOnRead(t *testing.T) {
	env := newTestEnv(t)

	tableID := env.Table.ID
	cart, err := env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeDineIn, TableID: &tableID}, "")
	require.NoError(t, err)

	_, err = env.CartSvc.AddItems(env.Tenant.ID, cart.ID, []CartItemIn{{MenuItemID: env.Pizza.ID, Qty: 2}})
	require.NoError(t, err)

	out, err := env.CartSvc.Get(env.Tenant.ID, cart.ID)
	require.NoError(t, err)

	// 2 × 10.00 = 20.00, ภาษี 10% = 2.00, รวม 22.00
	assert.Equal(t, int64(2000), out.Totals.Subtotal)
	assert.Equal(t, int64(200), out.Totals.TaxAmount)
	assert.Equal(t, int64(2200), out.Totals.Total)
	assert.Equal(t, out.Totals.Subtotal+out.Totals.TaxAmount, out.Totals.Total)
}

func TestDineInRequiresTenantTable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeDineIn}, "")
	require.Error(t, err)
	assert.Equal(t, "table_required", apperr.CodeOf(err))

	// โต๊ะของ tenant อื่น = ไม่มีอยู่จริงสำหรับเรา
	otherTable := entity.DiningTable{TenantID: env.Tenant2.ID, Label: "X1"}
	require.NoError(t, env.DB.Create(&otherTable).Error)
	_, err = env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeDineIn, TableID: &otherTable.ID}, "")
	require.Error(t, err)
	assert.Equal(t, "table_not_found", apperr.CodeOf(err))
}

func TestAddItemsMergesSameItem(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t) // pizza × 2

	out, err := env.CartSvc.AddItems(env.Tenant.ID, cartID, []CartItemIn{{MenuItemID: env.Pizza.ID, Qty: 3}})
	require.NoError(t, err)

	require.Len(t, out.Cart.Items, 1) // รวมแถวเดิม ไม่งอกแถวใหม่
	assert.Equal(t, 5, out.Cart.Items[0].Qty)
	assert.Equal(t, int64(5000), out.Cart.Items[0].Total)
}

func TestAddItemsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)

	cart, err := env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeTakeaway}, "")
	require.NoError(t, err)

	// ตัวหนึ่ง available ตัวหนึ่งไม่ → ห้าม insert แม้แต่ตัวเดียว
	_, err = env.CartSvc.AddItems(env.Tenant.ID, cart.ID, []CartItemIn{
		{MenuItemID: env.Pizza.ID, Qty: 1},
		{MenuItemID: env.SoldOut.ID, Qty: 1},
	})
	require.Error(t, err)
	assert.Equal(t, "invalid_menu_items", apperr.CodeOf(err))

	out, err := env.CartSvc.Get(env.Tenant.ID, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Cart.Items)
}

func TestAddItemsRejectsForeignMenu(t *testing.T) {
	env := newTestEnv(t)

	foreign := entity.MenuItem{TenantID: env.Tenant2.ID, Name: "Foreign", Price: 100, Available: true}
	require.NoError(t, env.DB.Create(&foreign).Error)

	cart, err := env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeTakeaway}, "")
	require.NoError(t, err)

	_, err = env.CartSvc.AddItems(env.Tenant.ID, cart.ID, []CartItemIn{{MenuItemID: foreign.ID, Qty: 1}})
	require.Error(t, err)
	assert.Equal(t, "invalid_menu_items", apperr.CodeOf(err))
}

func TestUnitPriceIsSnapshot(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t)

	// ขึ้นราคาเมนูหลัง add แล้ว ยอดใน cart ต้องไม่ขยับ
	require.NoError(t, env.DB.Model(&entity.MenuItem{}).
		Where("id = ?", env.Pizza.ID).Update("price", 9999).Error)

	out, err := env.CartSvc.Get(env.Tenant.ID, cartID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), out.Totals.Subtotal)
}

func TestConfirmIsOneWay(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t)

	order, err := env.CartSvc.Confirm(env.Tenant.ID, cartID, &ConfirmCartIn{Notes: "no onions"}, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusNew, order.Status)
	assert.Equal(t, int64(2200), order.Total)
	assert.Equal(t, "no onions", order.SpecialInstructions)
	assert.NotEmpty(t, order.OrderNumber)

	// event แรก from = nil
	evs, err := env.OrderRepo.ListStatusEvents(env.Tenant.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Nil(t, evs[0].FromStatus)
	assert.Equal(t, StatusNew, evs[0].ToStatus)
	assert.Equal(t, uint(7), evs[0].ActorID)

	// cart หายไปแล้ว: ทุก operation ต่อจากนี้ = not found
	_, err = env.CartSvc.Get(env.Tenant.ID, cartID)
	assert.Equal(t, "cart_not_found", apperr.CodeOf(err))
	_, err = env.CartSvc.Confirm(env.Tenant.ID, cartID, &ConfirmCartIn{}, 7)
	assert.Equal(t, "cart_not_found", apperr.CodeOf(err))
}

func TestConfirmEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	cart, err := env.CartSvc.Start(env.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeTakeaway}, "")
	require.NoError(t, err)

	_, err = env.CartSvc.Confirm(env.Tenant.ID, cart.ID, &ConfirmCartIn{}, 1)
	require.Error(t, err)
	assert.Equal(t, "cart_empty", apperr.CodeOf(err))
}

func TestCrossTenantCartIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t) // ของ tenant 1

	_, err := env.CartSvc.Get(env.Tenant2.ID, cartID)
	require.Error(t, err)
	assert.Equal(t, "cart_not_found", apperr.CodeOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStartCartIdempotency(t *testing.T) {
	env := newTestEnv(t)

	in := &StartCartIn{OrderMode: entity.OrderModeTakeaway}
	first, err := env.CartSvc.Start(env.Tenant.ID, in, "key-1")
	require.NoError(t, err)
	second, err := env.CartSvc.Start(env.Tenant.ID, in, "key-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	env.DB.Model(&entity.Cart{}).Where("tenant_id = ?", env.Tenant.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartLineEdits(t *testing.T) {
	env := newTestEnv(t)
	cartID := env.cartWithPizza(t) // pizza × 2

	out, err := env.CartSvc.Get(env.Tenant.ID, cartID)
	require.NoError(t, err)
	itemID := out.Cart.Items[0].ID

	require.NoError(t, env.CartSvc.UpdateItemQty(env.Tenant.ID, cartID, itemID, 4))
	out, err = env.CartSvc.Get(env.Tenant.ID, cartID)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Cart.Items[0].Qty)
	assert.Equal(t, int64(4000), out.Totals.Subtotal)

	// qty 0 = ลบแถว
	require.NoError(t, env.CartSvc.UpdateItemQty(env.Tenant.ID, cartID, itemID, 0))
	out, err = env.CartSvc.Get(env.Tenant.ID, cartID)
	require.NoError(t, err)
	assert.Empty(t, out.Cart.Items)

	// Clear เทของออกแต่ cart ยังอยู่
	_, err = env.CartSvc.AddItems(env.Tenant.ID, cartID, []CartItemIn{{MenuItemID: env.Latte.ID, Qty: 3}})
	require.NoError(t, err)
	require.NoError(t, env.CartSvc.Clear(env.Tenant.ID, cartID))
	out, err = env.CartSvc.Get(env.Tenant.ID, cartID)
	require.NoError(t, err)
	assert.Empty(t, out.Cart.Items)
	assert.Equal(t, int64(0), out.Totals.Total)
}

func TestTaxRatePerTenant(t *testing.T) {
	env := newTestEnv(t)

	item := entity.MenuItem{TenantID: env.Tenant2.ID, Name: "Bowl", Price: 1000, Available: true}
	require.NoError(t, env.DB.Create(&item).Error)

	cart, err := env.CartSvc.Start(env.Tenant2.ID, &StartCartIn{OrderMode: entity.OrderModeTakeaway}, "")
	require.NoError(t, err)
	out, err := env.CartSvc.AddItems(env.Tenant2.ID, cart.ID, []CartItemIn{{MenuItemID: item.ID, Qty: 1}})
	require.NoError(t, err)

	// tenant2 ตั้ง 8%
	assert.Equal(t, int64(80), out.Totals.TaxAmount)
	assert.Equal(t, int64(1080), out.Totals.Total)
}
