package services

import (
	"fmt"
	"testing"

	"backend/entity"
	"backend/pkg/logger"
	"backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// env รวมทุกอย่างที่ test ต้องใช้ บน sqlite in-memory แยกต่อ test
type testEnv struct {
	DB *gorm.DB

	CartRepo  *repository.CartRepository
	OrderRepo *repository.OrderRepository
	PayRepo   *repository.PaymentRepository
	MenuRepo  *repository.MenuRepository

	CartSvc     *CartService
	OrderSvc    *OrderService
	PaySvc      *PaymentService
	CheckoutSvc *CheckoutService
	KDSSvc      *KDSService

	Tenant  entity.Tenant // demo tenant ภาษี 10%
	Tenant2 entity.Tenant // ไม่มี payment config ไว้เทส isolation/not-configured
	Table   entity.DiningTable
	Pizza   entity.MenuItem // 10.00
	Latte   entity.MenuItem // 4.50
	SoldOut entity.MenuItem // unavailable
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Tenant{}, &entity.DiningTable{}, &entity.MenuItem{}, &entity.User{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusEvent{},
		&entity.PaymentIntent{}, &entity.PaymentEvent{}, &entity.PaymentRefund{}, &entity.PaymentSplit{},
		&entity.TenantPaymentConfig{}, &entity.IdempotencyRecord{},
	))

	env := &testEnv{DB: db}

	env.Tenant = entity.Tenant{Code: "t1", Name: "Tenant One", TaxRateBps: 1000, Currency: "usd"}
	require.NoError(t, db.Create(&env.Tenant).Error)
	env.Tenant2 = entity.Tenant{Code: "t2", Name: "Tenant Two", TaxRateBps: 800, Currency: "usd"}
	require.NoError(t, db.Create(&env.Tenant2).Error)

	env.Table = entity.DiningTable{TenantID: env.Tenant.ID, Label: "T42"}
	require.NoError(t, db.Create(&env.Table).Error)

	env.Pizza = entity.MenuItem{TenantID: env.Tenant.ID, Name: "Pizza", Price: 1000, Available: true}
	env.Latte = entity.MenuItem{TenantID: env.Tenant.ID, Name: "Latte", Price: 450, Available: true}
	env.SoldOut = entity.MenuItem{TenantID: env.Tenant.ID, Name: "Special", Price: 1800, Available: false}
	require.NoError(t, db.Create(&env.Pizza).Error)
	require.NoError(t, db.Create(&env.Latte).Error)
	require.NoError(t, db.Create(&env.SoldOut).Error)

	require.NoError(t, db.Create(&entity.TenantPaymentConfig{
		TenantID: env.Tenant.ID,
		Provider: entity.ProviderMock,
		Currency: "usd",
		Enabled:  true,
	}).Error)

	env.CartRepo = repository.NewCartRepository(db)
	env.OrderRepo = repository.NewOrderRepository(db)
	env.PayRepo = repository.NewPaymentRepository(db)
	env.MenuRepo = repository.NewMenuRepository(db)
	idem := repository.NewDBIdempotencyStore(db)
	log := logger.New()

	env.CartSvc = NewCartService(db, env.CartRepo, env.OrderRepo, env.MenuRepo, idem)
	env.OrderSvc = NewOrderService(db, env.OrderRepo, log)
	env.PaySvc = NewPaymentService(db, env.PayRepo, NewProviderRegistry(), idem, log)
	env.CheckoutSvc = NewCheckoutService(db, env.CartSvc, env.PaySvc, env.PayRepo, env.CartRepo, env.OrderRepo)
	env.KDSSvc = NewKDSService(env.OrderRepo, env.OrderSvc)

	return env
}

// ทางลัด: cart dine_in โต๊ะ T42 พร้อม pizza 2 ชิ้น
func (e *testEnv) cartWithPizza(t *testing.T) string {
	t.Helper()
	tableID := e.Table.ID
	cart, err := e.CartSvc.Start(e.Tenant.ID, &StartCartIn{OrderMode: entity.OrderModeDineIn, TableID: &tableID}, "")
	require.NoError(t, err)
	_, err = e.CartSvc.AddItems(e.Tenant.ID, cart.ID, []CartItemIn{{MenuItemID: e.Pizza.ID, Qty: 2}})
	require.NoError(t, err)
	return cart.ID
}

// ทางลัด: confirm cart ออกมาเป็น order สถานะ new
func (e *testEnv) confirmedOrder(t *testing.T) *entity.Order {
	t.Helper()
	cartID := e.cartWithPizza(t)
	order, err := e.CartSvc.Confirm(e.Tenant.ID, cartID, &ConfirmCartIn{}, 1)
	require.NoError(t, err)
	return order
}
