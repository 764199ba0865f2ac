package configs

import (
	"backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.Tenant{}, &entity.DiningTable{}, &entity.MenuItem{}, &entity.User{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusEvent{},
		&entity.PaymentIntent{}, &entity.PaymentEvent{}, &entity.PaymentRefund{}, &entity.PaymentSplit{},
		&entity.TenantPaymentConfig{},
		&entity.IdempotencyRecord{},
	)
}
