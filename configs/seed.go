package configs

import (
	"log"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// สร้าง tenant ตัวอย่างครั้งแรก (dev เท่านั้น ข้ามได้ด้วย SKIP_SEED=1)
func SeedDemoTenant(cfg *Config) error {
	db := DB()

	var count int64
	db.Model(&entity.Tenant{}).Where("code = ?", "demo").Count(&count)
	if count > 0 {
		log.Println("ℹ️ demo tenant already exists")
		return nil
	}

	tenant := entity.Tenant{
		Code:       "demo",
		Name:       "Demo Bistro",
		TaxRateBps: cfg.DefaultTaxRateBps,
		Currency:   "usd",
	}
	if err := db.Create(&tenant).Error; err != nil {
		return err
	}

	// tables
	for _, label := range []string{"T1", "T2", "T3", "T42"} {
		db.Create(&entity.DiningTable{TenantID: tenant.ID, Label: label})
	}

	// menu
	db.Create(&entity.MenuItem{TenantID: tenant.ID, Name: "Margherita Pizza", Price: 1000, Available: true})
	db.Create(&entity.MenuItem{TenantID: tenant.ID, Name: "Pad Thai", Price: 1250, Available: true})
	db.Create(&entity.MenuItem{TenantID: tenant.ID, Name: "Iced Latte", Price: 450, Available: true})
	db.Create(&entity.MenuItem{TenantID: tenant.ID, Name: "Seasonal Special", Price: 1800, Available: false})

	// payment config (mock provider)
	db.Create(&entity.TenantPaymentConfig{
		TenantID:       tenant.ID,
		Provider:       entity.ProviderMock,
		Currency:       "usd",
		EnabledMethods: "card,cash",
		Enabled:        true,
	})

	return SeedUsers(tenant.ID)
}

func SeedUsers(tenantID uint) error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("⚠️ skip seeding users: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{TenantID: tenantID, Email: email, Password: string(hash), Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	kHash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	kitchen := entity.User{TenantID: tenantID, Email: "kitchen+" + email, Password: string(kHash), Role: "kitchen"}
	return db.Create(&kitchen).Error
}
