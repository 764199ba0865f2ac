package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"backend/cache"
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/logger"
	"backend/repository"
	"backend/routes"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	appLog := logger.New()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if os.Getenv("SKIP_SEED") == "" {
		if err := configs.SeedDemoTenant(cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	// Repositories
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	payRepo := repository.NewPaymentRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	// Idempotency: redis ถ้าต่อได้, ไม่งั้น fallback DB
	var idem repository.IdempotencyStore = repository.NewDBIdempotencyStore(db)
	if rdb := configs.ConnectRedis(cfg.RedisAddr); rdb != nil {
		idem = cache.NewRedisIdempotencyStore(rdb, 24*time.Hour)
		appLog.Info("BOOT", "idempotency store: redis")
	} else {
		appLog.Info("BOOT", "idempotency store: db")
	}

	// KDS hub
	hub := ws.NewKDSHub()
	go hub.Run()

	// Services
	cartSvc := services.NewCartService(db, cartRepo, orderRepo, menuRepo, idem)
	orderSvc := services.NewOrderService(db, orderRepo, appLog)
	orderSvc.Notifier = hub
	providers := services.NewProviderRegistry()
	paySvc := services.NewPaymentService(db, payRepo, providers, idem, appLog)
	checkoutSvc := services.NewCheckoutService(db, cartSvc, paySvc, payRepo, cartRepo, orderRepo)
	kdsSvc := services.NewKDSService(orderRepo, orderSvc)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.RateLimit())

	routes.RegisterRoutes(r, cfg, routes.Controllers{
		Auth:     controllers.NewAuthController(db, cfg),
		Cart:     controllers.NewCartController(cartSvc),
		Order:    controllers.NewOrderController(orderSvc),
		Payment:  controllers.NewPaymentController(paySvc),
		Checkout: controllers.NewCheckoutController(checkoutSvc),
		KDS:      controllers.NewKDSController(kdsSvc),
		KDSHub:   hub,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
