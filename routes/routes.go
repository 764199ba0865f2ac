package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
	Checkout *controllers.CheckoutController
	KDS      *controllers.KDSController
	KDSHub   *ws.KDSHub
}

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, ctl Controllers) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	staff := middlewares.AuthMiddleware(cfg.JWTSecret, "staff", "manager", "admin")
	kitchen := middlewares.AuthMiddleware(cfg.JWTSecret, "kitchen", "staff", "manager", "admin")

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", ctl.Auth.Register)
		a.POST("/login", ctl.Auth.Login)
	}

	// Cart (ทุก role ที่ login แล้ว; tenant มาจาก claims)
	cart := r.Group("/cart", auth)
	{
		cart.POST("/start", ctl.Cart.Start)
		cart.POST("/items", ctl.Cart.AddItems)
		cart.GET("/:id", ctl.Cart.Get)
		cart.PATCH("/:id/items/qty", ctl.Cart.UpdateQty)
		cart.DELETE("/:id/items", ctl.Cart.RemoveItem)
		cart.DELETE("/:id", ctl.Cart.Clear)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.POST("/confirm", ctl.Cart.Confirm)
		orders.GET("", ctl.Order.List)
		orders.GET("/:id", ctl.Order.Detail)
		orders.GET("/:id/status", ctl.Order.Timeline)
	}
	ordersStaff := r.Group("/orders", staff)
	{
		ordersStaff.POST("/:id/status", ctl.Order.SetStatus)
		ordersStaff.POST("/:id/emit-status", ctl.Order.EmitStatus)
	}

	// Checkout (pre-paid path)
	checkout := r.Group("/checkout", auth)
	{
		checkout.POST("/create-intent", ctl.Checkout.CreateIntent)
		checkout.POST("/confirm", ctl.Checkout.Confirm)
		checkout.POST("/cancel", ctl.Checkout.Cancel)
	}

	// Payments (หน้าเคาน์เตอร์)
	payments := r.Group("/payments", staff)
	{
		payments.POST("/intents", ctl.Payment.CreateIntent)
		payments.POST("/capture", ctl.Payment.Capture)
		payments.POST("/refund", ctl.Payment.Refund)
		payments.POST("/split", ctl.Payment.Split)
		payments.POST("/intents/:id/emit-event", ctl.Payment.EmitEvent)
	}
	// webhook: ฝั่ง provider ยิงเข้า ไม่มี JWT; ตอบ 202 เสมอ
	r.POST("/payments/webhook/:provider", ctl.Payment.Webhook)

	// KDS
	kds := r.Group("/kds", kitchen)
	{
		kds.GET("/orders", ctl.KDS.Lanes)
		kds.GET("/lanes", ctl.KDS.Lanes)
		kds.POST("/orders/:id/advance", ctl.KDS.Advance)
	}

	// realtime lane updates สำหรับจอครัว
	r.GET("/ws/kds", kitchen, ctl.KDSHub.Serve)
}
