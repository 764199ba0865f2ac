package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: s}
}

// POST /checkout/create-intent — intent ยอดเท่า cart ปัจจุบัน
func (h *CheckoutController) CreateIntent(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req services.CheckoutIntentIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	intent, err := h.Svc.CreateIntent(tenantID, &req, c.GetHeader("Idempotency-Key"))
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, intent)
}

// POST /checkout/confirm — capture + materialize order เป็น paid ในหน่วยเดียว
func (h *CheckoutController) Confirm(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	actorID := utils.CurrentUserID(c)

	var req services.CheckoutConfirmIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	out, err := h.Svc.Confirm(tenantID, &req, actorID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /checkout/cancel
func (h *CheckoutController) Cancel(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req struct {
		IntentID string `json:"intentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	intent, err := h.Svc.Cancel(tenantID, req.IntentID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, intent)
}
