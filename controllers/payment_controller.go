package controllers

import (
	"encoding/json"
	"io"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// POST /payments/intents
func (h *PaymentController) CreateIntent(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req services.CreateIntentIn
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

// POST /payments/capture — idempotent
func (h *PaymentController) Capture(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req struct {
		IntentID              string `json:"intentId" binding:"required"`
		ProviderTransactionID string `json:"providerTransactionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	intent, err := h.Svc.Capture(tenantID, req.IntentID, req.ProviderTransactionID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, intent)
}

// POST /payments/refund
func (h *PaymentController) Refund(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req services.RefundIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	rf, err := h.Svc.Refund(tenantID, &req)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, rf)
}

// POST /payments/split — validate แล้ว persist แบบ best-effort
func (h *PaymentController) Split(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req services.SplitIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	out, err := h.Svc.Split(tenantID, &req)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /payments/intents/:id/emit-event
func (h *PaymentController) EmitEvent(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req struct {
		EventType string          `json:"eventType" binding:"required"`
		Payload   json.RawMessage `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	out, err := h.Svc.EmitEvent(tenantID, c.Param("id"), req.EventType, req.Payload)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /payments/webhook/:provider — ตอบ 202 เสมอ (ห้ามให้ sender retry เพราะ storage เรา)
func (h *PaymentController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		payload = nil
	}
	h.Svc.HandleWebhook(c.Param("provider"), payload)
	resp.Accepted(c, gin.H{"received": true})
}
