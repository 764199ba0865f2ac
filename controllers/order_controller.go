package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders/:id/status
func (h *OrderController) SetStatus(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	actorID := utils.CurrentUserID(c)
	orderID := paramUint(c, "id")

	var req services.AdvanceStatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	out, err := h.Svc.AdvanceStatus(tenantID, orderID, &req, actorID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /orders/:id/emit-status — ต่อประวัติอย่างเดียว ไม่แตะ header
func (h *OrderController) EmitStatus(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	actorID := utils.CurrentUserID(c)
	orderID := paramUint(c, "id")

	var req struct {
		ToStatus string `json:"toStatus" binding:"required"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	ev, err := h.Svc.EmitStatusEvent(tenantID, orderID, req.ToStatus, req.Note, actorID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, ev)
}

// GET /orders/:id/status — timeline เรียงเวลา
func (h *OrderController) Timeline(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	orderID := paramUint(c, "id")

	out, err := h.Svc.Timeline(tenantID, orderID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	orderID := paramUint(c, "id")

	out, err := h.Svc.Detail(tenantID, orderID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders?status=&limit=
func (h *OrderController) List(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.Svc.List(tenantID, c.Query("status"), limit)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}

func paramUint(c *gin.Context, key string) uint {
	v, _ := strconv.ParseUint(c.Param(key), 10, 64)
	return uint(v)
}
