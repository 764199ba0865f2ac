package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// POST /cart/start
func (h *CartController) Start(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req services.StartCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	cart, err := h.Svc.Start(tenantID, &req, c.GetHeader("Idempotency-Key"))
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, cart)
}

// POST /cart/items — add หรือ merge ทั้งก้อน
func (h *CartController) AddItems(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var req struct {
		CartID string                `json:"cartId" binding:"required"`
		Items  []services.CartItemIn `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	out, err := h.Svc.AddItems(tenantID, req.CartID, req.Items)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /cart/:id — ยอดคำนวณสดทุกครั้ง
func (h *CartController) Get(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	out, err := h.Svc.Get(tenantID, c.Param("id"))
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /cart/:id/items/qty
func (h *CartController) UpdateQty(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
		Qty    int  `json:"qty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}
	if err := h.Svc.UpdateItemQty(tenantID, c.Param("id"), body.ItemID, body.Qty); err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /cart/:id/items
func (h *CartController) RemoveItem(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}
	if err := h.Svc.RemoveItem(tenantID, c.Param("id"), body.ItemID); err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart/:id — เทของออกหมด ตะกร้ายังอยู่
func (h *CartController) Clear(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	if err := h.Svc.Clear(tenantID, c.Param("id")); err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}

// POST /orders/confirm — cart → order (one-way)
func (h *CartController) Confirm(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	actorID := utils.CurrentUserID(c)

	var req struct {
		CartID string `json:"cartId" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	order, err := h.Svc.Confirm(tenantID, req.CartID, &services.ConfirmCartIn{Notes: req.Notes}, actorID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.Created(c, order)
}
