package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type KDSController struct{ Svc *services.KDSService }

func NewKDSController(s *services.KDSService) *KDSController { return &KDSController{Svc: s} }

// GET /kds/lanes (และ /kds/orders ให้ข้อมูลชุดเดียวกัน)
func (h *KDSController) Lanes(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)

	out, err := h.Svc.Lanes(tenantID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /kds/orders/:id/advance — ครัวเลื่อนได้แค่ preparing/ready/served
func (h *KDSController) Advance(c *gin.Context) {
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

	out, err := h.Svc.Advance(tenantID, orderID, req.ToStatus, req.Note, actorID)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, out)
}
