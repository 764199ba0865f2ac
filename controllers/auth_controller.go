package controllers

import (
	"errors"
	"net/http"

	"backend/configs"
	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/resp"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type registerReq struct {
	TenantCode string `json:"tenantCode" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
}

// POST /auth/register (ลูกค้า self-service; staff/kitchen ให้ admin สร้าง)
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	var tenant entity.Tenant
	if err := ctl.DB.Where("code = ?", req.TenantCode).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "tenant_not_found")
			return
		}
		resp.FromError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.FromError(c, apperr.Internal(err))
		return
	}

	u := entity.User{TenantID: tenant.ID, Email: req.Email, Password: string(hash), Role: "customer"}
	if err := ctl.DB.Create(&u).Error; err != nil {
		resp.BadRequest(c, "email_taken")
		return
	}
	resp.Created(c, gin.H{"id": u.ID})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid_request")
		return
	}

	var u entity.User
	if err := ctl.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		resp.Unauthorized(c, "invalid_credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid_credentials")
		return
	}

	token, err := utils.GenerateToken(u.ID, u.TenantID, u.Role, ctl.Cfg.JWTSecret, ctl.Cfg.JWTTTL)
	if err != nil {
		resp.FromError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "role": u.Role, "tenantId": u.TenantID})
}
