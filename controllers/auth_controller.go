package controllers

import (
	"errors"
	"net/http"

	"delivery-backend/pkg/resp"
	"delivery-backend/services"
	"delivery-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
type UpdateMeRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Register(req.Email, req.Password, req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			resp.ValidationFailed(c, ve.Fields)
			return
		}
		resp.Unauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": user})
}

// POST /auth/logout — ปิด session ปัจจุบัน
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.Auth.Logout(c.Request.Context(), utils.CurrentUserID(c), utils.CurrentJTI(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"logged_out": true})
}

// POST /auth/logout-all — ปิดทุก session ของตัวเอง
func (a *AuthController) LogoutAll(c *gin.Context) {
	if err := a.Auth.LogoutAll(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"logged_out": true})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, user)
}

// PATCH /auth/me — แก้โปรไฟล์ตัวเอง role แก้ไม่ได้จากทางนี้
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}

	user, err := a.Auth.UpdateProfile(utils.CurrentUserID(c), updates)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, user)
}
