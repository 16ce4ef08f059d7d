package controllers

import (
	"strconv"

	"delivery-backend/entity"
	"delivery-backend/pkg/resp"
	"delivery-backend/services"
	"delivery-backend/utils"

	"github.com/gin-gonic/gin"
)

// UserController = จัดการ user คนอื่น ๆ ฝั่ง manager (ตัวเองต้องใช้ /auth/me)
type UserController struct {
	Accounts *services.AccountService
}

func NewUserController(accounts *services.AccountService) *UserController {
	return &UserController{Accounts: accounts}
}

type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=6"`
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Role      entity.Role `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Role     *entity.Role `json:"role"`
	IsActive *bool        `json:"is_active"`
}

func pathID(c *gin.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}

// GET /users
func (u *UserController) List(c *gin.Context) {
	users, err := u.Accounts.List(utils.CurrentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": users})
}

// GET /users/:id
func (u *UserController) Detail(c *gin.Context) {
	user, err := u.Accounts.Get(utils.CurrentUserID(c), pathID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, user)
}

// POST /users
func (u *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := u.Accounts.Create(req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, user)
}

// PATCH /users/:id — แก้ได้เฉพาะ role / is_active
func (u *UserController) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := u.Accounts.Update(c.Request.Context(), utils.CurrentUserID(c), pathID(c), req.Role, req.IsActive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /users/:id — soft delete ถ้า user มีประวัติออเดอร์
func (u *UserController) Delete(c *gin.Context) {
	if err := u.Accounts.Delete(c.Request.Context(), utils.CurrentUserID(c), pathID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
