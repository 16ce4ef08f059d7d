package controllers

import (
	"strconv"

	"delivery-backend/entity"
	"delivery-backend/pkg/resp"
	"delivery-backend/services"
	"delivery-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// currentViewer คืน nil ถ้าเป็น anonymous (ผ่าน OptionalAuth มาแบบไม่มี token)
func currentViewer(c *gin.Context) *services.Viewer {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		return nil
	}
	return &services.Viewer{UserID: uid, Role: utils.CurrentRole(c)}
}

// ===== Create Order =====

// POST /orders — ลูกค้าที่ล็อกอินหรือ guest ก็สั่งได้
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var userID *uint
	if uid := utils.CurrentUserID(c); uid != 0 {
		userID = &uid
	}

	order, err := oc.Orders.Create(userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, order)
}

// ===== Read =====

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := oc.Orders.Detail(currentViewer(c), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /orders — staff เห็นทุกออเดอร์ (filter ?status= ได้), ลูกค้าเห็นของตัวเอง
func (oc *OrderController) List(c *gin.Context) {
	viewer := currentViewer(c)
	if viewer == nil {
		resp.Unauthorized(c, "missing or invalid token")
		return
	}

	if viewer.Role.Staff() {
		var status *entity.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := entity.OrderStatus(raw)
			status = &s
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		out, err := oc.Orders.ListAll(status, page, limit)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		resp.OK(c, out)
		return
	}

	items, err := oc.Orders.ListForUser(viewer.UserID, 50)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// ===== Mutations =====

// PATCH/PUT/DELETE /orders/:id — ออเดอร์แก้และลบไม่ได้ total เป็น immutable
func (oc *OrderController) NotAllowed(c *gin.Context) {
	resp.MethodNotAllowed(c, "orders cannot be modified")
}

type AdvanceStatusRequest struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// POST /orders/:id/status — staff เดิน state machine ทีละ step
func (oc *OrderController) AdvanceStatus(c *gin.Context) {
	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	actor := services.Viewer{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
	order, err := oc.Orders.AdvanceStatus(actor, uint(id), req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}
