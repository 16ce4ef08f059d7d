package repository

import (
	"time"

	"delivery-backend/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// POST /orders → สร้าง order (เรียกใน transaction เสมอ)
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// เขียน total ที่คำนวณแล้วกลับลง header ครั้งเดียว
func (r *OrderRepository) UpdateTotal(tx *gorm.DB, orderID uint, total decimal.Decimal) (int64, error) {
	res := tx.Model(&entity.Order{}).Where("id = ?", orderID).Update("total_amount", total)
	return res.RowsAffected, res.Error
}

// GET /orders (ลูกค้า) → รายการ order ของ user
type OrderSummary struct {
	ID          uint            `json:"id"`
	Status      string          `json:"status"`
	SelfPickup  bool            `json:"self_pickup"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, status, self_pickup, total_amount, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// GET /orders (staff) → ทุก order, filter ตาม status ได้
func (r *OrderRepository) ListOrders(status *entity.OrderStatus, page, limit int) ([]OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OrderSummary
	err := q.Select("id, status, self_pickup, total_amount, created_at").
		Order("id DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

// PUT status → อัปเดตสถานะแบบมี guard: WHERE status = from
// RowsAffected == 0 แปลว่า state ไม่ตรง (มีคนเปลี่ยนไปก่อนแล้ว)
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

// ---------------- Validations / Helpers ----------------

// batch lookup จานที่สั่งได้จริง อ่านราคาในนี้ที่เดียว (ใน tx เดียวกับการเขียน)
func (r *OrderRepository) FindAvailableDishes(tx *gorm.DB, ids []uint) ([]entity.Dish, error) {
	var dishes []entity.Dish
	err := tx.Where("id IN ? AND is_available = ?", ids, true).Find(&dishes).Error
	return dishes, err
}
