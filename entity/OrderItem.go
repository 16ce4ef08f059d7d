package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model

	OrderID uint  `gorm:"uniqueIndex:idx_order_dish;not null" json:"order_id"`
	Order   Order `json:"-"`

	// ลบ Dish ที่ถูกอ้างไม่ได้ — ฝั่ง service จะ soft-delete แทน
	DishID uint `gorm:"uniqueIndex:idx_order_dish;not null" json:"dish_id"`
	Dish   Dish `json:"-"`

	// snapshot ณ เวลาสั่ง ราคาเมนูเปลี่ยนทีหลังไม่กระทบออเดอร์เก่า
	Name      string          `gorm:"not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}
