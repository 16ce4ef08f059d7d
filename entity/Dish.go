package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name        string          `gorm:"uniqueIndex;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	// ปิดขายชั่วคราว (และใช้แทนการลบ เมื่อจานถูกอ้างใน order history)
	IsAvailable bool `gorm:"not null;default:true" json:"is_available"`

	CategoryID uint     `json:"category_id"`
	Category   Category `json:"-"` // preload เฉพาะตอน detail

	Ingredients []DishIngredient `json:"ingredients,omitempty"`
	OrderItems  []OrderItem      `json:"-"`
}
