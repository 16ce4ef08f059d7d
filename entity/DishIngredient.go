package entity

import (
	"gorm.io/gorm"
)

// DishIngredient เชื่อม Dish กับ Ingredient พร้อม flag ว่าเป็นส่วนผสมหลัก
// (base ถอดออกได้, ไม่ base คือ option ที่เพิ่มได้)
type DishIngredient struct {
	gorm.Model
	DishID uint `gorm:"uniqueIndex:idx_dish_ingredient;not null" json:"dish_id"`
	Dish   Dish `json:"-"`

	IngredientID uint       `gorm:"uniqueIndex:idx_dish_ingredient;not null" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient"`

	IsBase bool `gorm:"not null;default:true" json:"is_base"`
}
