package entity

import (
	"gorm.io/gorm"
)

type Ingredient struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// เผื่อวัตถุดิบหมดสต็อกชั่วคราว
	IsAvailable bool `gorm:"not null;default:true" json:"is_available"`

	DishLinks []DishIngredient `json:"-"`
}
