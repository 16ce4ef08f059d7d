package configs

import (
	"log"

	"delivery-backend/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// สร้าง manager คนแรกจาก env (ข้ามถ้าไม่ตั้งค่า หรือมีอยู่แล้ว)
func SeedManager(email, pass string) error {
	db := DB()
	if email == "" || pass == "" {
		log.Println("skip seeding manager: missing MANAGER_EMAIL/MANAGER_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("manager already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	manager := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Manager",
		LastName:  "Seed",
		Role:      entity.RoleManager,
		IsActive:  true,
	}
	return db.Create(&manager).Error
}

// Seed เมนูตัวอย่างไว้ลองยิง API (เปิดด้วย SEED_DEMO=1)
func SeedDemoCatalog() error {
	db := DB()

	var pizza, salad, drink entity.Category
	db.FirstOrCreate(&pizza, entity.Category{Name: "Pizza"})
	db.FirstOrCreate(&salad, entity.Category{Name: "Salads"})
	db.FirstOrCreate(&drink, entity.Category{Name: "Drinks"})

	var cheese, tomato, basil entity.Ingredient
	db.FirstOrCreate(&cheese, entity.Ingredient{Name: "Cheese"})
	db.FirstOrCreate(&tomato, entity.Ingredient{Name: "Tomato"})
	db.FirstOrCreate(&basil, entity.Ingredient{Name: "Basil"})

	dishes := []entity.Dish{
		{Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: decimal.NewFromFloat(9.50), IsAvailable: true, CategoryID: pizza.ID},
		{Name: "Caprese Salad", Description: "Tomato and mozzarella", Price: decimal.NewFromFloat(6.00), IsAvailable: true, CategoryID: salad.ID},
		{Name: "Lemonade", Description: "House lemonade", Price: decimal.NewFromFloat(2.50), IsAvailable: true, CategoryID: drink.ID},
	}
	for i := range dishes {
		if err := db.Where("name = ?", dishes[i].Name).FirstOrCreate(&dishes[i]).Error; err != nil {
			return err
		}
	}

	for _, ing := range []entity.Ingredient{tomato, cheese, basil} {
		db.FirstOrCreate(&entity.DishIngredient{}, entity.DishIngredient{DishID: dishes[0].ID, IngredientID: ing.ID, IsBase: true})
	}

	log.Println("demo catalog seeded")
	return nil
}
