package repository

import (
	"delivery-backend/entity"

	"gorm.io/gorm"
)

// CatalogRepository ดูแล Category / Ingredient / Dish / DishIngredient
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ---------------- Categories ----------------

func (r *CatalogRepository) ListCategories() ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetCategory(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CatalogRepository) CreateCategory(cat *entity.Category) error {
	return r.DB.Create(cat).Error
}

func (r *CatalogRepository) UpdateCategory(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Category{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CatalogRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&entity.Category{}, id).Error
}

// ---------------- Ingredients ----------------

func (r *CatalogRepository) ListIngredients() ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	err := r.DB.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetIngredient(id uint) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	if err := r.DB.First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *CatalogRepository) CreateIngredient(ing *entity.Ingredient) error {
	return r.DB.Create(ing).Error
}

func (r *CatalogRepository) UpdateIngredient(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Ingredient{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CatalogRepository) DeleteIngredient(id uint) error {
	return r.DB.Delete(&entity.Ingredient{}, id).Error
}

// ids ไหนมีอยู่จริงบ้าง (ใช้ validate payload ส่วนผสมของจาน)
func (r *CatalogRepository) ExistingIngredientIDs(ids []uint) ([]uint, error) {
	var found []uint
	err := r.DB.Model(&entity.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}

// ---------------- Dishes ----------------

// เมนูทั้งหมด จานที่ปิดขายไปอยู่ท้ายรายการ
func (r *CatalogRepository) ListDishes(categoryID *uint) ([]entity.Dish, error) {
	var out []entity.Dish
	q := r.DB.Preload("Ingredients.Ingredient").Order("is_available DESC, name ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetDish(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.Preload("Ingredients.Ingredient").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *CatalogRepository) CreateDish(tx *gorm.DB, d *entity.Dish) error {
	return tx.Create(d).Error
}

func (r *CatalogRepository) UpdateDish(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Dish{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CatalogRepository) DeleteDish(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Dish{}, id).Error
}

func (r *CatalogRepository) CountDishesByName(name string, excludeID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Dish{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&cnt).Error
	return cnt, err
}

// ---------------- Dish ingredients ----------------

func (r *CatalogRepository) CreateDishIngredient(tx *gorm.DB, di *entity.DishIngredient) error {
	return tx.Create(di).Error
}

// แทนที่ส่วนผสมทั้งชุดของจาน
func (r *CatalogRepository) ClearDishIngredients(tx *gorm.DB, dishID uint) error {
	return tx.Unscoped().Where("dish_id = ?", dishID).Delete(&entity.DishIngredient{}).Error
}

// DishReferenced = จานถูกอ้างใน order history หรือยัง
func (r *CatalogRepository) DishReferenced(dishID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.OrderItem{}).Where("dish_id = ?", dishID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
