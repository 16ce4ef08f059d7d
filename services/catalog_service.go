package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"delivery-backend/entity"
	"delivery-backend/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService คุมงานเขียนเมนูฝั่ง manager (อ่านเป็น public ผ่าน repo ตรง ๆ)
type CatalogService struct {
	DB   *gorm.DB
	Repo *repository.CatalogRepository
}

func NewCatalogService(db *gorm.DB, repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{DB: db, Repo: repo}
}

// ----- DTOs from Controller -----

type IngredientIn struct {
	IngredientID uint `json:"ingredient_id" binding:"required"`
	IsBase       *bool `json:"is_base"`
}

type DishIn struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uint            `json:"category_id" binding:"required"`
	IsAvailable *bool           `json:"is_available"`
	Ingredients []IngredientIn  `json:"ingredients_data"`
}

// ตรวจ payload ส่วนผสมก่อนเขียน: ห้ามซ้ำ ห้ามอ้าง id ที่ไม่มี
// รายงานทุกตัวที่ผิดในครั้งเดียว
func (s *CatalogService) validateIngredients(items []IngredientIn) error {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]bool, len(items))
	dup := make(map[uint]bool)

	for _, it := range items {
		ids = append(ids, it.IngredientID)
		if seen[it.IngredientID] {
			dup[it.IngredientID] = true
		}
		seen[it.IngredientID] = true
	}

	if len(dup) > 0 {
		return NewValidationError("ingredients_data", "Duplicate ingredient ids: "+joinIDs(dup)+".")
	}

	found, err := s.Repo.ExistingIngredientIDs(ids)
	if err != nil {
		return err
	}
	foundSet := make(map[uint]bool, len(found))
	for _, id := range found {
		foundSet[id] = true
	}
	missing := make(map[uint]bool)
	for _, id := range ids {
		if !foundSet[id] {
			missing[id] = true
		}
	}
	if len(missing) > 0 {
		return NewValidationError("ingredients_data", "Unknown ingredient ids: "+joinIDs(missing)+".")
	}
	return nil
}

func joinIDs(set map[uint]bool) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}

// ----- Dishes -----

func (s *CatalogService) CreateDish(in *DishIn) (*entity.Dish, error) {
	if in.Price.IsNegative() {
		return nil, NewValidationError("price", "Price must not be negative.")
	}
	if _, err := s.Repo.GetCategory(in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("category_id", "Unknown category.")
		}
		return nil, err
	}
	if cnt, err := s.Repo.CountDishesByName(in.Name, 0); err != nil {
		return nil, err
	} else if cnt > 0 {
		return nil, NewValidationError("name", "Dish name already exists.")
	}
	if len(in.Ingredients) > 0 {
		if err := s.validateIngredients(in.Ingredients); err != nil {
			return nil, err
		}
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	dish := entity.Dish{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price.Round(2),
		IsAvailable: available,
		CategoryID:  in.CategoryID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateDish(tx, &dish); err != nil {
			return err
		}
		for _, it := range in.Ingredients {
			isBase := true
			if it.IsBase != nil {
				isBase = *it.IsBase
			}
			di := entity.DishIngredient{DishID: dish.ID, IngredientID: it.IngredientID, IsBase: isBase}
			if err := s.Repo.CreateDishIngredient(tx, &di); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetDish(dish.ID)
}

// UpdateDish แก้ฟิลด์พื้นฐาน และถ้าส่ง ingredients_data มาให้แทนที่ทั้งชุด
func (s *CatalogService) UpdateDish(dishID uint, updates map[string]any, ingredients []IngredientIn) (*entity.Dish, error) {
	if _, err := s.Repo.GetDish(dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name, ok := updates["name"].(string); ok {
		if cnt, err := s.Repo.CountDishesByName(name, dishID); err != nil {
			return nil, err
		} else if cnt > 0 {
			return nil, NewValidationError("name", "Dish name already exists.")
		}
	}
	if price, ok := updates["price"].(decimal.Decimal); ok {
		if price.IsNegative() {
			return nil, NewValidationError("price", "Price must not be negative.")
		}
		updates["price"] = price.Round(2)
	}
	if ingredients != nil {
		if err := s.validateIngredients(ingredients); err != nil {
			return nil, err
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.Repo.UpdateDish(tx, dishID, updates); err != nil {
				return err
			}
		}
		if ingredients != nil {
			if err := s.Repo.ClearDishIngredients(tx, dishID); err != nil {
				return err
			}
			for _, it := range ingredients {
				isBase := true
				if it.IsBase != nil {
					isBase = *it.IsBase
				}
				di := entity.DishIngredient{DishID: dishID, IngredientID: it.IngredientID, IsBase: isBase}
				if err := s.Repo.CreateDishIngredient(tx, &di); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetDish(dishID)
}

// DeleteDish ลบจริงเมื่อไม่เคยถูกสั่ง ถ้ามี order history ให้ปิดขายแทน
// (order เก่ายังอ่านชื่อ/ราคา snapshot ได้ตามเดิม)
func (s *CatalogService) DeleteDish(dishID uint) (softDeleted bool, err error) {
	if _, err := s.Repo.GetDish(dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	referenced, err := s.Repo.DishReferenced(dishID)
	if err != nil {
		return false, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if referenced {
			return s.Repo.UpdateDish(tx, dishID, map[string]any{"is_available": false})
		}
		if err := s.Repo.ClearDishIngredients(tx, dishID); err != nil {
			return err
		}
		return s.Repo.DeleteDish(tx, dishID)
	})
	return referenced, err
}

// ----- Categories / Ingredients -----

func (s *CatalogService) CreateCategory(name string) (*entity.Category, error) {
	cat := entity.Category{Name: strings.TrimSpace(name)}
	if cat.Name == "" {
		return nil, NewValidationError("name", "Name is required.")
	}
	if err := s.Repo.CreateCategory(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) CreateIngredient(name string, available bool) (*entity.Ingredient, error) {
	ing := entity.Ingredient{Name: strings.TrimSpace(name), IsAvailable: available}
	if ing.Name == "" {
		return nil, NewValidationError("name", "Name is required.")
	}
	if err := s.Repo.CreateIngredient(&ing); err != nil {
		return nil, err
	}
	return &ing, nil
}
