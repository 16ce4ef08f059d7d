package controllers

import (
	"errors"
	"strconv"

	"delivery-backend/pkg/resp"
	"delivery-backend/repository"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogController = categories / ingredients / dishes
// อ่านเป็น public เขียนเฉพาะ manager (คุมที่ routes)
type CatalogController struct {
	Repo    *repository.CatalogRepository
	Catalog *services.CatalogService
}

func NewCatalogController(repo *repository.CatalogRepository, catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Repo: repo, Catalog: catalog}
}

// ===== Categories =====

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	items, err := cc.Repo.ListCategories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

func (cc *CatalogController) CategoryDetail(c *gin.Context) {
	cat, err := cc.Repo.GetCategory(pathID(c))
	if err != nil {
		resp.NotFound(c, "not found")
		return
	}
	resp.OK(c, cat)
}

func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := cc.Catalog.CreateCategory(req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, cat)
}

func (cc *CatalogController) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	id := pathID(c)
	if _, err := cc.Repo.GetCategory(id); err != nil {
		resp.NotFound(c, "not found")
		return
	}
	if err := cc.Repo.UpdateCategory(id, map[string]any{"name": req.Name}); err != nil {
		resp.ServerError(c, err)
		return
	}
	cat, _ := cc.Repo.GetCategory(id)
	resp.OK(c, cat)
}

func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	id := pathID(c)
	if _, err := cc.Repo.GetCategory(id); err != nil {
		resp.NotFound(c, "not found")
		return
	}
	if err := cc.Repo.DeleteCategory(id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// ===== Ingredients =====

type IngredientRequest struct {
	Name        string `json:"name" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
}

func (cc *CatalogController) ListIngredients(c *gin.Context) {
	items, err := cc.Repo.ListIngredients()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

func (cc *CatalogController) IngredientDetail(c *gin.Context) {
	ing, err := cc.Repo.GetIngredient(pathID(c))
	if err != nil {
		resp.NotFound(c, "not found")
		return
	}
	resp.OK(c, ing)
}

func (cc *CatalogController) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	ing, err := cc.Catalog.CreateIngredient(req.Name, available)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, ing)
}

func (cc *CatalogController) UpdateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	id := pathID(c)
	if _, err := cc.Repo.GetIngredient(id); err != nil {
		resp.NotFound(c, "not found")
		return
	}
	updates := map[string]any{"name": req.Name}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if err := cc.Repo.UpdateIngredient(id, updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	ing, _ := cc.Repo.GetIngredient(id)
	resp.OK(c, ing)
}

func (cc *CatalogController) DeleteIngredient(c *gin.Context) {
	id := pathID(c)
	if _, err := cc.Repo.GetIngredient(id); err != nil {
		resp.NotFound(c, "not found")
		return
	}
	if err := cc.Repo.DeleteIngredient(id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// ===== Dishes =====

// GET /dishes?category_id= — public, จานปิดขายไปอยู่ท้าย
func (cc *CatalogController) ListDishes(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			resp.ValidationFailed(c, map[string]string{"category_id": "Must be an integer."})
			return
		}
		if n < 1 {
			resp.ValidationFailed(c, map[string]string{"category_id": "Must be a positive integer."})
			return
		}
		id := uint(n)
		categoryID = &id
	}

	items, err := cc.Repo.ListDishes(categoryID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

func (cc *CatalogController) DishDetail(c *gin.Context) {
	dish, err := cc.Repo.GetDish(pathID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, dish)
}

// POST /dishes (manager)
func (cc *CatalogController) CreateDish(c *gin.Context) {
	var req services.DishIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	dish, err := cc.Catalog.CreateDish(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, dish)
}

type UpdateDishRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Price       *decimal.Decimal        `json:"price"`
	CategoryID  *uint                   `json:"category_id"`
	IsAvailable *bool                   `json:"is_available"`
	Ingredients []services.IngredientIn `json:"ingredients_data"`
}

// PATCH /dishes/:id (manager)
func (cc *CatalogController) UpdateDish(c *gin.Context) {
	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	dish, err := cc.Catalog.UpdateDish(pathID(c), updates, req.Ingredients)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, dish)
}

// DELETE /dishes/:id (manager) — จานที่ถูกอ้างใน order จะถูกปิดขายแทนการลบ
func (cc *CatalogController) DeleteDish(c *gin.Context) {
	soft, err := cc.Catalog.DeleteDish(pathID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true, "deactivated": soft})
}
