package services

import (
	"testing"

	"delivery-backend/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedIngredient(t *testing.T, db *gorm.DB, name string) entity.Ingredient {
	t.Helper()
	ing := entity.Ingredient{Name: name, IsAvailable: true}
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

func TestCreateDish_WithIngredients(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(t, db)
	cat := seedCategory(t, db, "Pizza")
	cheese := seedIngredient(t, db, "Cheese")
	olives := seedIngredient(t, db, "Olives")

	optional := false
	dish, err := svc.CreateDish(&DishIn{
		Name:       "Margherita",
		Price:      decimal.RequireFromString("9.505"),
		CategoryID: cat.ID,
		Ingredients: []IngredientIn{
			{IngredientID: cheese.ID},
			{IngredientID: olives.ID, IsBase: &optional},
		},
	})
	require.NoError(t, err)

	// ปัดราคาเป็นสองตำแหน่งตอนเขียน
	assert.True(t, dish.Price.Equal(decimal.RequireFromString("9.51")), "got %s", dish.Price)
	require.Len(t, dish.Ingredients, 2)
	assert.True(t, dish.Ingredients[0].IsBase)
	assert.False(t, dish.Ingredients[1].IsBase)
	assert.True(t, dish.IsAvailable)
}

func TestCreateDish_ValidatesIngredientPayload(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(t, db)
	cat := seedCategory(t, db, "Pizza")
	cheese := seedIngredient(t, db, "Cheese")

	tests := []struct {
		name        string
		ingredients []IngredientIn
		wantMsg     string
	}{
		{
			name: "duplicate ingredient ids",
			ingredients: []IngredientIn{
				{IngredientID: cheese.ID},
				{IngredientID: cheese.ID},
			},
			wantMsg: "Duplicate ingredient ids: 1.",
		},
		{
			name: "unknown ingredient ids reported together",
			ingredients: []IngredientIn{
				{IngredientID: cheese.ID},
				{IngredientID: 50},
				{IngredientID: 51},
			},
			wantMsg: "Unknown ingredient ids: 50, 51.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDish(&DishIn{
				Name:        "Quattro " + tt.name,
				Price:       decimal.RequireFromString("10.00"),
				CategoryID:  cat.ID,
				Ingredients: tt.ingredients,
			})
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Fields["ingredients_data"])
		})
	}

	// payload พังต้องไม่ทิ้ง dish ครึ่ง ๆ กลาง ๆ ไว้
	assert.Zero(t, countRows(t, db, &entity.Dish{}))
}

func TestCreateDish_RejectsBadFields(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(t, db)
	cat := seedCategory(t, db, "Pizza")
	seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	_, err := svc.CreateDish(&DishIn{Name: "Margherita", Price: decimal.RequireFromString("1.00"), CategoryID: cat.ID})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")

	_, err = svc.CreateDish(&DishIn{Name: "Diavola", Price: decimal.RequireFromString("-1.00"), CategoryID: cat.ID})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "price")

	_, err = svc.CreateDish(&DishIn{Name: "Diavola", Price: decimal.RequireFromString("1.00"), CategoryID: 99})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "category_id")
}

func TestDeleteDish_HardDeleteWhenUnreferenced(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	soft, err := svc.DeleteDish(dish.ID)
	require.NoError(t, err)
	assert.False(t, soft)

	var cnt int64
	require.NoError(t, db.Unscoped().Model(&entity.Dish{}).Where("id = ?", dish.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestDeleteDish_SoftDeleteWhenOrdered(t *testing.T) {
	db := openTestDB(t)
	catalogSvc := newCatalogService(t, db)
	orderSvc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	order, err := orderSvc.Create(nil, deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 2}}))
	require.NoError(t, err)

	soft, err := catalogSvc.DeleteDish(dish.ID)
	require.NoError(t, err)
	assert.True(t, soft)

	// จานยังอยู่ แค่ปิดขาย
	var stored entity.Dish
	require.NoError(t, db.First(&stored, dish.ID).Error)
	assert.False(t, stored.IsAvailable)

	// ออเดอร์เก่ายัง resolve snapshot ได้ครบ
	var item entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, "Margherita", item.Name)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("9.50")))
	assert.True(t, item.LineTotal.Equal(decimal.RequireFromString("19.00")))

	// และจานที่ปิดขายแล้วสั่งใหม่ไม่ได้
	_, err = orderSvc.Create(nil, deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 1}}))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = catalogSvc.DeleteDish(404)
	assert.ErrorIs(t, err, ErrNotFound)
}
