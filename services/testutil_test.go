package services

import (
	"fmt"
	"testing"

	"delivery-backend/entity"
	"delivery-backend/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB เปิด sqlite in-memory แยกต่อ test
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Ingredient{},
		&entity.Dish{}, &entity.DishIngredient{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func newOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	return NewOrderService(db, repository.NewOrderRepository(db))
}

func newCatalogService(t *testing.T, db *gorm.DB) *CatalogService {
	t.Helper()
	return NewCatalogService(db, repository.NewCatalogRepository(db))
}

func seedCategory(t *testing.T, db *gorm.DB, name string) entity.Category {
	t.Helper()
	cat := entity.Category{Name: name}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func seedDish(t *testing.T, db *gorm.DB, categoryID uint, name string, price string, available bool) entity.Dish {
	t.Helper()
	d := entity.Dish{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(&d).Error)
	if !available {
		// default:true ของ gorm จะทับค่า false ตอน insert เลยต้อง update ซ้ำ
		require.NoError(t, db.Model(&entity.Dish{}).Where("id = ?", d.ID).Update("is_available", false).Error)
		d.IsAvailable = false
	}
	return d
}

func seedUser(t *testing.T, db *gorm.DB, email string, role entity.Role) entity.User {
	t.Helper()
	u := entity.User{
		Email:     email,
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// deliveryReq คือออเดอร์ guest แบบส่งถึงบ้านที่ valid แล้ว เอาไว้แก้ทีละฟิลด์ในแต่ละเคส
func deliveryReq(items []OrderItemIn) *CreateOrderReq {
	return &CreateOrderReq{
		Items:           items,
		GuestName:       "Olha",
		Phone:           "+380501234567",
		DeliveryAddress: "1 Khreshchatyk St",
	}
}
