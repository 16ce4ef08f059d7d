package services

import (
	"testing"

	"delivery-backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, svc *OrderService, dishID uint) *entity.Order {
	t.Helper()
	order, err := svc.Create(nil, deliveryReq([]OrderItemIn{{DishID: dishID, Quantity: 1}}))
	require.NoError(t, err)
	return order
}

func TestAdvanceStatus_LegalChain(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)
	order := placeOrder(t, svc, dish.ID)

	kitchen := Viewer{UserID: 1, Role: entity.RoleKitchen}
	courier := Viewer{UserID: 2, Role: entity.RoleCourier}

	o, err := svc.AdvanceStatus(kitchen, order.ID, entity.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, o.Status)

	o, err = svc.AdvanceStatus(courier, order.ID, entity.StatusDelivering)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivering, o.Status)

	o, err = svc.AdvanceStatus(courier, order.ID, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, o.Status)

	// terminal แล้ว ไปไหนต่อไม่ได้
	_, err = svc.AdvanceStatus(courier, order.ID, entity.StatusDelivering)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdvanceStatus_NoSkips(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)
	order := placeOrder(t, svc, dish.ID)

	manager := Viewer{UserID: 1, Role: entity.RoleManager}

	// new → delivering ข้าม preparing ไม่ได้ แม้เป็น manager
	_, err := svc.AdvanceStatus(manager, order.ID, entity.StatusDelivering)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.AdvanceStatus(manager, order.ID, entity.StatusCompleted)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdvanceStatus_RoleGate(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)
	order := placeOrder(t, svc, dish.ID)

	courier := Viewer{UserID: 1, Role: entity.RoleCourier}
	kitchen := Viewer{UserID: 2, Role: entity.RoleKitchen}

	// courier กดรับเข้าครัวไม่ได้ มี transition นี้อยู่แต่ role ไม่ถูก → forbidden
	_, err := svc.AdvanceStatus(courier, order.ID, entity.StatusPreparing)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AdvanceStatus(kitchen, order.ID, entity.StatusPreparing)
	require.NoError(t, err)

	// kitchen ส่งของเองไม่ได้
	_, err = svc.AdvanceStatus(kitchen, order.ID, entity.StatusDelivering)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdvanceStatus_UnknownOrderAndStatus(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	manager := Viewer{UserID: 1, Role: entity.RoleManager}

	_, err := svc.AdvanceStatus(manager, 42, entity.StatusPreparing)
	assert.ErrorIs(t, err, ErrNotFound)

	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)
	order := placeOrder(t, svc, dish.ID)

	_, err = svc.AdvanceStatus(manager, order.ID, "teleported")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
