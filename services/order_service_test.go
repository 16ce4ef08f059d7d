package services

import (
	"testing"

	"delivery-backend/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_SnapshotsPricesAndTotals(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	margherita := seedDish(t, db, cat.ID, "Margherita", "9.50", true)
	lemonade := seedDish(t, db, cat.ID, "Lemonade", "2.50", true)
	user := seedUser(t, db, "customer@example.com", entity.RoleCustomer)

	order, err := svc.Create(&user.ID, deliveryReq([]OrderItemIn{
		{DishID: margherita.ID, Quantity: 2},
		{DishID: lemonade.ID, Quantity: 3},
	}))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusNew, order.Status)
	require.Len(t, order.Items, 2)

	// line_total = unit_price × quantity และ total = Σ line_total
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.RequireFromString("19.00")),
		"got %s", order.Items[0].LineTotal)
	assert.True(t, order.Items[1].LineTotal.Equal(decimal.RequireFromString("7.50")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("26.50")),
		"got %s", order.TotalAmount)

	// snapshot ชื่อ + ราคา
	assert.Equal(t, "Margherita", order.Items[0].Name)
	assert.True(t, order.Items[0].UnitPrice.Equal(margherita.Price))

	// total ใน DB ตรงกับที่คืนมา
	var stored entity.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.True(t, stored.TotalAmount.Equal(order.TotalAmount))

	// ขึ้นราคาทีหลัง ออเดอร์เก่าต้องไม่ขยับ
	require.NoError(t, db.Model(&entity.Dish{}).Where("id = ?", margherita.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.50")))
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("26.50")))
}

func TestCreateOrder_MergesDuplicateDishes(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	// id ซ้ำใน dishes = จำนวนเพิ่ม และ items_input รวมเข้า line เดียวกัน
	req := deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 1}})
	req.Dishes = []uint{dish.ID, dish.ID}

	order, err := svc.Create(nil, req)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("28.50")))
}

func TestCreateOrder_EmptyBasket(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)

	_, err := svc.Create(nil, deliveryReq(nil))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["dishes"], "at least one item")
}

func TestCreateOrder_ReportsEveryBadDish(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	ok := seedDish(t, db, cat.ID, "Margherita", "9.50", true)
	soldOut := seedDish(t, db, cat.ID, "Calzone", "8.00", false)

	_, err := svc.Create(nil, deliveryReq([]OrderItemIn{
		{DishID: ok.ID, Quantity: 1},
		{DishID: soldOut.ID, Quantity: 1},
		{DishID: 777, Quantity: 1},
	}))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["dishes"], "Unknown or unavailable dish ids")
	assert.Contains(t, ve.Fields["dishes"], "777")
	assert.Contains(t, ve.Fields["dishes"], "2") // soldOut.ID

	// atomicity: ห้ามมี row ใดถูกเขียนเลย
	assert.Zero(t, countRows(t, db, &entity.Order{}))
	assert.Zero(t, countRows(t, db, &entity.OrderItem{}))
}

func TestCreateOrder_RejectsBadQuantity(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	_, err := svc.Create(nil, deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 0}}))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["items_input"], "at least 1")
	assert.Zero(t, countRows(t, db, &entity.Order{}))
}

func TestCreateOrder_GuestValidation(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	tests := []struct {
		name      string
		mutate    func(req *CreateOrderReq)
		wantField string
	}{
		{
			name:      "missing guest name",
			mutate:    func(r *CreateOrderReq) { r.GuestName = "" },
			wantField: "name",
		},
		{
			name:      "missing guest phone",
			mutate:    func(r *CreateOrderReq) { r.Phone = "" },
			wantField: "phone",
		},
		{
			name: "address and self_pickup both set",
			mutate: func(r *CreateOrderReq) {
				r.SelfPickup = true
			},
			wantField: "delivery_address",
		},
		{
			name: "neither address nor self_pickup",
			mutate: func(r *CreateOrderReq) {
				r.DeliveryAddress = ""
			},
			wantField: "delivery_address",
		},
		{
			name: "unknown payment method",
			mutate: func(r *CreateOrderReq) {
				r.PaymentMethod = "barter"
			},
			wantField: "payment_method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 1}})
			tt.mutate(req)

			_, err := svc.Create(nil, req)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantField)
		})
	}

	assert.Zero(t, countRows(t, db, &entity.Order{}))
}

func TestCreateOrder_SelfPickupPaidShortcut(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	tests := []struct {
		name       string
		method     entity.PaymentMethod
		selfPickup bool
		want       entity.OrderStatus
	}{
		{"self-pickup cash", entity.PaymentCash, true, entity.StatusPaidCash},
		{"self-pickup credit", entity.PaymentCredit, true, entity.StatusPaidCredit},
		{"self-pickup default method", "", true, entity.StatusPaidCash},
		{"delivery stays new", entity.PaymentCash, false, entity.StatusNew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 1}})
			req.PaymentMethod = tt.method
			if tt.selfPickup {
				req.SelfPickup = true
				req.DeliveryAddress = ""
			}

			order, err := svc.Create(nil, req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.Status)

			var stored entity.Order
			require.NoError(t, db.First(&stored, order.ID).Error)
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}

func TestDetail_Ownership(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(t, db)
	cat := seedCategory(t, db, "Pizza")
	dish := seedDish(t, db, cat.ID, "Margherita", "9.50", true)

	owner := seedUser(t, db, "owner@example.com", entity.RoleCustomer)
	other := seedUser(t, db, "other@example.com", entity.RoleCustomer)
	kitchen := seedUser(t, db, "kitchen@example.com", entity.RoleKitchen)

	mine, err := svc.Create(&owner.ID, deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 1}}))
	require.NoError(t, err)
	guest, err := svc.Create(nil, deliveryReq([]OrderItemIn{{DishID: dish.ID, Quantity: 1}}))
	require.NoError(t, err)

	// เจ้าของอ่านได้
	_, err = svc.Detail(&Viewer{UserID: owner.ID, Role: entity.RoleCustomer}, mine.ID)
	assert.NoError(t, err)

	// ลูกค้าคนอื่นต้องเจอ 404 ไม่ใช่ 403 (ซ่อนการมีอยู่)
	_, err = svc.Detail(&Viewer{UserID: other.ID, Role: entity.RoleCustomer}, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// staff อ่านได้ทุกออเดอร์
	_, err = svc.Detail(&Viewer{UserID: kitchen.ID, Role: entity.RoleKitchen}, mine.ID)
	assert.NoError(t, err)

	// guest order เปิด public
	_, err = svc.Detail(nil, guest.ID)
	assert.NoError(t, err)

	// แต่ order ของ user ล็อกอิน anonymous มองไม่เห็น
	_, err = svc.Detail(nil, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Detail(nil, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
