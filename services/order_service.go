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

type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	DishID   uint `json:"dish_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// CreateOrderReq รองรับ wire format สองแบบพร้อมกัน:
// dishes = รายการ id ล้วน (id ซ้ำ = จำนวนเพิ่ม), items_input = ระบุจำนวนเอง
type CreateOrderReq struct {
	Dishes []uint        `json:"dishes"`
	Items  []OrderItemIn `json:"items_input"`

	GuestName       string               `json:"name"`
	Phone           string               `json:"phone"`
	DeliveryAddress string               `json:"delivery_address"`
	SelfPickup      bool                 `json:"self_pickup"`
	PaymentMethod   entity.PaymentMethod `json:"payment_method"`
}

type orderLine struct {
	dishID   uint
	quantity int
}

// normalizeLines รวม dishes กับ items_input เข้าด้วยกัน
// จานซ้ำถูก merge เป็นบรรทัดเดียว จำนวนบวกกัน ลำดับตามที่เจอครั้งแรก
func normalizeLines(req *CreateOrderReq) ([]orderLine, error) {
	qty := make(map[uint]int)
	order := make([]uint, 0, len(req.Dishes)+len(req.Items))

	add := func(dishID uint, n int) {
		if _, ok := qty[dishID]; !ok {
			order = append(order, dishID)
		}
		qty[dishID] += n
	}

	for _, id := range req.Dishes {
		add(id, 1)
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, NewValidationError("items_input",
				fmt.Sprintf("Quantity for dish %d must be at least 1.", it.DishID))
		}
		add(it.DishID, it.Quantity)
	}

	if len(order) == 0 {
		return nil, NewValidationError("dishes", "Order must contain at least one item.")
	}

	lines := make([]orderLine, 0, len(order))
	for _, id := range order {
		lines = append(lines, orderLine{dishID: id, quantity: qty[id]})
	}
	return lines, nil
}

// ตรวจข้อมูลฝั่งผู้ซื้อ: guest ต้องมีชื่อ+เบอร์ และทุกออเดอร์ต้องเลือก
// delivery_address หรือ self_pickup อย่างใดอย่างหนึ่งเท่านั้น
func validateBuyer(userID *uint, req *CreateOrderReq) error {
	fields := map[string]string{}

	if userID == nil {
		if strings.TrimSpace(req.GuestName) == "" {
			fields["name"] = "Guest name is required."
		}
		if strings.TrimSpace(req.Phone) == "" {
			fields["phone"] = "Guest phone is required."
		}
	}

	if req.SelfPickup && req.DeliveryAddress != "" {
		fields["delivery_address"] = "If self_pickup is true, delivery_address must be empty."
	}
	if !req.SelfPickup && req.DeliveryAddress == "" {
		fields["delivery_address"] = "Either delivery_address must be set or self_pickup must be true."
	}

	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		fields["payment_method"] = "Unknown payment method."
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ----- Create -----

// Create ทำทุกอย่างใน transaction เดียว: อ่านราคา ณ ตอน commit,
// สร้าง header + items พร้อม snapshot, เขียน total, และทางลัด self-pickup
// ล้มตรงไหนก็ไม่มีอะไรถูกเขียนลง DB
func (s *OrderService) Create(userID *uint, req *CreateOrderReq) (*entity.Order, error) {
	lines, err := normalizeLines(req)
	if err != nil {
		return nil, err
	}
	if err := validateBuyer(userID, req); err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}

	var out *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, len(lines))
		for i, ln := range lines {
			ids[i] = ln.dishID
		}

		dishes, err := s.Repo.FindAvailableDishes(tx, ids)
		if err != nil {
			return err
		}
		dishMap := make(map[uint]entity.Dish, len(dishes))
		for _, d := range dishes {
			dishMap[d.ID] = d
		}

		// รายงานทุก id ที่หายหรือปิดขาย ไม่ใช่แค่ตัวแรก
		missing := make([]int, 0)
		for _, ln := range lines {
			if _, ok := dishMap[ln.dishID]; !ok {
				missing = append(missing, int(ln.dishID))
			}
		}
		if len(missing) > 0 {
			sort.Ints(missing)
			parts := make([]string, len(missing))
			for i, id := range missing {
				parts[i] = fmt.Sprint(id)
			}
			return NewValidationError("dishes",
				"Unknown or unavailable dish ids: "+strings.Join(parts, ", ")+".")
		}

		order := entity.Order{
			UserID:          userID,
			GuestName:       strings.TrimSpace(req.GuestName),
			Phone:           strings.TrimSpace(req.Phone),
			DeliveryAddress: req.DeliveryAddress,
			SelfPickup:      req.SelfPickup,
			PaymentMethod:   method,
			Status:          entity.StatusNew,
			TotalAmount:     decimal.Zero,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, ln := range lines {
			d := dishMap[ln.dishID]
			lineTotal := d.Price.Mul(decimal.NewFromInt(int64(ln.quantity))).Round(2)
			oi := entity.OrderItem{
				OrderID:   order.ID,
				DishID:    d.ID,
				Name:      d.Name,
				UnitPrice: d.Price,
				Quantity:  ln.quantity,
				LineTotal: lineTotal,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
			total = total.Add(lineTotal)
		}

		if _, err := s.Repo.UpdateTotal(tx, order.ID, total); err != nil {
			return err
		}
		order.TotalAmount = total

		// self-pickup จ่ายทันที ข้าม stage ขนส่งทั้งหมด
		if order.SelfPickup {
			paid := entity.StatusPaidCash
			if method == entity.PaymentCredit {
				paid = entity.StatusPaidCredit
			}
			affected, err := s.Repo.UpdateStatusGuard(tx, order.ID, entity.StatusNew, paid)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrConflict
			}
			order.Status = paid
		}

		out = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ----- Read -----

// Viewer คือคนที่กำลังเรียกดู (nil = anonymous)
type Viewer struct {
	UserID uint
	Role   entity.Role
}

// Detail บังคับ ownership: staff ดูได้ทุกออเดอร์, customer ดูของตัวเอง,
// guest order (ไม่มี user ผูก) เปิด public ให้ guest ตามสถานะได้
func (s *OrderService) Detail(viewer *Viewer, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch {
	case viewer != nil && viewer.Role.Staff():
		return o, nil
	case o.UserID == nil:
		return o, nil
	case viewer != nil && *o.UserID == viewer.UserID:
		return o, nil
	default:
		// ซ่อนการมีอยู่ของออเดอร์คนอื่น
		return nil, ErrNotFound
	}
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderListOut struct {
	Items []repository.OrderSummary `json:"items"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

func (s *OrderService) ListAll(status *entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	if status != nil && !status.Valid() {
		return nil, NewValidationError("status", "Unknown status.")
	}
	items, total, err := s.Repo.ListOrders(status, page, limit)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}
