package entity

// OrderStatus เป็น state machine:
//
//	new → preparing → delivering → completed
//
// ทางลัดสำหรับ self-pickup: new → paid_credit | paid_cash (ไม่ผ่าน courier)
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusPaidCredit OrderStatus = "paid_credit"
	StatusPaidCash   OrderStatus = "paid_cash"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPreparing, StatusDelivering, StatusCompleted, StatusPaidCredit, StatusPaidCash:
		return true
	}
	return false
}

// Terminal = ไม่มีทางออกจาก state นี้แล้ว
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusPaidCredit || s == StatusPaidCash
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCredit
}
