package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model

	// ลูกค้าที่ล็อกอิน (nil = guest checkout)
	UserID *uint `json:"user_id,omitempty"`
	User   *User `json:"-"`

	// ข้อมูลติดต่อ guest — snapshot ลงออเดอร์ตรง ๆ
	GuestName string `json:"guest_name,omitempty"`
	Phone     string `json:"phone"`

	// delivery_address กับ self_pickup ต้องมีอย่างใดอย่างหนึ่งเท่านั้น
	DeliveryAddress string `json:"delivery_address,omitempty"`
	SelfPickup      bool   `gorm:"not null;default:false" json:"self_pickup"`

	PaymentMethod PaymentMethod `gorm:"not null;default:cash" json:"payment_method"`
	Status        OrderStatus   `gorm:"not null;default:new" json:"status"`

	// cache ของ Σ line_total เขียนครั้งเดียวใน transaction สร้างออเดอร์
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
