package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"` // bcrypt hash
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `gorm:"not null;default:customer" json:"role"`

	// ปิด account แล้ว login ไม่ได้ และ session เดิมถูก revoke ทันที
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// Relations — preload เฉพาะตอนจำเป็น
	Orders []Order `json:"-"`
}
