package entity

// Role คือ closed set ของบทบาทผู้ใช้ในระบบ
type Role string

const (
	RoleManager  Role = "manager"
	RoleKitchen  Role = "kitchen"
	RoleCourier  Role = "courier"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleKitchen, RoleCourier, RoleCustomer:
		return true
	}
	return false
}

// Staff = ฝั่งร้าน (manager/kitchen/courier) ไม่ใช่ลูกค้า
func (r Role) Staff() bool {
	return r == RoleManager || r == RoleKitchen || r == RoleCourier
}
