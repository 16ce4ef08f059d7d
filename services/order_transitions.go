package services

import (
	"errors"

	"delivery-backend/entity"

	"gorm.io/gorm"
)

// ตารางสิทธิ์ของ state machine: (from → to) → role ที่กดได้
// ไม่มี entry = ห้ามเดิน ห้ามข้าม step, terminal state ไม่มีทางออก
type transition struct {
	from entity.OrderStatus
	to   entity.OrderStatus
}

var allowedTransitions = map[transition][]entity.Role{
	{entity.StatusNew, entity.StatusPreparing}:        {entity.RoleKitchen, entity.RoleManager},
	{entity.StatusPreparing, entity.StatusDelivering}: {entity.RoleCourier, entity.RoleManager},
	{entity.StatusDelivering, entity.StatusCompleted}: {entity.RoleCourier, entity.RoleManager},
}

func transitionAllowed(from, to entity.OrderStatus, role entity.Role) bool {
	roles, ok := allowedTransitions[transition{from, to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AdvanceStatus เดิน state machine หนึ่ง step แบบมี guard
// ชนกันกลางอากาศ (status เปลี่ยนไปก่อน) → ErrConflict
func (s *OrderService) AdvanceStatus(actor Viewer, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	if !to.Valid() {
		return nil, NewValidationError("status", "Unknown status.")
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !transitionAllowed(o.Status, to, actor.Role) {
		if _, exists := allowedTransitions[transition{o.Status, to}]; exists {
			return nil, ErrForbidden
		}
		return nil, ErrConflict
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = to
	return o, nil
}
