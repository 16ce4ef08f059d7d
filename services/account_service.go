package services

import (
	"context"
	"errors"
	"strings"

	"delivery-backend/entity"
	"delivery-backend/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService คือ endpoint จัดการ user ฝั่ง manager
// กฎสำคัญ: จัดการตัวเองผ่านทางนี้ไม่ได้ และการ deactivate ต้อง revoke ทุก session ทันที
type AccountService struct {
	userRepo *repository.UserRepository
	tokens   TokenStore
}

func NewAccountService(repo *repository.UserRepository, tokens TokenStore) *AccountService {
	return &AccountService{userRepo: repo, tokens: tokens}
}

func (s *AccountService) List(managerID uint) ([]entity.User, error) {
	return s.userRepo.ListExcluding(managerID)
}

func (s *AccountService) Get(managerID, targetID uint) (*entity.User, error) {
	if managerID == targetID {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.FindByID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// Create สร้าง user role อะไรก็ได้ (ต่างจาก self-register ที่ล็อกเป็น customer)
func (s *AccountService) Create(email, password, firstName, lastName string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, NewValidationError("role", "Unknown role.")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewValidationError("email", "Email already registered.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      role,
		IsActive:  true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update แก้ได้เฉพาะ role กับ is_active (ฟิลด์โปรไฟล์เป็นของเจ้าของคนเดียว)
func (s *AccountService) Update(ctx context.Context, managerID, targetID uint, role *entity.Role, isActive *bool) (*entity.User, error) {
	if managerID == targetID {
		return nil, ErrForbidden
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]any{}
	if role != nil {
		if !role.Valid() {
			return nil, NewValidationError("role", "Unknown role.")
		}
		updates["role"] = *role
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if len(updates) > 0 {
		if err := s.userRepo.Update(targetID, updates); err != nil {
			return nil, err
		}
	}

	// ปิด account = session เดิมทั้งหมดใช้ไม่ได้ทันที
	if isActive != nil && !*isActive {
		_ = s.tokens.RevokeAll(ctx, targetID)
	}

	return s.userRepo.FindByID(targetID)
}

// Delete ลบจริงเมื่อไม่มีประวัติออเดอร์ ถ้ามีให้ deactivate แทน (soft delete)
func (s *AccountService) Delete(ctx context.Context, managerID, targetID uint) error {
	if managerID == targetID {
		return ErrForbidden
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	referenced, err := s.userRepo.HasOrders(targetID)
	if err != nil {
		return err
	}

	if referenced {
		if err := s.userRepo.Update(targetID, map[string]any{"is_active": false}); err != nil {
			return err
		}
	} else {
		if err := s.userRepo.Delete(targetID); err != nil {
			return err
		}
	}

	_ = s.tokens.RevokeAll(ctx, targetID)
	return nil
}
