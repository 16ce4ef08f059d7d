package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"delivery-backend/entity"
	"delivery-backend/repository"
	"delivery-backend/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService จัดการ business logic ของการ register/login/session
type AuthService struct {
	userRepo  *repository.UserRepository
	tokens    TokenStore
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, tokens TokenStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		tokens:    tokens,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register สร้าง user ใหม่ role เป็น customer เสมอ ถ้า email ซ้ำจะ error
func (s *AuthService) Register(email, password, firstName, lastName, phone string) (*entity.User, error) {
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
		Email:       email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		PhoneNumber: strings.TrimSpace(phone),
		Role:        entity.RoleCustomer,
		IsActive:    true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT + บันทึก session
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	// user ที่ถูก deactivate ห้ามเข้าระบบ
	if !user.IsActive {
		return "", nil, errors.New("account is deactivated")
	}

	token, jti, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	if err := s.tokens.Save(ctx, user.ID, jti, s.jwtTTL); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout ปิดเฉพาะ session ที่ใช้เรียกอยู่
func (s *AuthService) Logout(ctx context.Context, userID uint, jti string) error {
	return s.tokens.Revoke(ctx, userID, jti)
}

// LogoutAll ปิดทุก session ของ user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	return s.tokens.RevokeAll(ctx, userID)
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

// UpdateProfile อัปเดตข้อมูลตัวเอง (role แก้ไม่ได้จาก endpoint นี้)
func (s *AuthService) UpdateProfile(userID uint, updates map[string]any) (*entity.User, error) {
	delete(updates, "role")
	delete(updates, "is_active")

	if pw, ok := updates["password"].(string); ok {
		if pw == "" {
			delete(updates, "password")
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
			if err != nil {
				return nil, errors.New("hash password failed")
			}
			updates["password"] = string(hashed)
		}
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindByID(userID)
}
