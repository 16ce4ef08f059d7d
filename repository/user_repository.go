package repository

import (
	"delivery-backend/entity"

	"gorm.io/gorm"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// สร้าง user ใหม่
func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

// อัปเดต user
func (r *UserRepository) Update(userID uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// รายชื่อ user ทั้งหมด ยกเว้นคนที่เรียกเอง (management endpoint ห้ามแก้ตัวเอง)
func (r *UserRepository) ListExcluding(selfID uint) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.Where("id <> ?", selfID).Order("id ASC").Find(&users).Error
	return users, err
}

// HasOrders = user มีประวัติออเดอร์ → ลบจริงไม่ได้ ต้อง deactivate แทน
func (r *UserRepository) HasOrders(userID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Order{}).Where("user_id = ?", userID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *UserRepository) Delete(userID uint) error {
	return r.DB.Unscoped().Delete(&entity.User{}, userID).Error
}
