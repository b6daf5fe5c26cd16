package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RoleAdmin marks the profile allowed to manage site content.
const RoleAdmin = "admin"

// Profile is an authenticated account. Only the administrator ever signs up.
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole grants a named role to a profile.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"index;not null" json:"user_id"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 与原有 user_roles 表保持一致。
func (UserRole) TableName() string {
	return "user_roles"
}

// NormalizeEmail lower-cases and trims an email address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureAdmin 存在性检查：若邮箱与密码均非空且不存在对应账号，则创建 bcrypt 哈希的管理员并授予 admin 角色。
func EnsureAdmin(gdb *gorm.DB, email, password string) (*Profile, bool, error) {
	trimmedEmail := NormalizeEmail(email)
	if trimmedEmail == "" || strings.TrimSpace(password) == "" {
		return nil, false, nil
	}

	if gdb == nil {
		return nil, false, errors.New("database not initialized")
	}

	var existing Profile
	err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	profile := Profile{Email: trimmedEmail, PasswordHash: string(hashed)}
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&UserRole{ProfileID: profile.ID, Role: RoleAdmin}).Error
	}); err != nil {
		return nil, false, err
	}

	return &profile, true, nil
}
