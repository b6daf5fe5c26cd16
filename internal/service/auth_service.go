package service

import (
	"context"
	"errors"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrNotAdmin            = errors.New("only the administrator can access this area")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAdminNotFound       = errors.New("admin account not found, sign up first")
	ErrAccountExists       = errors.New("this admin account already exists, sign in instead")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrInvalidEmailAddress = errors.New("please enter a valid email address")
)

// AuthService 负责管理员账号的登录与注册，只有配置的管理员邮箱可以使用。
type AuthService struct {
	db         *gorm.DB
	adminEmail string
}

// NewAuthService returns an AuthService bound to the configured administrator email.
func NewAuthService(gdb *gorm.DB, adminEmail string) *AuthService {
	return &AuthService{db: gdb, adminEmail: db.NormalizeEmail(adminEmail)}
}

// AdminEmail returns the normalized administrator email.
func (s *AuthService) AdminEmail() string {
	return s.adminEmail
}

// IsAdmin reports whether email belongs to the administrator.
func (s *AuthService) IsAdmin(email string) bool {
	return s.adminEmail != "" && db.NormalizeEmail(email) == s.adminEmail
}

// ValidateCredentials 检查邮箱格式、密码长度以及是否为管理员邮箱。
func (s *AuthService) ValidateCredentials(email, password string) error {
	if !ValidEmail(email) {
		return ErrInvalidEmailAddress
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !s.IsAdmin(email) {
		return ErrNotAdmin
	}
	return nil
}

// SignIn verifies the administrator's password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*db.Profile, error) {
	if err := s.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	var profile db.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", db.NormalizeEmail(email)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, eris.Wrap(err, "loading profile")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &profile, nil
}

// SignUp creates the administrator account and grants the admin role.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*db.Profile, error) {
	if err := s.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	profile, created, err := db.EnsureAdmin(s.db.WithContext(ctx), email, password)
	if err != nil {
		return nil, eris.Wrap(err, "creating admin profile")
	}
	if !created {
		return nil, ErrAccountExists
	}
	return profile, nil
}

// AdminExists reports whether the administrator profile has been created.
func (s *AuthService) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Profile{}).Where("email = ?", s.adminEmail).Count(&count).Error; err != nil {
		return false, eris.Wrap(err, "checking admin profile")
	}
	return count > 0, nil
}

// ValidEmail 校验邮箱格式，不接受带显示名的地址。
func ValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}
