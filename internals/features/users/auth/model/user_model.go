package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

/* ===================== Roles ===================== */

const (
	RoleAdmin  = "admin"
	RoleBursar = "bursar"
	RoleViewer = "viewer"
)

/* ===================== Model ===================== */

type User struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserUsername     string `gorm:"column:user_username;type:varchar(60);not null;uniqueIndex" json:"user_username"`
	UserPasswordHash string `gorm:"column:user_password_hash;not null" json:"-"`
	UserFullName     string `gorm:"column:user_full_name;type:varchar(120)" json:"user_full_name"`
	UserRole         string `gorm:"column:user_role;type:varchar(20);not null;default:'admin'" json:"user_role"`
	UserIsActive     bool   `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	CreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.UserPasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.UserPasswordHash), []byte(plain)) == nil
}
