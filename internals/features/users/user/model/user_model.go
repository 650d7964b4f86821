package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserName  string `gorm:"type:varchar(100);not null;column:user_name" json:"user_name"`
	UserEmail string `gorm:"type:varchar(255);not null;uniqueIndex;column:user_email" json:"user_email"`

	// disimpan sebagai hash bcrypt, tidak pernah keluar di JSON
	UserPassword string `gorm:"type:text;not null;column:user_password" json:"-"`

	// admin | instructor | student
	UserRole string `gorm:"type:varchar(20);not null;default:'student';column:user_role" json:"user_role"`

	UserPhone    *string `gorm:"type:varchar(30);column:user_phone" json:"user_phone,omitempty"`
	UserIsActive bool    `gorm:"type:boolean;not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
