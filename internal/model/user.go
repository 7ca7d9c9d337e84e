package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Username  string         `json:"username" gorm:"unique;not null"`
	Email     string         `json:"email" gorm:"unique;index;size:255"`
	Password  string         `json:"-" gorm:"not null"`
	Name      string         `json:"name" gorm:"size:50"`
	Bio       string         `json:"bio" gorm:"size:500"`
	Avatar    string         `json:"avatar"`
	// 邮箱验证：注册时生成一次性令牌，验证成功后清空
	EmailVerified     bool      `json:"email_verified" gorm:"default:false"`
	VerificationToken string    `json:"-" gorm:"index;size:64"`
	Articles          []Article `json:"-" gorm:"foreignKey:AuthorID"`
}

// UserSummary 对外暴露的用户摘要（消息列表、用户搜索等场景）
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}
