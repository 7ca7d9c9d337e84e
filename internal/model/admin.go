package model

import "time"

// Admin 管理员身份与普通用户完全分表存储，
// 仅能通过离线引导命令创建（main.go 的 -create-admin）。
type Admin struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `json:"username" gorm:"unique;not null"`
	Email     string `json:"email" gorm:"unique;index;size:255"`
	Password  string `json:"-" gorm:"not null"`
	Name      string `json:"name" gorm:"size:50"`
	Avatar    string `json:"avatar"`
}
