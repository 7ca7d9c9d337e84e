package model

import "time"

// Message 私信记录。会话身份由 {SenderID, RecipientID} 无序对确定。
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SenderID    uint      `json:"sender_id" gorm:"not null;index"`
	RecipientID uint   `json:"recipient_id" gorm:"not null;index"`
	Content     string `json:"content" gorm:"not null;size:1000"`
	// Read 由收件人拉取消息这一动作本身置位（读即回执）
	Read      bool   `json:"read" gorm:"column:is_read;default:false"`
	Sender    User   `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE;"`
	Recipient User   `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE;"`
	Files     []File `json:"files" gorm:"foreignKey:MessageID"`
}
