package model

import "time"

// File 描述一个已上传到对象存储的资源。
// 本服务只登记元数据与 URL，不负责上传本身。
type File struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"not null"`
	URL       string `json:"url" gorm:"not null"`
	Type      string `json:"type" gorm:"not null;size:128"`
	Size      int64  `json:"size" gorm:"not null"`
	AuthorID  uint   `json:"author_id" gorm:"not null;index"`
	// 可选归属：发出的私信或文章（文档库 ID）
	MessageID *uint   `json:"message_id" gorm:"index"`
	ArticleID *string `json:"article_id" gorm:"index;size:24"`
}
