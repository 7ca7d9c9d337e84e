package model

import "time"

// Article 是文章在关系库中的投影记录。
// 文章正文、标签、点赞和评论的权威数据存放在文档库（见 ArticleDoc），
// 这里只镜像列表、搜索和计数所需的字段，通过 MongoID 与文档记录保持关联。
type Article struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	MongoID   string    `json:"mongo_id" gorm:"uniqueIndex;not null;size:24"`
	Title     string `json:"title" gorm:"not null;size:100"`
	Slug      string `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt   string `json:"excerpt" gorm:"size:200"`
	Status    string `json:"status" gorm:"default:draft;index;size:16"`
	AuthorID  uint   `json:"author_id" gorm:"not null;index"`
	Author    User   `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE;"`
	// 计数器通过关系库的原子自增更新，避免并发丢失
	ViewCount    int64 `json:"view_count" gorm:"default:0"`
	LikeCount    int64 `json:"like_count" gorm:"default:0"`
	CommentCount int64 `json:"comment_count" gorm:"default:0"`
}
