package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArticleDoc 是文章在文档库中的权威记录。
type ArticleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Excerpt   string             `bson:"excerpt" json:"excerpt"`
	Slug      string             `bson:"slug" json:"slug"`
	Status    string             `bson:"status" json:"status"`
	Tags      []string           `bson:"tags" json:"tags"`
	Thumbnail string             `bson:"thumbnail,omitempty" json:"thumbnail"`
	// 预计阅读时长（分钟），按每分钟 200 词估算
	ReadTime  int              `bson:"readTime" json:"read_time"`
	AuthorID  uint             `bson:"authorId" json:"author_id"`
	Likes     []uint           `bson:"likes" json:"likes"`
	Comments  []ArticleComment `bson:"comments" json:"comments"`
	CreatedAt time.Time        `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time        `bson:"updatedAt" json:"updated_at"`
}

// ArticleComment 内嵌在文章文档中的评论，只增不改
type ArticleComment struct {
	UserID    uint      `bson:"userId" json:"user_id"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// LikedBy 判断指定用户是否已点赞
func (a *ArticleDoc) LikedBy(userID uint) bool {
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
