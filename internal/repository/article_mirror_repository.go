package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
)

// ArticleMirrorStore 操作文章在关系库中的投影记录
type ArticleMirrorStore interface {
	Create(article *model.Article) error
	FindByMongoID(mongoID string) (*model.Article, error)
	UpdateByMongoID(mongoID string, updates map[string]interface{}) error
	DeleteByMongoID(mongoID string) error
	List(status string, authorID uint, keyword string, offset int, limit int) ([]model.Article, int64, error)
	ListByMongoIDs(mongoIDs []string) ([]model.Article, error)
	IncrementViewCount(mongoID string) error
	AddLikeCount(mongoID string, delta int) error
	IncrementCommentCount(mongoID string) error
	SlugExists(slug string) (bool, error)
	CountByAuthor(authorID uint) (int64, error)
	CountAll() (int64, error)
}

type ArticleMirrorRepository struct {
	db *gorm.DB
}

func (r *ArticleMirrorRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

func (r *ArticleMirrorRepository) FindByMongoID(mongoID string) (*model.Article, error) {
	var article model.Article
	if err := r.db.Where("mongo_id = ?", mongoID).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleMirrorRepository) UpdateByMongoID(mongoID string, updates map[string]interface{}) error {
	return r.db.Model(&model.Article{}).Where("mongo_id = ?", mongoID).Updates(updates).Error
}

func (r *ArticleMirrorRepository) DeleteByMongoID(mongoID string) error {
	return r.db.Where("mongo_id = ?", mongoID).Delete(&model.Article{}).Error
}

// List 按状态、作者和关键字分页列出投影记录，按创建时间倒序
func (r *ArticleMirrorRepository) List(status string, authorID uint, keyword string, offset int, limit int) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	query := r.db.Model(&model.Article{}).Preload("Author")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if authorID != 0 {
		query = query.Where("author_id = ?", authorID)
	}
	kw := strings.TrimSpace(keyword)
	if kw != "" {
		query = query.Where("title LIKE ? OR excerpt LIKE ?", "%"+kw+"%", "%"+kw+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *ArticleMirrorRepository) ListByMongoIDs(mongoIDs []string) ([]model.Article, error) {
	var articles []model.Article
	if len(mongoIDs) == 0 {
		return articles, nil
	}
	if err := r.db.Preload("Author").Where("mongo_id IN ?", mongoIDs).Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// IncrementViewCount 使用数据库侧自增，避免并发读改写丢失
func (r *ArticleMirrorRepository) IncrementViewCount(mongoID string) error {
	return r.db.Model(&model.Article{}).Where("mongo_id = ?", mongoID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *ArticleMirrorRepository) AddLikeCount(mongoID string, delta int) error {
	return r.db.Model(&model.Article{}).Where("mongo_id = ?", mongoID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func (r *ArticleMirrorRepository) IncrementCommentCount(mongoID string) error {
	return r.db.Model(&model.Article{}).Where("mongo_id = ?", mongoID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
}

func (r *ArticleMirrorRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ArticleMirrorRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Article{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ArticleMirrorRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Article{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
