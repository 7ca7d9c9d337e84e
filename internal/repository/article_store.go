package repository

import (
	"context"
	"log"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
)

// ArticleStore 把文章的文档库权威记录和关系库投影合并成单一写入口。
// 写入顺序固定为先文档后投影：创建时投影写入失败会回删文档，
// 保证不会出现"投影有、文档无"的悬挂记录。
type ArticleStore interface {
	CreateArticle(ctx context.Context, doc *model.ArticleDoc) (string, error)
	UpdateArticle(ctx context.Context, mongoID string, docUpdates map[string]interface{}, mirrorUpdates map[string]interface{}) error
	DeleteArticle(ctx context.Context, mongoID string) error
	Doc() ArticleDocStore
	Mirror() ArticleMirrorStore
}

type articleStore struct {
	doc    ArticleDocStore
	mirror ArticleMirrorStore
}

func (s *articleStore) Doc() ArticleDocStore {
	return s.doc
}

func (s *articleStore) Mirror() ArticleMirrorStore {
	return s.mirror
}

// CreateArticle 先写文档库，再写关系库投影。
// 投影创建失败时补偿删除刚写入的文档，调用方只会看到两边都成功或都失败。
func (s *articleStore) CreateArticle(ctx context.Context, doc *model.ArticleDoc) (string, error) {
	mongoID, err := s.doc.Insert(ctx, doc)
	if err != nil {
		return "", err
	}

	mirror := &model.Article{
		MongoID:  mongoID,
		Title:    doc.Title,
		Slug:     doc.Slug,
		Excerpt:  doc.Excerpt,
		Status:   doc.Status,
		AuthorID: doc.AuthorID,
	}
	if err := s.mirror.Create(mirror); err != nil {
		// 补偿：回删文档，失败时仅记录，后续可人工清理
		if compErr := s.doc.DeleteByID(ctx, mongoID); compErr != nil {
			log.Printf("⚠️ 文章补偿删除失败 mongoID=%s: %v", mongoID, compErr)
		}
		return "", err
	}

	return mongoID, nil
}

// UpdateArticle 先更新文档，再同步投影字段
func (s *articleStore) UpdateArticle(ctx context.Context, mongoID string, docUpdates map[string]interface{}, mirrorUpdates map[string]interface{}) error {
	if err := s.doc.UpdateByID(ctx, mongoID, docUpdates); err != nil {
		return err
	}
	if len(mirrorUpdates) == 0 {
		return nil
	}
	if err := s.mirror.UpdateByMongoID(mongoID, mirrorUpdates); err != nil {
		// 文档已更新而投影落后，记录以便核对
		log.Printf("⚠️ 文章投影同步失败 mongoID=%s: %v", mongoID, err)
		return err
	}
	return nil
}

// DeleteArticle 先删文档，再删投影
func (s *articleStore) DeleteArticle(ctx context.Context, mongoID string) error {
	if err := s.doc.DeleteByID(ctx, mongoID); err != nil {
		return err
	}
	if err := s.mirror.DeleteByMongoID(mongoID); err != nil {
		log.Printf("⚠️ 文章投影删除失败 mongoID=%s: %v", mongoID, err)
		return err
	}
	return nil
}
