package testutils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
)

// FakeDocStore 是文章文档仓储的内存实现，测试中替代真实文档库
type FakeDocStore struct {
	mu   sync.Mutex
	docs map[string]*model.ArticleDoc

	// InsertErr 非 nil 时 Insert 返回该错误，用于构造写入失败场景
	InsertErr error
}

func NewFakeDocStore() *FakeDocStore {
	return &FakeDocStore{docs: make(map[string]*model.ArticleDoc)}
}

var _ repository.ArticleDocStore = (*FakeDocStore)(nil)

func (f *FakeDocStore) Insert(ctx context.Context, doc *model.ArticleDoc) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InsertErr != nil {
		return "", f.InsertErr
	}

	doc.ID = primitive.NewObjectID()
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Likes == nil {
		doc.Likes = []uint{}
	}
	if doc.Comments == nil {
		doc.Comments = []model.ArticleComment{}
	}

	copied := *doc
	f.docs[doc.ID.Hex()] = &copied
	return doc.ID.Hex(), nil
}

func (f *FakeDocStore) FindByID(ctx context.Context, hexID string) (*model.ArticleDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := primitive.ObjectIDFromHex(hexID); err != nil {
		return nil, repository.ErrDocNotFound
	}
	doc, ok := f.docs[hexID]
	if !ok {
		return nil, repository.ErrDocNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f *FakeDocStore) FindBySlug(ctx context.Context, slug string) (*model.ArticleDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.docs {
		if doc.Slug == slug {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, repository.ErrDocNotFound
}

func (f *FakeDocStore) UpdateByID(ctx context.Context, hexID string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[hexID]
	if !ok {
		return repository.ErrDocNotFound
	}
	for k, v := range updates {
		switch k {
		case "title":
			doc.Title = v.(string)
		case "content":
			doc.Content = v.(string)
		case "excerpt":
			doc.Excerpt = v.(string)
		case "slug":
			doc.Slug = v.(string)
		case "status":
			doc.Status = v.(string)
		case "tags":
			doc.Tags = v.([]string)
		case "thumbnail":
			doc.Thumbnail = v.(string)
		case "readTime":
			doc.ReadTime = v.(int)
		}
	}
	doc.UpdatedAt = time.Now()
	return nil
}

func (f *FakeDocStore) DeleteByID(ctx context.Context, hexID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[hexID]; !ok {
		return repository.ErrDocNotFound
	}
	delete(f.docs, hexID)
	return nil
}

func (f *FakeDocStore) AddLike(ctx context.Context, hexID string, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[hexID]
	if !ok {
		return repository.ErrDocNotFound
	}
	for _, id := range doc.Likes {
		if id == userID {
			return nil
		}
	}
	doc.Likes = append(doc.Likes, userID)
	return nil
}

func (f *FakeDocStore) RemoveLike(ctx context.Context, hexID string, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[hexID]
	if !ok {
		return repository.ErrDocNotFound
	}
	kept := doc.Likes[:0]
	for _, id := range doc.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	doc.Likes = kept
	return nil
}

func (f *FakeDocStore) AppendComment(ctx context.Context, hexID string, comment model.ArticleComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[hexID]
	if !ok {
		return repository.ErrDocNotFound
	}
	doc.Comments = append(doc.Comments, comment)
	doc.UpdatedAt = time.Now()
	return nil
}

func (f *FakeDocStore) ListIDsByTag(ctx context.Context, tag string, status string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []string
	for id, doc := range f.docs {
		if status != "" && doc.Status != status {
			continue
		}
		for _, t := range doc.Tags {
			if t == tag {
				ids = append(ids, id)
				break
			}
		}
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	return ids, nil
}
