package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
)

// ErrDocNotFound 文档库中不存在目标文章
var ErrDocNotFound = errors.New("article document not found")

// ArticleDocStore 操作文章在文档库中的权威记录。
// 点赞和评论使用文档库的原子更新算子，多个写者并发时不会互相覆盖。
type ArticleDocStore interface {
	Insert(ctx context.Context, doc *model.ArticleDoc) (string, error)
	FindByID(ctx context.Context, hexID string) (*model.ArticleDoc, error)
	FindBySlug(ctx context.Context, slug string) (*model.ArticleDoc, error)
	UpdateByID(ctx context.Context, hexID string, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, hexID string) error
	AddLike(ctx context.Context, hexID string, userID uint) error
	RemoveLike(ctx context.Context, hexID string, userID uint) error
	AppendComment(ctx context.Context, hexID string, comment model.ArticleComment) error
	ListIDsByTag(ctx context.Context, tag string, status string, limit int) ([]string, error)
}

type ArticleDocRepository struct {
	coll *mongo.Collection
}

func (r *ArticleDocRepository) Insert(ctx context.Context, doc *model.ArticleDoc) (string, error) {
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

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	doc.ID = oid
	return oid.Hex(), nil
}

func (r *ArticleDocRepository) FindByID(ctx context.Context, hexID string) (*model.ArticleDoc, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrDocNotFound
	}
	var doc model.ArticleDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDocNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *ArticleDocRepository) FindBySlug(ctx context.Context, slug string) (*model.ArticleDoc, error) {
	var doc model.ArticleDoc
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDocNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *ArticleDocRepository) UpdateByID(ctx context.Context, hexID string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrDocNotFound
	}
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDocNotFound
	}
	return nil
}

func (r *ArticleDocRepository) DeleteByID(ctx context.Context, hexID string) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrDocNotFound
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrDocNotFound
	}
	return nil
}

// AddLike 使用 $addToSet，重复点赞天然幂等
func (r *ArticleDocRepository) AddLike(ctx context.Context, hexID string, userID uint) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrDocNotFound
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDocNotFound
	}
	return nil
}

func (r *ArticleDocRepository) RemoveLike(ctx context.Context, hexID string, userID uint) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrDocNotFound
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDocNotFound
	}
	return nil
}

// AppendComment 评论只追加，借助 $push 保证并发追加互不覆盖
func (r *ArticleDocRepository) AppendComment(ctx context.Context, hexID string, comment model.ArticleComment) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrDocNotFound
	}
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDocNotFound
	}
	return nil
}

func (r *ArticleDocRepository) ListIDsByTag(ctx context.Context, tag string, status string, limit int) ([]string, error) {
	filter := bson.M{"tags": tag}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
