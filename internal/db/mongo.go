package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
)

const articleCollection = "articles"

// NewMongo 连接文档库并返回文章集合所属的数据库句柄
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("连接文档库失败: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("文档库不可达: %w", err)
	}

	database := client.Database(cfg.Name)
	if err := ensureArticleIndexes(connectCtx, database); err != nil {
		return nil, err
	}

	log.Println("✅ 文档库连接成功")
	return database, nil
}

// ensureArticleIndexes 保证 slug 唯一索引存在
func ensureArticleIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(articleCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("创建文章索引失败: %w", err)
	}
	return nil
}

// ArticleCollection 返回文章集合
func ArticleCollection(database *mongo.Database) *mongo.Collection {
	return database.Collection(articleCollection)
}
