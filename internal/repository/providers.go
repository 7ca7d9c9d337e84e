package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type Repositories struct {
	User    UserStore
	Admin   AdminStore
	Article ArticleStore
	Message MessageStore
	File    FileStore
	Setting SettingStore
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}

func NewAdminRepository(db *gorm.DB) AdminStore {
	return &AdminRepository{db: db}
}

func NewArticleMirrorRepository(db *gorm.DB) ArticleMirrorStore {
	return &ArticleMirrorRepository{db: db}
}

func NewArticleDocRepository(coll *mongo.Collection) ArticleDocStore {
	return &ArticleDocRepository{coll: coll}
}

func NewArticleStore(doc ArticleDocStore, mirror ArticleMirrorStore) ArticleStore {
	return &articleStore{doc: doc, mirror: mirror}
}

func NewMessageRepository(db *gorm.DB) MessageStore {
	return &MessageRepository{db: db}
}

func NewFileRepository(db *gorm.DB) FileStore {
	return &FileRepository{db: db}
}

func NewSettingRepository(db *gorm.DB) SettingStore {
	return &SettingRepository{db: db}
}

func NewRepositories(db *gorm.DB, docStore ArticleDocStore) *Repositories {
	mirror := NewArticleMirrorRepository(db)
	return &Repositories{
		User:    NewUserRepository(db),
		Admin:   NewAdminRepository(db),
		Article: NewArticleStore(docStore, mirror),
		Message: NewMessageRepository(db),
		File:    NewFileRepository(db),
		Setting: NewSettingRepository(db),
	}
}
