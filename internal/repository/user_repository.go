package repository

import "github.com/jerrry-dev/ailuminate-v2/internal/model"

type UserField string

const (
	UserFieldUsername UserField = "username"
	UserFieldEmail    UserField = "email"
)

type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByVerificationToken(token string) (*model.User, error)
	Create(user *model.User) error
	UpdateByID(userID uint, updates map[string]interface{}) error
	MarkVerified(userID uint) error
	FieldExists(field UserField, value string, excludeUserID *uint) (bool, error)
	Search(keyword string, excludeUserID uint, limit int) ([]model.User, error)
	ListUsers(keyword string, order string, offset int, limit int) ([]model.User, int64, error)
	CountAll() (int64, error)
}
