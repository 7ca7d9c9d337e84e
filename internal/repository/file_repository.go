package repository

import (
	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
)

type FileStore interface {
	Create(file *model.File) error
	FindByID(id uint) (*model.File, error)
	FindByIDs(ids []uint) ([]model.File, error)
	AttachToMessage(fileIDs []uint, ownerID uint, messageID uint) error
	ListByAuthor(authorID uint, offset int, limit int) ([]model.File, int64, error)
	Delete(id uint) error
}

type FileRepository struct {
	db *gorm.DB
}

func (r *FileRepository) Create(file *model.File) error {
	return r.db.Create(file).Error
}

func (r *FileRepository) FindByID(id uint) (*model.File, error) {
	var file model.File
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) FindByIDs(ids []uint) ([]model.File, error) {
	var files []model.File
	if len(ids) == 0 {
		return files, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// AttachToMessage 把文件挂到消息上，只允许归属发送者本人且尚未挂载的文件
func (r *FileRepository) AttachToMessage(fileIDs []uint, ownerID uint, messageID uint) error {
	if len(fileIDs) == 0 {
		return nil
	}
	return r.db.Model(&model.File{}).
		Where("id IN ? AND author_id = ? AND message_id IS NULL", fileIDs, ownerID).
		Update("message_id", messageID).Error
}

func (r *FileRepository) ListByAuthor(authorID uint, offset int, limit int) ([]model.File, int64, error) {
	var files []model.File
	var total int64

	query := r.db.Model(&model.File{}).Where("author_id = ?", authorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&files).Error; err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (r *FileRepository) Delete(id uint) error {
	return r.db.Delete(&model.File{}, id).Error
}
