package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
)

// FileService 登记对象存储中的文件元数据。
// 上传本身在外部完成，这里只保存名称、URL 等描述信息供消息附件引用。
type FileService struct {
	fileStore repository.FileStore
}

func NewFileService(fileStore repository.FileStore) *FileService {
	return &FileService{fileStore: fileStore}
}

type FileInput struct {
	Name string
	URL  string
	Type string
	Size int64
}

func (s *FileService) Register(authorID uint, input FileInput) (*model.File, error) {
	fields := map[string]string{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields["name"] = "文件名不能为空"
	}
	url := strings.TrimSpace(input.URL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		fields["url"] = "文件链接格式不正确"
	}
	if input.Size < 0 {
		fields["size"] = "文件大小不合法"
	}
	if len(fields) > 0 {
		return nil, common.NewFieldError("参数校验失败", fields)
	}

	file := &model.File{
		Name:     name,
		URL:      url,
		Type:     strings.TrimSpace(input.Type),
		Size:     input.Size,
		AuthorID: authorID,
	}
	if err := s.fileStore.Create(file); err != nil {
		return nil, common.NewInternalError("文件登记失败，请稍后重试")
	}
	return file, nil
}

func (s *FileService) ListMine(authorID uint, page int, limit int) ([]model.File, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	files, total, err := s.fileStore.ListByAuthor(authorID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, common.NewInternalError("文件列表获取失败，请稍后重试")
	}
	return files, total, nil
}

// Delete 删除未挂载到消息上的文件记录，仅限本人
func (s *FileService) Delete(fileID uint, authorID uint) error {
	file, err := s.fileStore.FindByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("文件不存在")
		}
		return common.NewInternalError("文件删除失败，请稍后重试")
	}
	if file.AuthorID != authorID {
		return common.NewForbiddenError("没有权限删除该文件")
	}
	if file.MessageID != nil {
		return common.NewValidationError("文件已被消息引用，无法删除")
	}
	if err := s.fileStore.Delete(fileID); err != nil {
		return common.NewInternalError("文件删除失败，请稍后重试")
	}
	return nil
}
