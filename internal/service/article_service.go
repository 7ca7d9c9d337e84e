package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

type ArticleService struct {
	articles  repository.ArticleStore
	userStore repository.UserStore
}

func NewArticleService(articles repository.ArticleStore, userStore repository.UserStore) *ArticleService {
	return &ArticleService{articles: articles, userStore: userStore}
}

// ArticleInput 创建与更新共用的输入。更新时 nil 字段表示保持原值。
type ArticleInput struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Tags      []string
	Thumbnail *string
	Status    *string
}

// ArticleDetail 文章详情：文档库权威内容加上关系库计数
type ArticleDetail struct {
	Doc          *model.ArticleDoc  `json:"article"`
	Author       *model.UserSummary `json:"author,omitempty"`
	ViewCount    int64              `json:"view_count"`
	LikeCount    int64              `json:"like_count"`
	CommentCount int64              `json:"comment_count"`
}

func validateArticleFields(title, content, excerpt string, tags []string, thumbnail string) map[string]string {
	fields := map[string]string{}
	titleLen := utf8.RuneCountInString(title)
	if titleLen < 5 || titleLen > 100 {
		fields["title"] = "标题长度需在5到100个字符之间"
	}
	if utf8.RuneCountInString(content) < 50 {
		fields["content"] = "正文至少50个字符"
	}
	if utf8.RuneCountInString(excerpt) > 200 {
		fields["excerpt"] = "摘要最长200个字符"
	}
	if len(tags) > 5 {
		fields["tags"] = "标签最多5个"
	}
	if thumbnail != "" {
		if ok, msg := utils.ValidateURL(thumbnail); !ok {
			fields["thumbnail"] = msg
		}
	}
	return fields
}

// defaultExcerpt 未提供摘要时取正文前150个字符
func defaultExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 150 {
		return content
	}
	return string(runes[:150]) + "…"
}

// uniqueSlug 由标题派生 slug，与库内冲突时追加随机后缀
func (s *ArticleService) uniqueSlug(title string) (string, error) {
	slug := utils.GenerateSlug(title)
	exists, err := s.articles.Mirror().SlugExists(slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = slug + "-" + utils.RandomSlugSuffix()
	}
	return slug, nil
}

// Create 创建文章。先写文档库，投影失败时由仓储层补偿回删。
func (s *ArticleService) Create(ctx context.Context, authorID uint, input ArticleInput) (*model.ArticleDoc, error) {
	title := strings.TrimSpace(derefString(input.Title))
	content := derefString(input.Content)
	excerpt := strings.TrimSpace(derefString(input.Excerpt))
	thumbnail := strings.TrimSpace(derefString(input.Thumbnail))

	if fields := validateArticleFields(title, content, excerpt, input.Tags, thumbnail); len(fields) > 0 {
		return nil, common.NewFieldError("参数校验失败", fields)
	}

	status := consts.ArticleStatusDraft
	if input.Status != nil {
		status = *input.Status
		if status != consts.ArticleStatusDraft && status != consts.ArticleStatusPublished {
			return nil, common.NewFieldError("参数校验失败", map[string]string{"status": "状态只能是 draft 或 published"})
		}
	}

	if excerpt == "" {
		excerpt = defaultExcerpt(content)
	}

	slug, err := s.uniqueSlug(title)
	if err != nil {
		return nil, common.NewInternalError("文章创建失败，请稍后重试")
	}

	doc := &model.ArticleDoc{
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		Slug:      slug,
		Status:    status,
		Tags:      input.Tags,
		Thumbnail: thumbnail,
		ReadTime:  utils.CalculateReadTime(content),
		AuthorID:  authorID,
	}

	if _, err := s.articles.CreateArticle(ctx, doc); err != nil {
		return nil, common.NewInternalError("文章创建失败，请稍后重试")
	}

	return doc, nil
}

// Update 选择性更新文章，仅作者可操作。
// 标题或正文实际变化时才重新计算 slug 与阅读时长。
func (s *ArticleService) Update(ctx context.Context, mongoID string, userID uint, input ArticleInput) (*model.ArticleDoc, error) {
	doc, err := s.articles.Doc().FindByID(ctx, mongoID)
	if err != nil {
		if errors.Is(err, repository.ErrDocNotFound) {
			return nil, common.NewNotFoundError("文章不存在")
		}
		return nil, common.NewInternalError("文章更新失败，请稍后重试")
	}

	if doc.AuthorID != userID {
		return nil, common.NewForbiddenError("只有作者本人可以编辑文章")
	}

	title := doc.Title
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	content := doc.Content
	if input.Content != nil {
		content = *input.Content
	}
	excerpt := doc.Excerpt
	if input.Excerpt != nil {
		excerpt = strings.TrimSpace(*input.Excerpt)
	}
	thumbnail := doc.Thumbnail
	if input.Thumbnail != nil {
		thumbnail = strings.TrimSpace(*input.Thumbnail)
	}
	tags := doc.Tags
	if input.Tags != nil {
		tags = input.Tags
	}

	if fields := validateArticleFields(title, content, excerpt, tags, thumbnail); len(fields) > 0 {
		return nil, common.NewFieldError("参数校验失败", fields)
	}

	status := doc.Status
	if input.Status != nil {
		status = *input.Status
		if status != consts.ArticleStatusDraft && status != consts.ArticleStatusPublished {
			return nil, common.NewFieldError("参数校验失败", map[string]string{"status": "状态只能是 draft 或 published"})
		}
		// 发布是单向的，已发布文章不能退回草稿
		if doc.Status == consts.ArticleStatusPublished && status == consts.ArticleStatusDraft {
			return nil, common.NewFieldError("参数校验失败", map[string]string{"status": "已发布的文章不能退回草稿"})
		}
	}

	docUpdates := map[string]interface{}{}
	mirrorUpdates := map[string]interface{}{}

	slug := doc.Slug
	if title != doc.Title {
		newSlug, err := s.uniqueSlug(title)
		if err != nil {
			return nil, common.NewInternalError("文章更新失败，请稍后重试")
		}
		slug = newSlug
		docUpdates["title"] = title
		docUpdates["slug"] = slug
		mirrorUpdates["title"] = title
		mirrorUpdates["slug"] = slug
	}
	if content != doc.Content {
		docUpdates["content"] = content
		docUpdates["readTime"] = utils.CalculateReadTime(content)
	}
	if input.Excerpt != nil && excerpt != doc.Excerpt {
		docUpdates["excerpt"] = excerpt
		mirrorUpdates["excerpt"] = excerpt
	}
	if input.Tags != nil {
		docUpdates["tags"] = tags
	}
	if input.Thumbnail != nil && thumbnail != doc.Thumbnail {
		docUpdates["thumbnail"] = thumbnail
	}
	if status != doc.Status {
		docUpdates["status"] = status
		mirrorUpdates["status"] = status
	}

	if len(docUpdates) == 0 {
		return doc, nil
	}

	if err := s.articles.UpdateArticle(ctx, mongoID, docUpdates, mirrorUpdates); err != nil {
		return nil, common.NewInternalError("文章更新失败，请稍后重试")
	}

	return s.fetchDoc(ctx, mongoID)
}

// Delete 删除文章，允许作者本人或持有有效管理员凭证的调用方
func (s *ArticleService) Delete(ctx context.Context, idOrSlug string, userID uint, isAdmin bool) error {
	doc, err := s.resolveDoc(ctx, idOrSlug)
	if err != nil {
		return err
	}

	if !isAdmin && doc.AuthorID != userID {
		return common.NewForbiddenError("没有权限删除该文章")
	}

	if err := s.articles.DeleteArticle(ctx, doc.ID.Hex()); err != nil {
		return common.NewInternalError("文章删除失败，请稍后重试")
	}
	return nil
}

// Fetch 按文档 ID 或 slug 取文章，每次读取都累加浏览计数
func (s *ArticleService) Fetch(ctx context.Context, idOrSlug string) (*ArticleDetail, error) {
	doc, err := s.resolveDoc(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	mongoID := doc.ID.Hex()

	if err := s.articles.Mirror().IncrementViewCount(mongoID); err != nil {
		return nil, common.NewInternalError("文章获取失败，请稍后重试")
	}

	detail := &ArticleDetail{Doc: doc}
	if mirror, err := s.articles.Mirror().FindByMongoID(mongoID); err == nil {
		detail.ViewCount = mirror.ViewCount
		detail.LikeCount = mirror.LikeCount
		detail.CommentCount = mirror.CommentCount
	}
	if author, err := s.userStore.FindByID(doc.AuthorID); err == nil {
		summary := author.Summary()
		detail.Author = &summary
	}
	return detail, nil
}

// List 分页列出文章投影。带标签过滤时先查文档库取 ID 集合。
func (s *ArticleService) List(ctx context.Context, status string, authorID uint, keyword string, tag string, page int, limit int) ([]model.Article, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	if tag != "" {
		ids, err := s.articles.Doc().ListIDsByTag(ctx, tag, status, 0)
		if err != nil {
			return nil, 0, common.NewInternalError("文章列表获取失败，请稍后重试")
		}
		mirrored, err := s.articles.Mirror().ListByMongoIDs(ids)
		if err != nil {
			return nil, 0, common.NewInternalError("文章列表获取失败，请稍后重试")
		}
		// 标签分支同样受作者与关键字约束，否则草稿会经标签查询外泄
		kw := strings.TrimSpace(keyword)
		articles := make([]model.Article, 0, len(mirrored))
		for _, a := range mirrored {
			if authorID != 0 && a.AuthorID != authorID {
				continue
			}
			if kw != "" && !strings.Contains(a.Title, kw) && !strings.Contains(a.Excerpt, kw) {
				continue
			}
			articles = append(articles, a)
		}
		total := int64(len(articles))
		start := (page - 1) * limit
		if start >= len(articles) {
			return []model.Article{}, total, nil
		}
		end := start + limit
		if end > len(articles) {
			end = len(articles)
		}
		return articles[start:end], total, nil
	}

	articles, total, err := s.articles.Mirror().List(status, authorID, keyword, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, common.NewInternalError("文章列表获取失败，请稍后重试")
	}
	return articles, total, nil
}

// ToggleLike 点赞开关，依据请求者是否已在点赞集合中决定加减
func (s *ArticleService) ToggleLike(ctx context.Context, idOrSlug string, userID uint) (bool, int64, error) {
	doc, err := s.resolveDoc(ctx, idOrSlug)
	if err != nil {
		return false, 0, err
	}
	mongoID := doc.ID.Hex()

	liked := doc.LikedBy(userID)
	if liked {
		if err := s.articles.Doc().RemoveLike(ctx, mongoID, userID); err != nil {
			return false, 0, common.NewInternalError("操作失败，请稍后重试")
		}
		if err := s.articles.Mirror().AddLikeCount(mongoID, -1); err != nil {
			return false, 0, common.NewInternalError("操作失败，请稍后重试")
		}
	} else {
		if err := s.articles.Doc().AddLike(ctx, mongoID, userID); err != nil {
			return false, 0, common.NewInternalError("操作失败，请稍后重试")
		}
		if err := s.articles.Mirror().AddLikeCount(mongoID, 1); err != nil {
			return false, 0, common.NewInternalError("操作失败，请稍后重试")
		}
	}

	var likeCount int64
	if mirror, err := s.articles.Mirror().FindByMongoID(mongoID); err == nil {
		likeCount = mirror.LikeCount
	}
	return !liked, likeCount, nil
}

// ListComments 返回文章的内嵌评论列表
func (s *ArticleService) ListComments(ctx context.Context, idOrSlug string) ([]model.ArticleComment, error) {
	doc, err := s.resolveDoc(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return doc.Comments, nil
}

// AddComment 追加评论。评论只增不删，限500字符。
func (s *ArticleService) AddComment(ctx context.Context, idOrSlug string, userID uint, content string) (*model.ArticleComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"content": "评论内容不能为空"})
	}
	if utf8.RuneCountInString(content) > 500 {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"content": "评论最长500个字符"})
	}

	doc, err := s.resolveDoc(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	mongoID := doc.ID.Hex()

	comment := model.ArticleComment{
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.articles.Doc().AppendComment(ctx, mongoID, comment); err != nil {
		return nil, common.NewInternalError("评论失败，请稍后重试")
	}
	if err := s.articles.Mirror().IncrementCommentCount(mongoID); err != nil {
		return nil, common.NewInternalError("评论失败，请稍后重试")
	}

	return &comment, nil
}

// resolveDoc 先按 ObjectID 查找，失败时回退按 slug 查找
func (s *ArticleService) resolveDoc(ctx context.Context, idOrSlug string) (*model.ArticleDoc, error) {
	doc, err := s.articles.Doc().FindByID(ctx, idOrSlug)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, repository.ErrDocNotFound) {
		return nil, common.NewInternalError("文章获取失败，请稍后重试")
	}

	doc, err = s.articles.Doc().FindBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrDocNotFound) {
			return nil, common.NewNotFoundError("文章不存在")
		}
		return nil, common.NewInternalError("文章获取失败，请稍后重试")
	}
	return doc, nil
}

func (s *ArticleService) fetchDoc(ctx context.Context, mongoID string) (*model.ArticleDoc, error) {
	doc, err := s.articles.Doc().FindByID(ctx, mongoID)
	if err != nil {
		return nil, common.NewInternalError("文章获取失败，请稍后重试")
	}
	return doc, nil
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
