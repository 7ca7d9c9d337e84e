package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
)

type MessageService struct {
	messageStore repository.MessageStore
	userStore    repository.UserStore
	fileStore    repository.FileStore
}

func NewMessageService(messageStore repository.MessageStore, userStore repository.UserStore, fileStore repository.FileStore) *MessageService {
	return &MessageService{
		messageStore: messageStore,
		userStore:    userStore,
		fileStore:    fileStore,
	}
}

// Send 发送私信，可携带已登记的附件文件 ID。
// 收件人不存在返回 404，附件必须归属发送者本人。
func (s *MessageService) Send(senderID uint, recipientID uint, content string, fileIDs []uint) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(fileIDs) == 0 {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"content": "消息内容不能为空"})
	}
	if utf8.RuneCountInString(content) > 1000 {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"content": "消息最长1000个字符"})
	}
	if recipientID == senderID {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"recipient_id": "不能给自己发送消息"})
	}

	if _, err := s.userStore.FindByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("收件人不存在")
		}
		return nil, common.NewInternalError("消息发送失败，请稍后重试")
	}

	if len(fileIDs) > 0 {
		files, err := s.fileStore.FindByIDs(fileIDs)
		if err != nil {
			return nil, common.NewInternalError("消息发送失败，请稍后重试")
		}
		if len(files) != len(fileIDs) {
			return nil, common.NewFieldError("参数校验失败", map[string]string{"file_ids": "存在无效的附件"})
		}
		for _, f := range files {
			if f.AuthorID != senderID {
				return nil, common.NewForbiddenError("只能附加自己上传的文件")
			}
			if f.MessageID != nil {
				return nil, common.NewFieldError("参数校验失败", map[string]string{"file_ids": "附件已被其他消息使用"})
			}
		}
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.messageStore.Create(message); err != nil {
		return nil, common.NewInternalError("消息发送失败，请稍后重试")
	}

	if len(fileIDs) > 0 {
		if err := s.fileStore.AttachToMessage(fileIDs, senderID, message.ID); err != nil {
			return nil, common.NewInternalError("消息发送失败，请稍后重试")
		}
	}

	created, err := s.messageStore.FindByID(message.ID)
	if err != nil {
		return message, nil
	}
	return created, nil
}

// Conversation 拉取与某用户的往来消息，按时间倒序分页。
// 拉取这一动作会把发给调用者的未读消息标记为已读，发送方副本不受影响。
func (s *MessageService) Conversation(userID uint, peerID uint, page int, limit int) ([]model.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if _, err := s.userStore.FindByID(peerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, common.NewNotFoundError("用户不存在")
		}
		return nil, 0, common.NewInternalError("消息获取失败，请稍后重试")
	}

	messages, total, err := s.messageStore.ListBetween(userID, peerID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, common.NewInternalError("消息获取失败，请稍后重试")
	}

	// 读即回执：只改写发给调用者的那一侧
	if err := s.messageStore.MarkReadFrom(userID, peerID); err != nil {
		return nil, 0, common.NewInternalError("消息获取失败，请稍后重试")
	}

	return messages, total, nil
}

// Conversations 列出全部会话：对端用户、最近一条消息和未读数
func (s *MessageService) Conversations(userID uint) ([]repository.ConversationSummary, error) {
	peers, err := s.messageStore.ListConversationPeers(userID)
	if err != nil {
		return nil, common.NewInternalError("会话列表获取失败，请稍后重试")
	}

	summaries := make([]repository.ConversationSummary, 0, len(peers))
	for _, peerID := range peers {
		peer, err := s.userStore.FindByID(peerID)
		if err != nil {
			continue
		}
		last, err := s.messageStore.LastMessageBetween(userID, peerID)
		if err != nil {
			continue
		}
		unread, err := s.messageStore.CountUnreadFrom(userID, peerID)
		if err != nil {
			unread = 0
		}
		summaries = append(summaries, repository.ConversationSummary{
			Peer:        peer.Summary(),
			LastMessage: *last,
			UnreadCount: unread,
		})
	}
	return summaries, nil
}

// UnreadCount 当前用户全部未读消息数
func (s *MessageService) UnreadCount(userID uint) (int64, error) {
	count, err := s.messageStore.CountUnread(userID)
	if err != nil {
		return 0, common.NewInternalError("未读数获取失败，请稍后重试")
	}
	return count, nil
}
