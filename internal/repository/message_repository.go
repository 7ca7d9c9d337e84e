package repository

import (
	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/model"
)

// ConversationSummary 会话列表项：对端用户加上最近一条消息与未读数
type ConversationSummary struct {
	Peer        model.UserSummary `json:"peer"`
	LastMessage model.Message     `json:"last_message"`
	UnreadCount int64             `json:"unread_count"`
}

type MessageStore interface {
	Create(message *model.Message) error
	FindByID(id uint) (*model.Message, error)
	ListBetween(userA uint, userB uint, offset int, limit int) ([]model.Message, int64, error)
	MarkReadFrom(recipientID uint, senderID uint) error
	ListConversationPeers(userID uint) ([]uint, error)
	LastMessageBetween(userA uint, userB uint) (*model.Message, error)
	CountUnreadFrom(recipientID uint, senderID uint) (int64, error)
	CountUnread(recipientID uint) (int64, error)
}

type MessageRepository struct {
	db *gorm.DB
}

func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.Preload("Files").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListBetween 列出两名用户之间的全部往来消息，按时间倒序分页
func (r *MessageRepository) ListBetween(userA uint, userB uint, offset int, limit int) ([]model.Message, int64, error) {
	var messages []model.Message
	var total int64

	query := r.db.Model(&model.Message{}).Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Files").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkReadFrom 把某发件人发给收件人的未读消息全部置为已读
func (r *MessageRepository) MarkReadFrom(recipientID uint, senderID uint) error {
	return r.db.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", recipientID, senderID, false).
		Update("is_read", true).Error
}

// ListConversationPeers 返回与指定用户有过往来的全部对端用户 ID
func (r *MessageRepository) ListConversationPeers(userID uint) ([]uint, error) {
	var senderIDs []uint
	if err := r.db.Model(&model.Message{}).
		Where("recipient_id = ?", userID).
		Distinct("sender_id").
		Pluck("sender_id", &senderIDs).Error; err != nil {
		return nil, err
	}

	var recipientIDs []uint
	if err := r.db.Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Distinct("recipient_id").
		Pluck("recipient_id", &recipientIDs).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(senderIDs)+len(recipientIDs))
	var peers []uint
	for _, id := range append(senderIDs, recipientIDs...) {
		if !seen[id] {
			seen[id] = true
			peers = append(peers, id)
		}
	}
	return peers, nil
}

func (r *MessageRepository) LastMessageBetween(userA uint, userB uint) (*model.Message, error) {
	var message model.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).Order("created_at DESC").First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) CountUnreadFrom(recipientID uint, senderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", recipientID, senderID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepository) CountUnread(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
