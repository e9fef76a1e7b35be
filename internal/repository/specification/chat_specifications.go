package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByChatIDs struct {
	ChatIDs []uuid.UUID
}

func (s ByChatIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id IN ?", s.ChatIDs)
}

type ByMessageID struct {
	MessageID uuid.UUID
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageID)
}

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ByAgentName struct {
	AgentName string
}

func (s ByAgentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("agent_name = ?", s.AgentName)
}
