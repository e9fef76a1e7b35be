package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatInfo struct {
	ChatId    uuid.UUID `gorm:"type:uuid;primaryKey;column:chat_id"`
	UserId    string    `gorm:"type:text;not null;index"`
	UserName  string    `gorm:"type:text"`
	AgentId   string    `gorm:"type:text"`
	AgentName string    `gorm:"type:text;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatInfo) TableName() string {
	return "chat_infos"
}
