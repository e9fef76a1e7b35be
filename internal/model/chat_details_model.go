package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatDetails struct {
	MessageId uuid.UUID `gorm:"type:uuid;primaryKey;column:message_id"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:text;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ChatDetails) TableName() string {
	return "chat_details"
}
