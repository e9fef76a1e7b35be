package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatInfo describes one conversation. Created exactly once, at the first
// turn, and never mutated afterwards.
type ChatInfo struct {
	ChatId    uuid.UUID
	UserId    string
	UserName  string
	AgentId   string
	AgentName string
	CreatedAt time.Time
}

// ChatDetails is one conversational turn. Rows are append-only; there is
// no update or delete path.
type ChatDetails struct {
	MessageId uuid.UUID
	ChatId    uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}
