package dto

import (
	"time"

	"ai-musicchat-be/pkg/music/traits"

	"github.com/google/uuid"
)

type UpdateChatRequest struct {
	ChatId    string `json:"chat_id"`
	Role      string `json:"role" validate:"required,oneof=human agent"`
	Content   string `json:"content" validate:"required"`
	UserId    string `json:"user_id" validate:"required"`
	UserName  string `json:"user_name"`
	AgentId   string `json:"agent_id"`
	AgentName string `json:"agent_name" validate:"required"`
}

type UpdateChatResponse struct {
	ChatId uuid.UUID `json:"chat_id"`
}

type ChatInfoResponse struct {
	ChatId    uuid.UUID `json:"chat_id"`
	UserId    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	AgentId   string    `json:"agent_id"`
	AgentName string    `json:"agent_name"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatDetailsResponse struct {
	MessageId uuid.UUID `json:"message_id"`
	ChatId    uuid.UUID `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryFilter narrows a chat history read. UserId is required, the
// rest are optional.
type HistoryFilter struct {
	UserId    string
	ChatId    string
	Role      string
	AgentName string
}

type GeneralChatRequest struct {
	UserId    string `json:"user_id" validate:"required"`
	ChatId    string `json:"chat_id"`
	AgentName string `json:"agent_name"`
	Query     string `json:"query" validate:"required"`
}

type GeneralChatResponse struct {
	Content string         `json:"content"`
	Traits  *traits.Traits `json:"traits,omitempty"`
}

type AnalyzePreferenceRequest struct {
	UserId    string `json:"user_id" validate:"required"`
	ChatId    string `json:"chat_id"`
	AgentName string `json:"agent_name"`
}

type AnalyzePreferenceResponse struct {
	Analysis string `json:"analysis"`
}

type ExtractTraitsRequest struct {
	Query string `json:"query" validate:"required"`
}
