package mapper

import (
	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Info Mappers

func (m *ChatMapper) ChatInfoToEntity(info *model.ChatInfo) *entity.ChatInfo {
	if info == nil {
		return nil
	}

	return &entity.ChatInfo{
		ChatId:    info.ChatId,
		UserId:    info.UserId,
		UserName:  info.UserName,
		AgentId:   info.AgentId,
		AgentName: info.AgentName,
		CreatedAt: info.CreatedAt,
	}
}

func (m *ChatMapper) ChatInfoToModel(info *entity.ChatInfo) *model.ChatInfo {
	if info == nil {
		return nil
	}

	return &model.ChatInfo{
		ChatId:    info.ChatId,
		UserId:    info.UserId,
		UserName:  info.UserName,
		AgentId:   info.AgentId,
		AgentName: info.AgentName,
		CreatedAt: info.CreatedAt,
	}
}

// Details Mappers

func (m *ChatMapper) ChatDetailsToEntity(details *model.ChatDetails) *entity.ChatDetails {
	if details == nil {
		return nil
	}

	return &entity.ChatDetails{
		MessageId: details.MessageId,
		ChatId:    details.ChatId,
		Role:      details.Role,
		Content:   details.Content,
		CreatedAt: details.CreatedAt,
	}
}

func (m *ChatMapper) ChatDetailsToModel(details *entity.ChatDetails) *model.ChatDetails {
	if details == nil {
		return nil
	}

	return &model.ChatDetails{
		MessageId: details.MessageId,
		ChatId:    details.ChatId,
		Role:      details.Role,
		Content:   details.Content,
		CreatedAt: details.CreatedAt,
	}
}
