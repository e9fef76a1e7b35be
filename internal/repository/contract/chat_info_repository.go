package contract

import (
	"context"

	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/repository/specification"
)

type ChatInfoRepository interface {
	Create(ctx context.Context, info *entity.ChatInfo) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatInfo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInfo, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
