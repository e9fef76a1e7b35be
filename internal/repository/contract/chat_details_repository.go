package contract

import (
	"context"

	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/repository/specification"
)

type ChatDetailsRepository interface {
	Create(ctx context.Context, details *entity.ChatDetails) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatDetails, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatDetails, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
