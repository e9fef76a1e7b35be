package unitofwork

import (
	"context"

	"ai-musicchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatInfoRepository() contract.ChatInfoRepository
	ChatDetailsRepository() contract.ChatDetailsRepository
}
