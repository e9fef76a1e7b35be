package unitofwork

import (
	"context"
	"errors"

	"ai-musicchat-be/internal/repository/contract"
	"ai-musicchat-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db  *gorm.DB
	tx  *gorm.DB
	ctx context.Context
}

func NewUnitOfWork(ctx context.Context, db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db:  db,
		ctx: ctx,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	u.ctx = ctx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return errors.New("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) ChatInfoRepository() contract.ChatInfoRepository {
	return implementation.NewChatInfoRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatDetailsRepository() contract.ChatDetailsRepository {
	return implementation.NewChatDetailsRepository(u.getDB())
}
