package implementation

import (
	"context"
	"errors"

	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/mapper"
	"ai-musicchat-be/internal/model"
	"ai-musicchat-be/internal/repository/contract"
	"ai-musicchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatInfoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatInfoRepository(db *gorm.DB) contract.ChatInfoRepository {
	return &ChatInfoRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatInfoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatInfoRepositoryImpl) Create(ctx context.Context, info *entity.ChatInfo) error {
	m := r.mapper.ChatInfoToModel(info)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*info = *r.mapper.ChatInfoToEntity(m)
	return nil
}

func (r *ChatInfoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatInfo, error) {
	var m model.ChatInfo
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatInfoToEntity(&m), nil
}

func (r *ChatInfoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInfo, error) {
	var models []*model.ChatInfo
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatInfo, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChatInfoToEntity(m)
	}
	return entities, nil
}

func (r *ChatInfoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatInfo{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
