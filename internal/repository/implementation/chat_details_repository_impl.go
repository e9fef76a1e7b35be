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

type ChatDetailsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatDetailsRepository(db *gorm.DB) contract.ChatDetailsRepository {
	return &ChatDetailsRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatDetailsRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatDetailsRepositoryImpl) Create(ctx context.Context, details *entity.ChatDetails) error {
	m := r.mapper.ChatDetailsToModel(details)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*details = *r.mapper.ChatDetailsToEntity(m)
	return nil
}

func (r *ChatDetailsRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatDetails, error) {
	var m model.ChatDetails
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatDetailsToEntity(&m), nil
}

func (r *ChatDetailsRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatDetails, error) {
	var models []*model.ChatDetails
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatDetails, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChatDetailsToEntity(m)
	}
	return entities, nil
}

func (r *ChatDetailsRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatDetails{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
