package persistent

import (
	"context"
	"errors"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/gorm"
)

// ContentRepository reads rows owned by the post and profile services.
type ContentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Content, error)
	GetCreatorProfile(ctx context.Context, creatorID string) (*entity.CreatorProfile, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*entity.Content, error) {
	var contentModel model.ContentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contentModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrContentNotFound
		}
		return nil, err
	}
	return ToContentEntity(&contentModel), nil
}

func (r *contentRepository) GetCreatorProfile(ctx context.Context, creatorID string) (*entity.CreatorProfile, error) {
	var profileModel model.CreatorProfileModel
	if err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).First(&profileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrCreatorNotFound
		}
		return nil, err
	}
	return &entity.CreatorProfile{
		CreatorID:         profileModel.CreatorID,
		SubscriptionPrice: money.Cents(profileModel.SubscriptionPriceCents),
	}, nil
}
