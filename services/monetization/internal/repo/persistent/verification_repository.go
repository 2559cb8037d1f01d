package persistent

import (
	"context"
	"errors"

	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationRepository interface {
	// Get returns nil without error when the creator has no decision yet.
	Get(ctx context.Context, creatorID string) (*entity.CreatorVerification, error)
	GetForUpdate(ctx context.Context, creatorID string) (*entity.CreatorVerification, error)
	// RecordEvent stores a webhook delivery once; duplicates report false.
	RecordEvent(ctx context.Context, event *entity.VerificationEvent) (bool, error)
	Upsert(ctx context.Context, verification *entity.CreatorVerification) error
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Get(ctx context.Context, creatorID string) (*entity.CreatorVerification, error) {
	return r.get(r.db.WithContext(ctx), creatorID)
}

func (r *verificationRepository) GetForUpdate(ctx context.Context, creatorID string) (*entity.CreatorVerification, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), creatorID)
}

func (r *verificationRepository) get(db *gorm.DB, creatorID string) (*entity.CreatorVerification, error) {
	var verificationModel model.CreatorVerificationModel
	if err := db.Where("creator_id = ?", creatorID).First(&verificationModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToCreatorVerificationEntity(&verificationModel), nil
}

func (r *verificationRepository) RecordEvent(ctx context.Context, event *entity.VerificationEvent) (bool, error) {
	eventModel := &model.VerificationEventModel{
		Provider:   event.Provider,
		InquiryID:  event.InquiryID,
		Decision:   string(event.Decision),
		CreatorID:  event.CreatorID,
		OccurredAt: event.OccurredAt,
		Payload:    datatypes.JSON(event.Payload),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "inquiry_id"}, {Name: "decision"}},
		DoNothing: true,
	}).Create(eventModel)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	event.ID = eventModel.ID
	event.CreatedAt = eventModel.CreatedAt
	return true, nil
}

func (r *verificationRepository) Upsert(ctx context.Context, verification *entity.CreatorVerification) error {
	verificationModel := &model.CreatorVerificationModel{
		CreatorID: verification.CreatorID,
		Status:    string(verification.Status),
		Provider:  verification.Provider,
		InquiryID: verification.InquiryID,
		DecidedAt: verification.DecidedAt,
		UpdatedAt: verification.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "creator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "provider", "inquiry_id", "decided_at", "updated_at"}),
	}).Create(verificationModel).Error
}
