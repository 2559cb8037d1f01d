package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/config"
	"lick-scroll-monetization/pkg/database"
	"lick-scroll-monetization/pkg/jwt"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed IDs keep reseeding idempotent and make the printed tokens reusable.
var (
	creatorID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("seed-creator-alice")).String()
	fanID     = uuid.NewSHA1(uuid.NameSpaceOID, []byte("seed-fan-bob")).String()
	adminID   = uuid.NewSHA1(uuid.NameSpaceOID, []byte("seed-admin-eve")).String()
)

type seedContent struct {
	name       string
	kind       entity.ContentKind
	visibility entity.Visibility
	price      money.Cents
}

func main() {
	purchases := flag.Bool("purchases", true, "record demo purchases so the creator has earnings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	contentIDs, err := seedCatalog(db, log)
	if err != nil {
		log.Error("Failed to seed catalog: %v", err)
		panic(err)
	}

	if *purchases {
		if err := seedPurchases(context.Background(), db, cfg, contentIDs, log); err != nil {
			log.Error("Failed to seed purchases: %v", err)
			panic(err)
		}
	}

	printTokens(jwt.NewService(cfg.JWTSecret), log)
	log.Info("Database seeded successfully!")
}

func seedCatalog(db *gorm.DB, log *logger.Logger) ([]string, error) {
	catalog := []seedContent{
		{"free-post", entity.ContentKindPost, entity.VisibilityFree, 0},
		{"subscriber-post", entity.ContentKindPost, entity.VisibilitySubscriber, 0},
		{"ppv-post", entity.ContentKindPost, entity.VisibilityPPV, 500},
		{"ppv-stream", entity.ContentKindStream, entity.VisibilityPPV, 1200},
		{"ppv-message", entity.ContentKindMessage, entity.VisibilityPPV, 300},
	}

	ids := make([]string, 0, len(catalog))
	for _, item := range catalog {
		row := &model.ContentModel{
			ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte("seed-"+item.name)).String(),
			OwnerID:    creatorID,
			Kind:       string(item.kind),
			Visibility: string(item.visibility),
			PriceCents: item.price.Int64(),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return nil, fmt.Errorf("failed to create content %s: %w", item.name, err)
		}
		log.Info("Content %s: %s (%s, %s)", item.name, row.ID, item.visibility, item.price)
		ids = append(ids, row.ID)
	}

	profile := &model.CreatorProfileModel{CreatorID: creatorID, SubscriptionPriceCents: 999}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create creator profile: %w", err)
	}

	verification := &model.CreatorVerificationModel{
		CreatorID: creatorID,
		Status:    string(entity.VerificationStatusApproved),
		Provider:  "seed",
		InquiryID: "seed-inquiry",
		DecidedAt: time.Now().UTC(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(verification).Error; err != nil {
		return nil, fmt.Errorf("failed to approve creator: %w", err)
	}
	log.Info("Creator %s approved for payouts", creatorID)

	return ids, nil
}

func seedPurchases(ctx context.Context, db *gorm.DB, cfg *config.Config, contentIDs []string, log *logger.Logger) error {
	uow := persistent.NewUnitOfWork(db)
	recorder := usecase.NewRecorderUseCase(uow, usecase.NewQueueNotifier(nil, log), usecase.RecorderConfig{
		PaymentProvider:    "seed",
		SubscriptionPeriod: cfg.SubscriptionPeriod,
	}, log)

	for _, contentID := range contentIDs {
		result, err := recorder.PurchaseContent(ctx, fanID, contentID)
		switch {
		case err == nil:
			log.Info("Purchased %s: transaction %s", contentID, result.TransactionID)
		case errors.Is(err, apperror.ErrAlreadyOwned), errors.Is(err, apperror.ErrNotPurchasable):
			continue
		default:
			return fmt.Errorf("failed to purchase %s: %w", contentID, err)
		}
	}

	if _, err := recorder.SendTip(ctx, fanID, creatorID, 250, nil); err != nil {
		return fmt.Errorf("failed to send tip: %w", err)
	}

	earnings, err := usecase.NewEarningsUseCase(uow, log).GetCreatorEarnings(ctx, creatorID)
	if err != nil {
		return fmt.Errorf("failed to read earnings: %w", err)
	}
	log.Info("Creator pending earnings: %s", earnings.PendingEarnings)
	return nil
}

func printTokens(jwtService *jwt.Service, log *logger.Logger) {
	users := []struct {
		name, id, role string
	}{
		{"alice (creator)", creatorID, "creator"},
		{"bob (fan)", fanID, "viewer"},
		{"eve (admin)", adminID, "admin"},
	}
	for _, u := range users {
		token, err := jwtService.GenerateToken(u.id, u.role)
		if err != nil {
			log.Error("Failed to issue token for %s: %v", u.name, err)
			continue
		}
		log.Info("%s %s: Bearer %s", u.name, u.id, token)
	}
}
