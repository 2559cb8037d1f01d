package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

// RecorderUseCase is the only path by which a payment becomes revenue. Every
// method writes its Transaction, access side effect and ledger entry in one
// unit of work.
type RecorderUseCase interface {
	PurchaseContent(ctx context.Context, buyerID, contentID string) (*entity.PurchaseResult, error)
	PurchaseSubscription(ctx context.Context, fanID, creatorID string) (*entity.PurchaseResult, error)
	CancelSubscription(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error)
	SendTip(ctx context.Context, fanID, creatorID string, amount money.Cents, postID *string) (*entity.PurchaseResult, error)
	Refund(ctx context.Context, transactionID, operatorID, reason string) (*entity.Transaction, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error)
}

type RecorderConfig struct {
	PaymentProvider    string
	SubscriptionPeriod time.Duration
}

type recorderUseCase struct {
	uow      persistent.UnitOfWork
	notifier Notifier
	cfg      RecorderConfig
	logger   *logger.Logger
	now      func() time.Time
}

func NewRecorderUseCase(uow persistent.UnitOfWork, notifier Notifier, cfg RecorderConfig, logger *logger.Logger) RecorderUseCase {
	if cfg.PaymentProvider == "" {
		cfg.PaymentProvider = "mock"
	}
	if cfg.SubscriptionPeriod <= 0 {
		cfg.SubscriptionPeriod = 30 * 24 * time.Hour
	}
	return &recorderUseCase{
		uow:      uow,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      utcNow,
	}
}

func (uc *recorderUseCase) PurchaseContent(ctx context.Context, buyerID, contentID string) (*entity.PurchaseResult, error) {
	repos := uc.uow.Repositories()

	content, err := repos.Contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, fault(err, "failed to load content")
	}
	if content.Visibility != entity.VisibilityPPV || !content.Price.IsPositive() {
		return nil, apperror.ErrNotPurchasable
	}

	owned, err := repos.Entitlements.HasActive(ctx, buyerID, contentID, uc.now(),
		entity.EntitlementTypePPVPurchase, entity.EntitlementTypeGift)
	if err != nil {
		uc.logger.Error("Failed to check entitlements: %v", err)
		return nil, fmt.Errorf("failed to check entitlements: %w", err)
	}
	if owned {
		return nil, apperror.ErrAlreadyOwned
	}
	if content.OwnerID == buyerID {
		return nil, apperror.ErrSelfPurchase
	}

	transaction := &entity.Transaction{
		UserID:          buyerID,
		CreatorID:       content.OwnerID,
		PostID:          strPtr(contentID),
		Amount:          content.Price,
		Type:            entity.TransactionTypePPV,
		Status:          entity.TransactionStatusCompleted,
		PaymentProvider: uc.cfg.PaymentProvider,
	}

	err = uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		now := uc.now()
		transaction.CreatedAt = now
		transaction.UpdatedAt = now
		if err := repos.Transactions.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		created, err := repos.Entitlements.Grant(ctx, &entity.Entitlement{
			UserID:        buyerID,
			PostID:        contentID,
			Type:          entity.EntitlementTypePPVPurchase,
			TransactionID: strPtr(transaction.ID),
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("failed to grant entitlement: %w", err)
		}
		if !created {
			// Lost a race with a concurrent purchase of the same content.
			return apperror.ErrAlreadyOwned
		}

		return appendEntry(ctx, repos, &entity.LedgerEntry{
			AccountID:     content.OwnerID,
			Amount:        content.Price,
			EntryType:     entity.EntryTypeEarnings,
			TransactionID: strPtr(transaction.ID),
			Description:   fmt.Sprintf("%s purchase %s", content.Kind, contentID),
			CreatedAt:     now,
		})
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Purchase of %s by %s rolled back: %v", contentID, buyerID, err)
		}
		return nil, err
	}

	uc.logger.Info("Content %s purchased by %s for %s", contentID, buyerID, content.Price)
	uc.notifier.Notify(EventPurchaseCompleted, map[string]interface{}{
		"transaction_id": transaction.ID,
		"buyer_id":       buyerID,
		"creator_id":     content.OwnerID,
		"content_id":     contentID,
		"content_kind":   string(content.Kind),
		"amount_cents":   content.Price.Int64(),
	})

	return &entity.PurchaseResult{TransactionID: transaction.ID}, nil
}

func (uc *recorderUseCase) PurchaseSubscription(ctx context.Context, fanID, creatorID string) (*entity.PurchaseResult, error) {
	if fanID == creatorID {
		return nil, apperror.ErrSelfPurchase.Withf("cannot subscribe to yourself")
	}

	profile, err := uc.uow.Repositories().Contents.GetCreatorProfile(ctx, creatorID)
	if err != nil {
		return nil, fault(err, "failed to load creator profile")
	}
	if !profile.SubscriptionPrice.IsPositive() {
		return nil, apperror.ErrNotPurchasable.Withf("creator %s has no paid subscription", creatorID)
	}

	var (
		transaction  *entity.Transaction
		subscription *entity.Subscription
	)
	err = uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		now := uc.now()

		current, err := repos.Subscriptions.GetForUpdate(ctx, fanID, creatorID)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			subscription = &entity.Subscription{
				FanID:     fanID,
				CreatorID: creatorID,
				Status:    entity.SubscriptionStatusActive,
				ExpiresAt: now.Add(uc.cfg.SubscriptionPeriod),
				AutoRenew: true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repos.Subscriptions.Create(ctx, subscription); err != nil {
				return fault(err, "failed to create subscription")
			}
		case err != nil:
			return fmt.Errorf("failed to load subscription: %w", err)
		default:
			base := now
			if current.ActiveAt(now) {
				base = current.ExpiresAt
			}
			current.Status = entity.SubscriptionStatusActive
			current.ExpiresAt = base.Add(uc.cfg.SubscriptionPeriod)
			current.AutoRenew = true
			current.UpdatedAt = now
			if err := repos.Subscriptions.Update(ctx, current); err != nil {
				return fmt.Errorf("failed to extend subscription: %w", err)
			}
			subscription = current
		}

		transaction = &entity.Transaction{
			UserID:          fanID,
			CreatorID:       creatorID,
			SubscriptionID:  strPtr(subscription.ID),
			Amount:          profile.SubscriptionPrice,
			Type:            entity.TransactionTypeSubscription,
			Status:          entity.TransactionStatusCompleted,
			PaymentProvider: uc.cfg.PaymentProvider,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repos.Transactions.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		return appendEntry(ctx, repos, &entity.LedgerEntry{
			AccountID:     creatorID,
			Amount:        profile.SubscriptionPrice,
			EntryType:     entity.EntryTypeEarnings,
			TransactionID: strPtr(transaction.ID),
			Description:   fmt.Sprintf("subscription from %s", fanID),
			CreatedAt:     now,
		})
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Subscription of %s to %s rolled back: %v", fanID, creatorID, err)
		}
		return nil, err
	}

	expiresAt := subscription.ExpiresAt
	uc.notifier.Notify(EventSubscriptionStarted, map[string]interface{}{
		"transaction_id":  transaction.ID,
		"subscription_id": subscription.ID,
		"fan_id":          fanID,
		"creator_id":      creatorID,
		"amount_cents":    profile.SubscriptionPrice.Int64(),
		"expires_at":      expiresAt.Format(time.RFC3339),
	})

	return &entity.PurchaseResult{
		TransactionID:  transaction.ID,
		SubscriptionID: subscription.ID,
		ExpiresAt:      &expiresAt,
	}, nil
}

func (uc *recorderUseCase) CancelSubscription(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error) {
	var subscription *entity.Subscription
	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		var err error
		subscription, err = repos.Subscriptions.GetForUpdate(ctx, fanID, creatorID)
		if err != nil {
			return fault(err, "failed to load subscription")
		}

		switch subscription.Status {
		case entity.SubscriptionStatusCancelled:
			return nil
		case entity.SubscriptionStatusExpired:
			return apperror.ErrInvalidState.Withf("subscription already expired")
		}

		subscription.Status = entity.SubscriptionStatusCancelled
		subscription.AutoRenew = false
		subscription.UpdatedAt = uc.now()
		return repos.Subscriptions.Update(ctx, subscription)
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Failed to cancel subscription: %v", err)
		}
		return nil, err
	}
	return subscription, nil
}

func (uc *recorderUseCase) SendTip(ctx context.Context, fanID, creatorID string, amount money.Cents, postID *string) (*entity.PurchaseResult, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount
	}
	if fanID == creatorID {
		return nil, apperror.ErrSelfPurchase.Withf("cannot tip yourself")
	}

	repos := uc.uow.Repositories()
	if _, err := repos.Contents.GetCreatorProfile(ctx, creatorID); err != nil {
		return nil, fault(err, "failed to load creator profile")
	}
	if postID != nil {
		content, err := repos.Contents.GetByID(ctx, *postID)
		if err != nil {
			return nil, fault(err, "failed to load content")
		}
		if content.OwnerID != creatorID {
			return nil, apperror.ErrInvalidInput.Withf("content %s does not belong to creator %s", *postID, creatorID)
		}
	}

	transaction := &entity.Transaction{
		UserID:          fanID,
		CreatorID:       creatorID,
		PostID:          postID,
		Amount:          amount,
		Type:            entity.TransactionTypeTip,
		Status:          entity.TransactionStatusCompleted,
		PaymentProvider: uc.cfg.PaymentProvider,
	}

	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		now := uc.now()
		transaction.CreatedAt = now
		transaction.UpdatedAt = now
		if err := repos.Transactions.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return appendEntry(ctx, repos, &entity.LedgerEntry{
			AccountID:     creatorID,
			Amount:        amount,
			EntryType:     entity.EntryTypeEarnings,
			TransactionID: strPtr(transaction.ID),
			Description:   fmt.Sprintf("tip from %s", fanID),
			CreatedAt:     now,
		})
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Tip from %s to %s rolled back: %v", fanID, creatorID, err)
		}
		return nil, err
	}

	uc.notifier.Notify(EventTipSent, map[string]interface{}{
		"transaction_id": transaction.ID,
		"fan_id":         fanID,
		"creator_id":     creatorID,
		"amount_cents":   amount.Int64(),
	})

	return &entity.PurchaseResult{TransactionID: transaction.ID}, nil
}

func (uc *recorderUseCase) Refund(ctx context.Context, transactionID, operatorID, reason string) (*entity.Transaction, error) {
	if reason == "" {
		return nil, apperror.ErrMissingField.Withf("refund reason is required")
	}

	var (
		transaction *entity.Transaction
		refunded    bool
	)
	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		var err error
		transaction, err = repos.Transactions.GetByIDForUpdate(ctx, transactionID)
		if err != nil {
			return fault(err, "failed to load transaction")
		}

		switch transaction.Status {
		case entity.TransactionStatusRefunded:
			return nil
		case entity.TransactionStatusCompleted:
		default:
			return apperror.ErrInvalidState.Withf("transaction is %s", transaction.Status)
		}

		now := uc.now()
		if err := repos.Transactions.UpdateStatus(ctx, transaction.ID, entity.TransactionStatusCompleted, entity.TransactionStatusRefunded); err != nil {
			return fault(err, "failed to update transaction")
		}
		transaction.Status = entity.TransactionStatusRefunded
		transaction.UpdatedAt = now

		if err := appendEntry(ctx, repos, &entity.LedgerEntry{
			AccountID:     transaction.CreatorID,
			Amount:        transaction.Amount.Neg(),
			EntryType:     entity.EntryTypeRefund,
			TransactionID: strPtr(transaction.ID),
			Description:   fmt.Sprintf("refund by %s: %s", operatorID, reason),
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		if _, err := repos.Entitlements.RevokeByTransaction(ctx, transaction.ID, now); err != nil {
			return fmt.Errorf("failed to revoke entitlements: %w", err)
		}

		if transaction.Type == entity.TransactionTypeSubscription && transaction.SubscriptionID != nil {
			subscription, err := repos.Subscriptions.GetByID(ctx, *transaction.SubscriptionID)
			if err != nil {
				return fault(err, "failed to load subscription")
			}
			subscription.Status = entity.SubscriptionStatusCancelled
			subscription.AutoRenew = false
			subscription.UpdatedAt = now
			if err := repos.Subscriptions.Update(ctx, subscription); err != nil {
				return fmt.Errorf("failed to cancel subscription: %w", err)
			}
		}

		refunded = true
		return nil
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Refund of %s rolled back: %v", transactionID, err)
		}
		return nil, err
	}

	if refunded {
		uc.logger.WithField("operator_id", operatorID).Info("Transaction %s refunded", transactionID)
		uc.notifier.Notify(EventTransactionRefunded, map[string]interface{}{
			"transaction_id": transaction.ID,
			"user_id":        transaction.UserID,
			"creator_id":     transaction.CreatorID,
			"amount_cents":   transaction.Amount.Int64(),
		})
	}
	return transaction, nil
}

func (uc *recorderUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	transactions, err := uc.uow.Repositories().Transactions.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to get transactions: %v", err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}
