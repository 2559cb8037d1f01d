package persistent

import (
	"encoding/json"

	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/datatypes"
)

func ToLedgerEntryEntity(m *model.LedgerEntryModel) *entity.LedgerEntry {
	if m == nil {
		return nil
	}

	return &entity.LedgerEntry{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Amount:        money.Cents(m.AmountCents),
		EntryType:     entity.EntryType(m.EntryType),
		TransactionID: m.TransactionID,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

func ToLedgerEntryModel(e *entity.LedgerEntry) *model.LedgerEntryModel {
	if e == nil {
		return nil
	}

	return &model.LedgerEntryModel{
		ID:            e.ID,
		AccountID:     e.AccountID,
		AmountCents:   e.Amount.Int64(),
		EntryType:     string(e.EntryType),
		TransactionID: e.TransactionID,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		CreatorID:       m.CreatorID,
		PostID:          m.PostID,
		SubscriptionID:  m.SubscriptionID,
		Amount:          money.Cents(m.AmountCents),
		Type:            entity.TransactionType(m.TransactionType),
		Status:          entity.TransactionStatus(m.Status),
		PaymentProvider: m.PaymentProvider,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:              e.ID,
		UserID:          e.UserID,
		CreatorID:       e.CreatorID,
		PostID:          e.PostID,
		SubscriptionID:  e.SubscriptionID,
		AmountCents:     e.Amount.Int64(),
		TransactionType: string(e.Type),
		Status:          string(e.Status),
		PaymentProvider: e.PaymentProvider,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToEntitlementEntity(m *model.EntitlementModel) *entity.Entitlement {
	if m == nil {
		return nil
	}

	return &entity.Entitlement{
		ID:            m.ID,
		UserID:        m.UserID,
		PostID:        m.PostID,
		Type:          entity.EntitlementType(m.EntitlementType),
		TransactionID: m.TransactionID,
		ExpiresAt:     m.ExpiresAt,
		RevokedAt:     m.RevokedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func ToEntitlementModel(e *entity.Entitlement) *model.EntitlementModel {
	if e == nil {
		return nil
	}

	return &model.EntitlementModel{
		ID:              e.ID,
		UserID:          e.UserID,
		PostID:          e.PostID,
		EntitlementType: string(e.Type),
		TransactionID:   e.TransactionID,
		ExpiresAt:       e.ExpiresAt,
		RevokedAt:       e.RevokedAt,
		CreatedAt:       e.CreatedAt,
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:        m.ID,
		FanID:     m.FanID,
		CreatorID: m.CreatorID,
		Status:    entity.SubscriptionStatus(m.Status),
		ExpiresAt: m.ExpiresAt,
		AutoRenew: m.AutoRenew,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToSubscriptionModel(e *entity.Subscription) *model.SubscriptionModel {
	if e == nil {
		return nil
	}

	return &model.SubscriptionModel{
		ID:        e.ID,
		FanID:     e.FanID,
		CreatorID: e.CreatorID,
		Status:    string(e.Status),
		ExpiresAt: e.ExpiresAt,
		AutoRenew: e.AutoRenew,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToPayoutEntity(m *model.PayoutModel) *entity.Payout {
	if m == nil {
		return nil
	}

	var details map[string]interface{}
	if len(m.PayoutDetails) > 0 {
		_ = json.Unmarshal(m.PayoutDetails, &details)
	}

	return &entity.Payout{
		ID:            m.ID,
		CreatorID:     m.CreatorID,
		Amount:        money.Cents(m.AmountCents),
		Status:        entity.PayoutStatus(m.Status),
		PayoutMethod:  m.PayoutMethod,
		PayoutDetails: details,
		ProcessedBy:   m.ProcessedBy,
		AdminNotes:    m.AdminNotes,
		FailureReason: m.FailureReason,
		LedgerEntryID: m.LedgerEntryID,
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToPayoutModel(e *entity.Payout) (*model.PayoutModel, error) {
	if e == nil {
		return nil, nil
	}

	details := e.PayoutDetails
	if details == nil {
		details = map[string]interface{}{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	return &model.PayoutModel{
		ID:            e.ID,
		CreatorID:     e.CreatorID,
		AmountCents:   e.Amount.Int64(),
		Status:        string(e.Status),
		PayoutMethod:  e.PayoutMethod,
		PayoutDetails: datatypes.JSON(raw),
		ProcessedBy:   e.ProcessedBy,
		AdminNotes:    e.AdminNotes,
		FailureReason: e.FailureReason,
		LedgerEntryID: e.LedgerEntryID,
		ProcessedAt:   e.ProcessedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}, nil
}

func ToContentEntity(m *model.ContentModel) *entity.Content {
	if m == nil {
		return nil
	}

	return &entity.Content{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Kind:       entity.ContentKind(m.Kind),
		Visibility: entity.Visibility(m.Visibility),
		Price:      money.Cents(m.PriceCents),
	}
}

func ToCreatorVerificationEntity(m *model.CreatorVerificationModel) *entity.CreatorVerification {
	if m == nil {
		return nil
	}

	return &entity.CreatorVerification{
		CreatorID: m.CreatorID,
		Status:    entity.VerificationStatus(m.Status),
		Provider:  m.Provider,
		InquiryID: m.InquiryID,
		DecidedAt: m.DecidedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
