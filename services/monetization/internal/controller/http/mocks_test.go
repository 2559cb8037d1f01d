package http

import (
	"context"
	"time"

	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockEntitlementUseCase struct {
	mock.Mock
}

func (m *MockEntitlementUseCase) HasAccess(ctx context.Context, userID, contentID string) (bool, error) {
	args := m.Called(userID, contentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntitlementUseCase) Grant(ctx context.Context, userID, contentID string, entitlementType entity.EntitlementType, expiresAt *time.Time, transactionID *string) (*entity.Entitlement, bool, error) {
	args := m.Called(userID, contentID, entitlementType)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entity.Entitlement), args.Bool(1), args.Error(2)
}

func (m *MockEntitlementUseCase) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Entitlement, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Entitlement), args.Error(1)
}

func (m *MockEntitlementUseCase) ExpireSubscriptions(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockRecorderUseCase struct {
	mock.Mock
}

func (m *MockRecorderUseCase) PurchaseContent(ctx context.Context, buyerID, contentID string) (*entity.PurchaseResult, error) {
	args := m.Called(buyerID, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseResult), args.Error(1)
}

func (m *MockRecorderUseCase) PurchaseSubscription(ctx context.Context, fanID, creatorID string) (*entity.PurchaseResult, error) {
	args := m.Called(fanID, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseResult), args.Error(1)
}

func (m *MockRecorderUseCase) CancelSubscription(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error) {
	args := m.Called(fanID, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockRecorderUseCase) SendTip(ctx context.Context, fanID, creatorID string, amount money.Cents, postID *string) (*entity.PurchaseResult, error) {
	args := m.Called(fanID, creatorID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseResult), args.Error(1)
}

func (m *MockRecorderUseCase) Refund(ctx context.Context, transactionID, operatorID, reason string) (*entity.Transaction, error) {
	args := m.Called(transactionID, operatorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockRecorderUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

type MockPayoutUseCase struct {
	mock.Mock
}

func (m *MockPayoutUseCase) RequestPayout(ctx context.Context, creatorID string, amount money.Cents, method string, details map[string]interface{}) (*entity.Payout, error) {
	args := m.Called(creatorID, amount, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) ProcessPayout(ctx context.Context, payoutID string, action entity.PayoutAction, operatorID, notes string, failureReason *string) (*entity.Payout, error) {
	args := m.Called(payoutID, action, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) CancelPayout(ctx context.Context, creatorID, payoutID string) (*entity.Payout, error) {
	args := m.Called(creatorID, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) ListPayouts(ctx context.Context, creatorID string, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	args := m.Called(creatorID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) ListAllPayouts(ctx context.Context, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payout), args.Error(1)
}

type MockEarningsUseCase struct {
	mock.Mock
}

func (m *MockEarningsUseCase) GetCreatorEarnings(ctx context.Context, creatorID string) (*entity.Earnings, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Earnings), args.Error(1)
}

type MockVerificationUseCase struct {
	mock.Mock
}

func (m *MockVerificationUseCase) HandleWebhook(ctx context.Context, body []byte, signature string) (bool, error) {
	args := m.Called(string(body), signature)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationUseCase) ApplyEvent(ctx context.Context, event *entity.VerificationEvent) (bool, error) {
	args := m.Called(event)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationUseCase) IsApproved(ctx context.Context, creatorID string) (bool, error) {
	args := m.Called(creatorID)
	return args.Bool(0), args.Error(1)
}

var (
	_ usecase.EntitlementUseCase  = (*MockEntitlementUseCase)(nil)
	_ usecase.RecorderUseCase     = (*MockRecorderUseCase)(nil)
	_ usecase.PayoutUseCase       = (*MockPayoutUseCase)(nil)
	_ usecase.EarningsUseCase     = (*MockEarningsUseCase)(nil)
	_ usecase.VerificationUseCase = (*MockVerificationUseCase)(nil)
)
