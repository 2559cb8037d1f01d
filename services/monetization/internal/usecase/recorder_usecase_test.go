package usecase

import (
	"context"
	"testing"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderFixture struct {
	store        *memStore
	notifier     *recordingNotifier
	recorder     RecorderUseCase
	entitlements EntitlementUseCase
	earnings     EarningsUseCase
	now          time.Time
}

func newRecorderFixture() *recorderFixture {
	f := &recorderFixture{
		store:    newMemStore(),
		notifier: &recordingNotifier{},
		now:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	recorder := NewRecorderUseCase(f.store, f.notifier, RecorderConfig{
		PaymentProvider:    "mock",
		SubscriptionPeriod: 30 * 24 * time.Hour,
	}, testLogger()).(*recorderUseCase)
	recorder.now = clock
	f.recorder = recorder

	entitlements := NewEntitlementUseCase(f.store, nil, testLogger()).(*entitlementUseCase)
	entitlements.now = clock
	f.entitlements = entitlements

	f.earnings = NewEarningsUseCase(f.store, testLogger())

	f.store.addContent(entity.Content{ID: "post-1", OwnerID: "creator-1", Kind: entity.ContentKindPost, Visibility: entity.VisibilityPPV, Price: 500})
	f.store.addContent(entity.Content{ID: "stream-1", OwnerID: "creator-1", Kind: entity.ContentKindStream, Visibility: entity.VisibilityPPV, Price: 1200})
	f.store.addContent(entity.Content{ID: "post-free", OwnerID: "creator-1", Kind: entity.ContentKindPost, Visibility: entity.VisibilityFree})
	f.store.addContent(entity.Content{ID: "post-subs", OwnerID: "creator-1", Kind: entity.ContentKindPost, Visibility: entity.VisibilitySubscriber})
	f.store.addProfile("creator-1", 999)
	return f
}

func TestPurchaseContent_PPVScenario(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	before := pendingOf(t, f.earnings, "creator-1")

	has, err := f.entitlements.HasAccess(ctx, "buyer-1", "post-1")
	require.NoError(t, err)
	assert.False(t, has)

	result, err := f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.TransactionID)

	has, err = f.entitlements.HasAccess(ctx, "buyer-1", "post-1")
	require.NoError(t, err)
	assert.True(t, has)

	assert.Equal(t, before.Add(500), pendingOf(t, f.earnings, "creator-1"))

	ledger, transactions, entitlements := f.store.counts()
	assert.Equal(t, 1, ledger)
	assert.Equal(t, 1, transactions)
	assert.Equal(t, 1, entitlements)
	assert.Equal(t, []string{EventPurchaseCompleted}, f.notifier.Events())
}

func TestPurchaseContent_Rejections(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	_, err := f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	require.NoError(t, err)

	_, err = f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	assert.ErrorIs(t, err, apperror.ErrAlreadyOwned)

	_, err = f.recorder.PurchaseContent(ctx, "creator-1", "post-1")
	assert.ErrorIs(t, err, apperror.ErrSelfPurchase)

	_, err = f.recorder.PurchaseContent(ctx, "buyer-1", "post-free")
	assert.ErrorIs(t, err, apperror.ErrNotPurchasable)

	_, err = f.recorder.PurchaseContent(ctx, "buyer-1", "missing")
	assert.ErrorIs(t, err, apperror.ErrContentNotFound)

	ledger, transactions, entitlements := f.store.counts()
	assert.Equal(t, 1, ledger)
	assert.Equal(t, 1, transactions)
	assert.Equal(t, 1, entitlements)
}

func TestPurchaseContent_StreamUsesSamePath(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	_, err := f.recorder.PurchaseContent(ctx, "buyer-1", "stream-1")
	require.NoError(t, err)

	has, err := f.entitlements.HasAccess(ctx, "buyer-1", "stream-1")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, money.Cents(1200), pendingOf(t, f.earnings, "creator-1"))
}

func TestPurchaseContent_FailedSubWriteRollsBackEverything(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	f.store.appendErr = errInjected
	_, err := f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	require.Error(t, err)

	ledger, transactions, entitlements := f.store.counts()
	assert.Zero(t, ledger)
	assert.Zero(t, transactions)
	assert.Zero(t, entitlements)
	assert.Empty(t, f.notifier.Events())

	f.store.appendErr = nil
	f.store.transactionErr = errInjected
	_, err = f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	require.Error(t, err)

	ledger, transactions, entitlements = f.store.counts()
	assert.Zero(t, ledger)
	assert.Zero(t, transactions)
	assert.Zero(t, entitlements)

	has, err := f.entitlements.HasAccess(ctx, "buyer-1", "post-1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestPurchaseSubscription(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	result, err := f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)
	require.NotNil(t, result.ExpiresAt)
	assert.Equal(t, f.now.Add(30*24*time.Hour), *result.ExpiresAt)
	assert.NotEmpty(t, result.SubscriptionID)

	has, err := f.entitlements.HasAccess(ctx, "fan-1", "post-subs")
	require.NoError(t, err)
	assert.True(t, has)

	renewed, err := f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)
	assert.Equal(t, f.now.Add(60*24*time.Hour), *renewed.ExpiresAt)
	assert.Equal(t, result.SubscriptionID, renewed.SubscriptionID)

	assert.Equal(t, money.Cents(1998), pendingOf(t, f.earnings, "creator-1"))

	_, err = f.recorder.PurchaseSubscription(ctx, "creator-1", "creator-1")
	assert.ErrorIs(t, err, apperror.ErrSelfPurchase)

	_, err = f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-unknown")
	assert.ErrorIs(t, err, apperror.ErrCreatorNotFound)
}

func TestPurchaseSubscription_LapsedRestartsFromNow(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	_, err := f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)

	f.now = f.now.Add(45 * 24 * time.Hour)
	has, err := f.entitlements.HasAccess(ctx, "fan-1", "post-subs")
	require.NoError(t, err)
	assert.False(t, has)

	result, err := f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)
	assert.Equal(t, f.now.Add(30*24*time.Hour), *result.ExpiresAt)
}

func TestCancelSubscription(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	_, err := f.recorder.CancelSubscription(ctx, "fan-1", "creator-1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)

	sub, err := f.recorder.CancelSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
	assert.False(t, sub.AutoRenew)

	has, err := f.entitlements.HasAccess(ctx, "fan-1", "post-subs")
	require.NoError(t, err)
	assert.False(t, has)

	again, err := f.recorder.CancelSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusCancelled, again.Status)
}

func TestSendTip(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()
	postID := "post-free"

	result, err := f.recorder.SendTip(ctx, "fan-1", "creator-1", 300, &postID)
	require.NoError(t, err)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, money.Cents(300), pendingOf(t, f.earnings, "creator-1"))

	_, err = f.recorder.SendTip(ctx, "fan-1", "creator-1", 0, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)

	_, err = f.recorder.SendTip(ctx, "creator-1", "creator-1", 100, nil)
	assert.ErrorIs(t, err, apperror.ErrSelfPurchase)

	f.store.addContent(entity.Content{ID: "other", OwnerID: "creator-2", Visibility: entity.VisibilityFree})
	other := "other"
	_, err = f.recorder.SendTip(ctx, "fan-1", "creator-1", 100, &other)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, _, entitlements := f.store.counts()
	assert.Zero(t, entitlements)
}

func TestRefund_PPV(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	purchase, err := f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	require.NoError(t, err)

	_, err = f.recorder.Refund(ctx, purchase.TransactionID, "admin-1", "")
	assert.ErrorIs(t, err, apperror.ErrMissingField)

	refunded, err := f.recorder.Refund(ctx, purchase.TransactionID, "admin-1", "chargeback")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusRefunded, refunded.Status)

	has, err := f.entitlements.HasAccess(ctx, "buyer-1", "post-1")
	require.NoError(t, err)
	assert.False(t, has)

	e, err := f.earnings.GetCreatorEarnings(ctx, "creator-1")
	require.NoError(t, err)
	assert.True(t, e.PendingEarnings.IsZero())
	assert.Equal(t, money.Cents(500), e.Refunded)

	ledgerBefore, _, _ := f.store.counts()
	again, err := f.recorder.Refund(ctx, purchase.TransactionID, "admin-1", "chargeback")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusRefunded, again.Status)
	ledgerAfter, _, _ := f.store.counts()
	assert.Equal(t, ledgerBefore, ledgerAfter)

	_, err = f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	assert.NoError(t, err)

	_, err = f.recorder.Refund(ctx, "missing", "admin-1", "x")
	assert.ErrorIs(t, err, apperror.ErrTransactionNotFound)
}

func TestRefund_SubscriptionCancelsIt(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	result, err := f.recorder.PurchaseSubscription(ctx, "fan-1", "creator-1")
	require.NoError(t, err)

	_, err = f.recorder.Refund(ctx, result.TransactionID, "admin-1", "fraud")
	require.NoError(t, err)

	has, err := f.entitlements.HasAccess(ctx, "fan-1", "post-subs")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestListTransactions(t *testing.T) {
	f := newRecorderFixture()
	ctx := context.Background()

	_, err := f.recorder.PurchaseContent(ctx, "buyer-1", "post-1")
	require.NoError(t, err)
	_, err = f.recorder.SendTip(ctx, "buyer-1", "creator-1", 100, nil)
	require.NoError(t, err)

	transactions, err := f.recorder.ListTransactions(ctx, "buyer-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, transactions, 2)

	none, err := f.recorder.ListTransactions(ctx, "someone-else", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
