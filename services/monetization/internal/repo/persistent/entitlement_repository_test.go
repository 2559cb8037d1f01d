package persistent

import (
	"context"
	"regexp"
	"testing"
	"time"

	"lick-scroll-monetization/services/monetization/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementRepository_Grant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntitlementRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entitlements" SET "revoked_at"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("user_id","post_id","entitlement_type") WHERE revoked_at IS NULL DO NOTHING`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entitlement := &entity.Entitlement{
		UserID:    "buyer-1",
		PostID:    "post-1",
		Type:      entity.EntitlementTypePPVPurchase,
		CreatedAt: time.Now().UTC(),
	}
	created, err := repo.Grant(context.Background(), entitlement)

	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, entitlement.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntitlementRepository_GrantIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntitlementRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entitlements" SET "revoked_at"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "entitlements"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	created, err := repo.Grant(context.Background(), &entity.Entitlement{
		UserID:    "buyer-1",
		PostID:    "post-1",
		Type:      entity.EntitlementTypeGift,
		CreatedAt: time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntitlementRepository_GrantReplacesExpiredRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntitlementRepository(db)
	now := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "entitlements" SET "revoked_at"=\$1 WHERE \(user_id = \$2 AND post_id = \$3 AND entitlement_type = \$4\) AND \(revoked_at IS NULL AND expires_at IS NOT NULL AND expires_at <= \$5\)`).
		WithArgs(now, "buyer-1", "post-1", "gift", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "entitlements"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Grant(context.Background(), &entity.Entitlement{
		UserID:    "buyer-1",
		PostID:    "post-1",
		Type:      entity.EntitlementTypeGift,
		CreatedAt: now,
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
