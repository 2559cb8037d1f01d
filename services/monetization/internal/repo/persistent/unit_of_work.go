package persistent

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repositories is the set of repositories bound to one database handle,
// either the pool or a single transaction.
type Repositories struct {
	Ledger        LedgerRepository
	Transactions  TransactionRepository
	Entitlements  EntitlementRepository
	Subscriptions SubscriptionRepository
	Payouts       PayoutRepository
	Contents      ContentRepository
	Verifications VerificationRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Ledger:        NewLedgerRepository(db),
		Transactions:  NewTransactionRepository(db),
		Entitlements:  NewEntitlementRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Payouts:       NewPayoutRepository(db),
		Contents:      NewContentRepository(db),
		Verifications: NewVerificationRepository(db),
	}
}

// UnitOfWork runs a group of repository calls atomically. If fn returns an
// error every write made through the supplied Repositories is rolled back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos *Repositories) error) error
	// Read runs fn in a read-only snapshot so multi-query reads agree.
	Read(ctx context.Context, fn func(repos *Repositories) error) error
	Repositories() *Repositories
}

type unitOfWork struct {
	db    *gorm.DB
	repos *Repositories
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db, repos: NewRepositories(db)}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func (u *unitOfWork) Read(ctx context.Context, fn func(repos *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

func (u *unitOfWork) Repositories() *Repositories {
	return u.repos
}
