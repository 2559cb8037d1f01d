package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

var errInjected = errors.New("injected failure")

// memState is everything the in-memory store persists. It is copied on
// every Do so a failing unit can be rolled back.
type memState struct {
	ledger        []entity.LedgerEntry
	transactions  map[string]entity.Transaction
	entitlements  []entity.Entitlement
	subscriptions map[string]entity.Subscription
	payouts       map[string]entity.Payout
	contents      map[string]entity.Content
	profiles      map[string]entity.CreatorProfile
	verifications map[string]entity.CreatorVerification
	events        map[string]entity.VerificationEvent
}

func (s *memState) clone() memState {
	c := memState{
		ledger:        append([]entity.LedgerEntry(nil), s.ledger...),
		entitlements:  append([]entity.Entitlement(nil), s.entitlements...),
		transactions:  make(map[string]entity.Transaction, len(s.transactions)),
		subscriptions: make(map[string]entity.Subscription, len(s.subscriptions)),
		payouts:       make(map[string]entity.Payout, len(s.payouts)),
		contents:      make(map[string]entity.Content, len(s.contents)),
		profiles:      make(map[string]entity.CreatorProfile, len(s.profiles)),
		verifications: make(map[string]entity.CreatorVerification, len(s.verifications)),
		events:        make(map[string]entity.VerificationEvent, len(s.events)),
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.subscriptions {
		c.subscriptions[k] = v
	}
	for k, v := range s.payouts {
		c.payouts[k] = v
	}
	for k, v := range s.contents {
		c.contents[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.verifications {
		c.verifications[k] = v
	}
	for k, v := range s.events {
		c.events[k] = v
	}
	return c
}

// memStore is a UnitOfWork over memState. Units of work are serialized,
// which is the strongest isolation the real database offers.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	memState
	seq int

	appendErr      error
	transactionErr error

	repos *persistent.Repositories
}

func newMemStore() *memStore {
	s := &memStore{
		memState: memState{
			transactions:  map[string]entity.Transaction{},
			subscriptions: map[string]entity.Subscription{},
			payouts:       map[string]entity.Payout{},
			contents:      map[string]entity.Content{},
			profiles:      map[string]entity.CreatorProfile{},
			verifications: map[string]entity.CreatorVerification{},
			events:        map[string]entity.VerificationEvent{},
		},
	}
	s.repos = &persistent.Repositories{
		Ledger:        memLedger{s},
		Transactions:  memTransactions{s},
		Entitlements:  memEntitlements{s},
		Subscriptions: memSubscriptions{s},
		Payouts:       memPayouts{s},
		Contents:      memContents{s},
		Verifications: memVerifications{s},
	}
	return s
}

func (s *memStore) Do(ctx context.Context, fn func(repos *persistent.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.memState.clone()
	s.mu.Unlock()

	if err := fn(s.repos); err != nil {
		s.mu.Lock()
		s.memState = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) Read(ctx context.Context, fn func(repos *persistent.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.repos)
}

func (s *memStore) Repositories() *persistent.Repositories {
	return s.repos
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// Fixtures.

func (s *memStore) addContent(c entity.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents[c.ID] = c
}

func (s *memStore) addProfile(creatorID string, price money.Cents) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[creatorID] = entity.CreatorProfile{CreatorID: creatorID, SubscriptionPrice: price}
}

func (s *memStore) approve(creatorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifications[creatorID] = entity.CreatorVerification{
		CreatorID: creatorID,
		Status:    entity.VerificationStatusApproved,
		DecidedAt: time.Now().UTC(),
	}
}

func (s *memStore) addEarnings(creatorID string, amount money.Cents) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = append(s.ledger, entity.LedgerEntry{
		ID:        s.nextID("entry"),
		AccountID: creatorID,
		Amount:    amount,
		EntryType: entity.EntryTypeEarnings,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *memStore) counts() (ledger, transactions, entitlements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger), len(s.transactions), len(s.entitlements)
}

func (s *memStore) payout(id string) entity.Payout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payouts[id]
}

type memLedger struct{ s *memStore }

func (r memLedger) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.appendErr != nil {
		return r.s.appendErr
	}
	entry.ID = r.s.nextID("entry")
	r.s.ledger = append(r.s.ledger, *entry)
	return nil
}

func (r memLedger) SumForAccount(ctx context.Context, accountID string, types ...entity.EntryType) (money.Cents, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum money.Cents
	for _, e := range r.s.ledger {
		if e.AccountID != accountID {
			continue
		}
		if len(types) > 0 && !containsType(types, e.EntryType) {
			continue
		}
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (r memLedger) SumByType(ctx context.Context, accountID string) (map[entity.EntryType]money.Cents, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := map[entity.EntryType]money.Cents{}
	for _, e := range r.s.ledger {
		if e.AccountID == accountID {
			sums[e.EntryType] = sums[e.EntryType].Add(e.Amount)
		}
	}
	return sums, nil
}

func (r memLedger) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		if e := r.s.ledger[i]; e.AccountID == accountID {
			out = append(out, &e)
		}
	}
	return page(out, limit, offset), nil
}

func containsType(types []entity.EntryType, t entity.EntryType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type memTransactions struct{ s *memStore }

func (r memTransactions) Create(ctx context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.transactionErr != nil {
		return r.s.transactionErr
	}
	t.ID = r.s.nextID("txn")
	r.s.transactions[t.ID] = *t
	return nil
}

func (r memTransactions) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, apperror.ErrTransactionNotFound
	}
	return &t, nil
}

func (r memTransactions) UpdateStatus(ctx context.Context, id string, from, to entity.TransactionStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.Status != from {
		return apperror.ErrConcurrentUpdate
	}
	t.Status = to
	r.s.transactions[id] = t
	return nil
}

func (r memTransactions) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

type memEntitlements struct{ s *memStore }

func (r memEntitlements) Grant(ctx context.Context, e *entity.Entitlement) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.entitlements {
		existing := &r.s.entitlements[i]
		if existing.RevokedAt != nil || existing.UserID != e.UserID || existing.PostID != e.PostID || existing.Type != e.Type {
			continue
		}
		if existing.ExpiresAt != nil && !existing.ExpiresAt.After(e.CreatedAt) {
			revoked := e.CreatedAt
			existing.RevokedAt = &revoked
			continue
		}
		return false, nil
	}
	e.ID = r.s.nextID("ent")
	r.s.entitlements = append(r.s.entitlements, *e)
	return true, nil
}

func (r memEntitlements) HasActive(ctx context.Context, userID, postID string, now time.Time, types ...entity.EntitlementType) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entitlements {
		if e.UserID != userID || e.PostID != postID || !e.ActiveAt(now) {
			continue
		}
		for _, t := range types {
			if e.Type == t {
				return true, nil
			}
		}
		if len(types) == 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r memEntitlements) RevokeByTransaction(ctx context.Context, transactionID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for i := range r.s.entitlements {
		e := &r.s.entitlements[i]
		if e.TransactionID != nil && *e.TransactionID == transactionID && e.RevokedAt == nil {
			revoked := at
			e.RevokedAt = &revoked
			n++
		}
	}
	return n, nil
}

func (r memEntitlements) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Entitlement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Entitlement
	for _, e := range r.s.entitlements {
		if e.UserID == userID && e.RevokedAt == nil {
			e := e
			out = append(out, &e)
		}
	}
	return page(out, limit, offset), nil
}

type memSubscriptions struct{ s *memStore }

func subKey(fanID, creatorID string) string { return fanID + "|" + creatorID }

func (r memSubscriptions) Get(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subscriptions[subKey(fanID, creatorID)]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &sub, nil
}

func (r memSubscriptions) GetForUpdate(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error) {
	return r.Get(ctx, fanID, creatorID)
}

func (r memSubscriptions) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subscriptions {
		if sub.ID == id {
			return &sub, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r memSubscriptions) Create(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := subKey(sub.FanID, sub.CreatorID)
	if _, ok := r.s.subscriptions[key]; ok {
		return apperror.ErrConcurrentUpdate
	}
	sub.ID = r.s.nextID("sub")
	r.s.subscriptions[key] = *sub
	return nil
}

func (r memSubscriptions) Update(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.subscriptions[subKey(sub.FanID, sub.CreatorID)] = *sub
	return nil
}

func (r memSubscriptions) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k, sub := range r.s.subscriptions {
		if sub.Status == entity.SubscriptionStatusActive && !sub.ExpiresAt.After(now) {
			sub.Status = entity.SubscriptionStatusExpired
			r.s.subscriptions[k] = sub
			n++
		}
	}
	return n, nil
}

type memPayouts struct{ s *memStore }

func (r memPayouts) Create(ctx context.Context, p *entity.Payout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payouts {
		if existing.CreatorID == p.CreatorID && !existing.Status.IsTerminal() {
			return apperror.ErrDuplicateRequest
		}
	}
	p.ID = r.s.nextID("payout")
	r.s.payouts[p.ID] = *p
	return nil
}

func (r memPayouts) GetByID(ctx context.Context, id string) (*entity.Payout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payouts[id]
	if !ok {
		return nil, apperror.ErrPayoutNotFound
	}
	return &p, nil
}

func (r memPayouts) GetByIDForUpdate(ctx context.Context, id string) (*entity.Payout, error) {
	return r.GetByID(ctx, id)
}

func (r memPayouts) Update(ctx context.Context, p *entity.Payout, from entity.PayoutStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.payouts[p.ID]
	if !ok || existing.Status != from {
		return apperror.ErrConcurrentUpdate
	}
	r.s.payouts[p.ID] = *p
	return nil
}

func (r memPayouts) ReservedForCreator(ctx context.Context, creatorID string) (money.Cents, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum money.Cents
	for _, p := range r.s.payouts {
		if p.CreatorID == creatorID && !p.Status.IsTerminal() {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r memPayouts) HasActive(ctx context.Context, creatorID string) (bool, error) {
	reserved, err := r.ReservedForCreator(ctx, creatorID)
	return reserved.IsPositive(), err
}

func (r memPayouts) ListByCreator(ctx context.Context, creatorID string, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	return r.list(func(p entity.Payout) bool {
		return p.CreatorID == creatorID && (status == "" || p.Status == status)
	}, limit, offset), nil
}

func (r memPayouts) ListByStatus(ctx context.Context, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	return r.list(func(p entity.Payout) bool {
		return status == "" || p.Status == status
	}, limit, offset), nil
}

func (r memPayouts) list(match func(entity.Payout) bool, limit, offset int) []*entity.Payout {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payout
	for _, p := range r.s.payouts {
		if match(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset)
}

type memContents struct{ s *memStore }

func (r memContents) GetByID(ctx context.Context, id string) (*entity.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contents[id]
	if !ok {
		return nil, apperror.ErrContentNotFound
	}
	return &c, nil
}

func (r memContents) GetCreatorProfile(ctx context.Context, creatorID string) (*entity.CreatorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[creatorID]
	if !ok {
		return nil, apperror.ErrCreatorNotFound
	}
	return &p, nil
}

type memVerifications struct{ s *memStore }

func (r memVerifications) Get(ctx context.Context, creatorID string) (*entity.CreatorVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.verifications[creatorID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r memVerifications) GetForUpdate(ctx context.Context, creatorID string) (*entity.CreatorVerification, error) {
	return r.Get(ctx, creatorID)
}

func (r memVerifications) RecordEvent(ctx context.Context, event *entity.VerificationEvent) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := event.Provider + "|" + event.InquiryID + "|" + string(event.Decision)
	if _, ok := r.s.events[key]; ok {
		return false, nil
	}
	event.ID = r.s.nextID("event")
	r.s.events[key] = *event
	return true, nil
}

func (r memVerifications) Upsert(ctx context.Context, v *entity.CreatorVerification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.verifications[v.CreatorID] = *v
	return nil
}

// recordingNotifier captures events synchronously.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(event string, payload map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func testLogger() *logger.Logger {
	return logger.NewWithLevel("panic")
}
