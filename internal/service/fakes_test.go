package service

import (
	"context"
	"sync"

	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/contract"
	"ai-bookchat-be/internal/repository/specification"
	"ai-bookchat-be/internal/repository/unitofwork"
)

// In-memory repository fakes so service logic can be exercised without a
// database. Specifications are matched by type where the tests need them,
// and the fake unit of work snapshots state on Begin so Rollback behaves
// like a real transaction.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string // bodies in delivery order
	to   []string
	err  error
}

func (s *fakeSender) SendText(ctx context.Context, to string, body string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.to = append(s.to, to)
	s.sent = append(s.sent, body)
	return nil
}

func (s *fakeSender) lastBody() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1]
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	byWa map[string]*entity.Subscription

	createErr error
	updateErr error
	findErr   error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{byWa: make(map[string]*entity.Subscription)}
}

func (r *fakeSubscriptionRepo) snapshot() map[string]*entity.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Subscription, len(r.byWa))
	for k, v := range r.byWa {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *fakeSubscriptionRepo) restore(snap map[string]*entity.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byWa = snap
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.byWa[sub.WhatsappNumber] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.byWa[sub.WhatsappNumber] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byWa, ok := spec.(specification.ByWhatsappNumber); ok {
			if sub, found := r.byWa[byWa.Number]; found {
				cp := *sub
				return &cp, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byWa)), nil
}

type fakePaymentOrderRepo struct {
	mu      sync.Mutex
	byOrder map[string]*entity.PaymentOrder

	updateErr error
}

func newFakePaymentOrderRepo() *fakePaymentOrderRepo {
	return &fakePaymentOrderRepo{byOrder: make(map[string]*entity.PaymentOrder)}
}

func (r *fakePaymentOrderRepo) snapshot() map[string]*entity.PaymentOrder {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.PaymentOrder, len(r.byOrder))
	for k, v := range r.byOrder {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *fakePaymentOrderRepo) restore(snap map[string]*entity.PaymentOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOrder = snap
}

func (r *fakePaymentOrderRepo) Create(ctx context.Context, order *entity.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.byOrder[order.OrderId] = &cp
	return nil
}

func (r *fakePaymentOrderRepo) Update(ctx context.Context, order *entity.PaymentOrder) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.byOrder[order.OrderId] = &cp
	return nil
}

func (r *fakePaymentOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByOrderId); ok {
			if order, found := r.byOrder[byId.OrderId]; found {
				cp := *order
				return &cp, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

type fakeProcessedMessageRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeProcessedMessageRepo() *fakeProcessedMessageRepo {
	return &fakeProcessedMessageRepo{seen: make(map[string]bool)}
}

func (r *fakeProcessedMessageRepo) MarkProcessed(ctx context.Context, messageId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[messageId] {
		return false, nil
	}
	r.seen[messageId] = true
	return true, nil
}

func (r *fakeProcessedMessageRepo) Exists(ctx context.Context, messageId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[messageId], nil
}

type fakeUnitOfWork struct {
	subs      *fakeSubscriptionRepo
	orders    *fakePaymentOrderRepo
	processed *fakeProcessedMessageRepo

	inTx       bool
	subsSnap   map[string]*entity.Subscription
	ordersSnap map[string]*entity.PaymentOrder
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	u.subsSnap = u.subs.snapshot()
	u.ordersSnap = u.orders.snapshot()
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.inTx = false
	u.subsSnap = nil
	u.ordersSnap = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.inTx {
		return nil
	}
	u.subs.restore(u.subsSnap)
	u.orders.restore(u.ordersSnap)
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) BookChunkRepository() contract.BookChunkRepository { return nil }
func (u *fakeUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return u.subs
}
func (u *fakeUnitOfWork) ChatLogRepository() contract.ChatLogRepository { return nil }
func (u *fakeUnitOfWork) ProcessedMessageRepository() contract.ProcessedMessageRepository {
	return u.processed
}
func (u *fakeUnitOfWork) PaymentOrderRepository() contract.PaymentOrderRepository {
	return u.orders
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func newFakeRepositoryFactory() *fakeRepositoryFactory {
	return &fakeRepositoryFactory{uow: &fakeUnitOfWork{
		subs:      newFakeSubscriptionRepo(),
		orders:    newFakePaymentOrderRepo(),
		processed: newFakeProcessedMessageRepo(),
	}}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func byWhatsappNumber(number string) specification.Specification {
	return specification.ByWhatsappNumber{Number: number}
}

func byOrderId(orderId string) specification.Specification {
	return specification.ByOrderId{OrderId: orderId}
}
