package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/constant"
	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/entity"
)

const testServerKey = "SB-Mid-server-test"

func signedNotification(orderId, status, grossAmount string) *dto.MidtransNotification {
	statusCode := "200"
	raw := orderId + statusCode + grossAmount + testServerKey
	return &dto.MidtransNotification{
		TransactionStatus: status,
		StatusCode:        statusCode,
		OrderId:           orderId,
		GrossAmount:       grossAmount,
		SignatureKey:      fmt.Sprintf("%x", sha512.Sum512([]byte(raw))),
	}
}

func newTestPaymentService(factory *fakeRepositoryFactory, sender *fakeSender) IPaymentService {
	subs := NewSubscriptionService(factory, 15, 50, nopLogger{})
	cfg := config.PaymentConfig{
		MidtransServerKey: testServerKey,
		CreditPackPrice:   50000,
		CreditPackSize:    100,
		MonthlyPrice:      150000,
	}
	return NewPaymentService(factory, subs, sender, nil, cfg, nopLogger{})
}

func seedPendingOrder(t *testing.T, factory *fakeRepositoryFactory, orderId, number, planType string) {
	t.Helper()
	require.NoError(t, factory.uow.orders.Create(context.Background(), &entity.PaymentOrder{
		Id:             uuid.New(),
		OrderId:        orderId,
		WhatsappNumber: number,
		PlanType:       planType,
		GrossAmount:    50000,
		Status:         entity.PaymentStatusPending,
		CreatedAt:      time.Now(),
	}))
}

func TestHandleNotificationSettlesAndActivates(t *testing.T) {
	factory := newFakeRepositoryFactory()
	sender := &fakeSender{}
	svc := newTestPaymentService(factory, sender)

	seedPendingOrder(t, factory, "ORDER-1", "628123456789", entity.PlanTypeCreditPack)

	err := svc.HandleNotification(context.Background(),
		signedNotification("ORDER-1", "settlement", "50000.00"))
	require.NoError(t, err)

	order, err := factory.uow.orders.FindOne(context.Background(),
		byOrderId("ORDER-1"))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.PaymentStatusSettled, order.Status)

	sub, err := factory.uow.subs.FindOne(context.Background(), byWhatsappNumber("628123456789"))
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, 100, sub.Credits)
	assert.False(t, sub.IsTrial)

	assert.Equal(t, constant.PaymentSettledReply, sender.lastBody())
}

func TestHandleNotificationActivationFailureKeepsOrderPending(t *testing.T) {
	factory := newFakeRepositoryFactory()
	sender := &fakeSender{}
	svc := newTestPaymentService(factory, sender)

	seedPendingOrder(t, factory, "ORDER-2", "628123456789", entity.PlanTypeCreditPack)
	factory.uow.subs.updateErr = errors.New("connection reset")

	notif := signedNotification("ORDER-2", "settlement", "50000.00")
	require.Error(t, svc.HandleNotification(context.Background(), notif))

	// The whole unit of work rolled back: no settled order without an
	// active subscription behind it.
	order, err := factory.uow.orders.FindOne(context.Background(), byOrderId("ORDER-2"))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.PaymentStatusPending, order.Status)

	sub, err := factory.uow.subs.FindOne(context.Background(), byWhatsappNumber("628123456789"))
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.Empty(t, sender.sent)

	// The gateway retries the notification once the fault clears, and the
	// retry finishes what the first delivery could not.
	factory.uow.subs.updateErr = nil
	require.NoError(t, svc.HandleNotification(context.Background(), notif))

	order, err = factory.uow.orders.FindOne(context.Background(), byOrderId("ORDER-2"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSettled, order.Status)

	sub, err = factory.uow.subs.FindOne(context.Background(), byWhatsappNumber("628123456789"))
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, 100, sub.Credits)
}

func TestHandleNotificationDuplicateSettlementIsNoOp(t *testing.T) {
	factory := newFakeRepositoryFactory()
	sender := &fakeSender{}
	svc := newTestPaymentService(factory, sender)

	seedPendingOrder(t, factory, "ORDER-3", "628123456789", entity.PlanTypeCreditPack)

	notif := signedNotification("ORDER-3", "settlement", "50000.00")
	require.NoError(t, svc.HandleNotification(context.Background(), notif))
	require.NoError(t, svc.HandleNotification(context.Background(), notif))

	sub, err := factory.uow.subs.FindOne(context.Background(), byWhatsappNumber("628123456789"))
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, 100, sub.Credits, "duplicate delivery must not grant credits twice")
	assert.Len(t, sender.sent, 1)
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	factory := newFakeRepositoryFactory()
	svc := newTestPaymentService(factory, &fakeSender{})

	seedPendingOrder(t, factory, "ORDER-4", "628123456789", entity.PlanTypeCreditPack)

	notif := signedNotification("ORDER-4", "settlement", "50000.00")
	notif.SignatureKey = "forged"
	require.Error(t, svc.HandleNotification(context.Background(), notif))

	order, err := factory.uow.orders.FindOne(context.Background(), byOrderId("ORDER-4"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, order.Status)
}

func TestHandleNotificationExpireDoesNotActivate(t *testing.T) {
	factory := newFakeRepositoryFactory()
	sender := &fakeSender{}
	svc := newTestPaymentService(factory, sender)

	seedPendingOrder(t, factory, "ORDER-5", "628123456789", entity.PlanTypeCreditPack)

	require.NoError(t, svc.HandleNotification(context.Background(),
		signedNotification("ORDER-5", "expire", "50000.00")))

	order, err := factory.uow.orders.FindOne(context.Background(), byOrderId("ORDER-5"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusExpired, order.Status)

	sub, err := factory.uow.subs.FindOne(context.Background(), byWhatsappNumber("628123456789"))
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.Empty(t, sender.sent)
}
