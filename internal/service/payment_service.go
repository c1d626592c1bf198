package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/constant"
	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/specification"
	"ai-bookchat-be/internal/repository/unitofwork"
	"ai-bookchat-be/pkg/events"
	pktNats "ai-bookchat-be/pkg/nats"
)

type IPaymentService interface {
	CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotification) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	subscriptions  ISubscriptionService
	waClient       MessageSender
	eventPublisher *pktNats.Publisher
	cfg            config.PaymentConfig
	logger         logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	subscriptions ISubscriptionService,
	waClient MessageSender,
	eventPublisher *pktNats.Publisher,
	cfg config.PaymentConfig,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		subscriptions:  subscriptions,
		waClient:       waClient,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         log,
	}
}

func (s *paymentService) planAmount(planType string) (int64, string, error) {
	switch planType {
	case entity.PlanTypeCreditPack:
		return s.cfg.CreditPackPrice, fmt.Sprintf("Credit Pack (%d questions)", s.cfg.CreditPackSize), nil
	case entity.PlanTypeMonthly:
		return s.cfg.MonthlyPrice, "Monthly Unlimited", nil
	default:
		return 0, "", fmt.Errorf("unknown plan type: %s", planType)
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	amount, itemName, err := s.planAmount(req.PlanType)
	if err != nil {
		return nil, err
	}

	orderId := fmt.Sprintf("BOOKCHAT-%s", uuid.New().String())
	order := &entity.PaymentOrder{
		Id:             uuid.New(),
		OrderId:        orderId,
		WhatsappNumber: req.WhatsappNumber,
		PlanType:       req.PlanType,
		GrossAmount:    amount,
		Status:         entity.PaymentStatusPending,
		CreatedAt:      time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PaymentOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// External gateway call happens after the order row is committed so the
	// notification handler can always find it.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.Production {
		env = midtrans.Production
	}
	sClient.New(s.cfg.MidtransServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Phone: req.WhatsappNumber,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.PlanType,
				Price: amount,
				Qty:   1,
				Name:  itemName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.logger.Info("Payment", "checkout created", map[string]interface{}{
		"order_id":  orderId,
		"plan_type": req.PlanType,
		"amount":    amount,
	})

	return &dto.CheckoutResponse{
		OrderId:     orderId,
		SnapToken:   snapResp.Token,
		RedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotification) error {
	if s.cfg.MidtransServerKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.cfg.MidtransServerKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(req.SignatureKey)) != 1 {
		s.logger.Warn("Payment", "notification signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return fmt.Errorf("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	order, err := uow.PaymentOrderRepository().FindOne(ctx, specification.ByOrderId{OrderId: req.OrderId})
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order not found: %s", req.OrderId)
	}

	var newStatus string
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.PaymentStatusSettled
	case "deny", "cancel":
		newStatus = entity.PaymentStatusCancelled
	case "expire":
		newStatus = entity.PaymentStatusExpired
	case "pending":
		return nil
	default:
		s.logger.Warn("Payment", "unknown transaction status", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	// Settlement notifications can be delivered more than once. The
	// status flip and activation commit atomically below, so an order
	// already in the target state needs no further work.
	if order.Status == newStatus {
		return nil
	}
	alreadySettled := order.Status == entity.PaymentStatusSettled

	now := time.Now()
	order.Status = newStatus
	order.UpdatedAt = &now
	if err := uow.PaymentOrderRepository().Update(ctx, order); err != nil {
		return err
	}

	settling := newStatus == entity.PaymentStatusSettled && !alreadySettled
	if settling {
		// Same transaction as the status flip: if activation fails the
		// order stays pending and the gateway retry starts over.
		if err := s.subscriptions.Activate(ctx, uow, order.WhatsappNumber, order.PlanType, s.cfg.CreditPackSize); err != nil {
			return fmt.Errorf("failed to activate subscription for order %s: %w", order.OrderId, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if !settling {
		return nil
	}

	if s.eventPublisher != nil {
		evt := events.NewSubscriptionActivated(order.WhatsappNumber, order.PlanType, order.OrderId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Payment", "failed to publish activation event", map[string]interface{}{
				"order_id": order.OrderId,
				"error":    err.Error(),
			})
		}
	}

	if err := s.waClient.SendText(ctx, order.WhatsappNumber, constant.PaymentSettledReply); err != nil {
		s.logger.Warn("Payment", "failed to send settlement confirmation", map[string]interface{}{
			"order_id": order.OrderId,
			"error":    err.Error(),
		})
	}

	s.logger.Info("Payment", "subscription activated", map[string]interface{}{
		"order_id":  order.OrderId,
		"plan_type": order.PlanType,
	})
	return nil
}
