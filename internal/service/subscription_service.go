package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/specification"
	"ai-bookchat-be/internal/repository/unitofwork"
)

// AccessDecision tells the chat flow whether the sender may ask a question
// right now, and which upsell message applies when they may not.
type AccessDecision struct {
	Allowed          bool
	TrialExhausted   bool
	DailyLimitHit    bool
	CreditsRemaining int
	IsTrial          bool
}

type ISubscriptionService interface {
	// EnsureSubscriber returns the subscription for the number, creating a
	// trial record on first contact.
	EnsureSubscriber(ctx context.Context, whatsappNumber string) (*entity.Subscription, error)
	CheckAccess(ctx context.Context, sub *entity.Subscription) AccessDecision
	// ConsumeCredit deducts one credit (trial and credit-pack plans) and
	// bumps the daily counter. Monthly plans only count the message.
	ConsumeCredit(ctx context.Context, sub *entity.Subscription) error
	// Activate runs inside the caller's transaction so a payment
	// settlement and its activation commit or fail together.
	Activate(ctx context.Context, uow unitofwork.UnitOfWork, whatsappNumber, planType string, credits int) error
	ActiveCount(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	uowFactory   unitofwork.RepositoryFactory
	trialCredits int
	dailyLimit   int
	logger       logger.ILogger
}

func NewSubscriptionService(uowFactory unitofwork.RepositoryFactory, trialCredits, dailyLimit int, log logger.ILogger) ISubscriptionService {
	return &subscriptionService{
		uowFactory:   uowFactory,
		trialCredits: trialCredits,
		dailyLimit:   dailyLimit,
		logger:       log,
	}
}

func (s *subscriptionService) EnsureSubscriber(ctx context.Context, whatsappNumber string) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByWhatsappNumber{Number: whatsappNumber})
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return sub, nil
	}

	now := time.Now()
	sub = &entity.Subscription{
		Id:             uuid.New(),
		WhatsappNumber: whatsappNumber,
		Status:         entity.SubscriptionStatusInactive,
		PlanType:       entity.PlanTypeCreditPack,
		Credits:        s.trialCredits,
		IsTrial:        true,
		CreatedAt:      now,
	}
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription", "trial started", map[string]interface{}{
		"whatsapp_number": whatsappNumber,
		"credits":         s.trialCredits,
	})
	return sub, nil
}

func (s *subscriptionService) CheckAccess(ctx context.Context, sub *entity.Subscription) AccessDecision {
	now := time.Now()

	if !sub.IsActive(now) {
		return AccessDecision{
			Allowed:        false,
			TrialExhausted: sub.IsTrial && sub.Credits <= 0,
			IsTrial:        sub.IsTrial,
		}
	}

	count := sub.MessageCountToday
	if sub.LastMessageDate == nil || !sameDay(*sub.LastMessageDate, now) {
		count = 0
	}
	if count >= s.dailyLimit {
		return AccessDecision{Allowed: false, DailyLimitHit: true, IsTrial: sub.IsTrial}
	}

	return AccessDecision{
		Allowed:          true,
		CreditsRemaining: sub.Credits,
		IsTrial:          sub.IsTrial,
	}
}

func (s *subscriptionService) ConsumeCredit(ctx context.Context, sub *entity.Subscription) error {
	now := time.Now()

	if sub.LastMessageDate == nil || !sameDay(*sub.LastMessageDate, now) {
		sub.MessageCountToday = 0
	}
	sub.MessageCountToday++
	sub.LastMessageDate = &now

	if sub.IsTrial || sub.PlanType == entity.PlanTypeCreditPack {
		if sub.Credits > 0 {
			sub.Credits--
		}
	}
	sub.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SubscriptionRepository().Update(ctx, sub)
}

func (s *subscriptionService) Activate(ctx context.Context, uow unitofwork.UnitOfWork, whatsappNumber, planType string, credits int) error {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByWhatsappNumber{Number: whatsappNumber})
	if err != nil {
		return err
	}

	now := time.Now()
	if sub == nil {
		sub = &entity.Subscription{
			Id:             uuid.New(),
			WhatsappNumber: whatsappNumber,
			CreatedAt:      now,
		}
		if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
			return err
		}
	}

	sub.Status = entity.SubscriptionStatusActive
	sub.PlanType = planType
	sub.IsTrial = false
	sub.UpdatedAt = &now

	switch planType {
	case entity.PlanTypeMonthly:
		start := now
		end := now.AddDate(0, 1, 0)
		sub.SubscriptionStart = &start
		sub.SubscriptionEnd = &end
	case entity.PlanTypeCreditPack:
		sub.Credits += credits
	}

	return uow.SubscriptionRepository().Update(ctx, sub)
}

func (s *subscriptionService) ActiveCount(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SubscriptionRepository().Count(ctx)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
