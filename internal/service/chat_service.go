package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/constant"
	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/unitofwork"
	"ai-bookchat-be/pkg/events"
	pktNats "ai-bookchat-be/pkg/nats"
	"ai-bookchat-be/pkg/rag"
)

type IChatService interface {
	// HandleIncoming processes one webhook message end to end: dedupe,
	// access check, engine query, reply delivery and event emission.
	// It never returns an error to the webhook layer; failures are logged
	// and answered with a generic message where possible.
	HandleIncoming(ctx context.Context, msg *dto.IncomingMessage)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	engine         *rag.Engine
	subscriptions  ISubscriptionService
	payments       IPaymentService
	waClient       MessageSender
	eventPublisher *pktNats.Publisher
	seenCache      *gocache.Cache
	bookCfg        config.BookConfig
	paymentCfg     config.PaymentConfig
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	engine *rag.Engine,
	subscriptions ISubscriptionService,
	payments IPaymentService,
	waClient MessageSender,
	eventPublisher *pktNats.Publisher,
	bookCfg config.BookConfig,
	paymentCfg config.PaymentConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		engine:         engine,
		subscriptions:  subscriptions,
		payments:       payments,
		waClient:       waClient,
		eventPublisher: eventPublisher,
		seenCache:      gocache.New(10*time.Minute, 20*time.Minute),
		bookCfg:        bookCfg,
		paymentCfg:     paymentCfg,
		logger:         log,
	}
}

func (s *chatService) HandleIncoming(ctx context.Context, msg *dto.IncomingMessage) {
	if fresh := s.markSeen(ctx, msg.Id); !fresh {
		s.logger.Debug("Chat", "duplicate webhook delivery skipped", map[string]interface{}{
			"message_id": msg.Id,
		})
		return
	}

	if msg.Type != "text" || msg.Text == nil {
		s.reply(ctx, msg.From, constant.UnsupportedMessageReply)
		return
	}

	question := strings.TrimSpace(msg.Text.Body)
	if question == "" {
		return
	}

	sub, err := s.subscriptions.EnsureSubscriber(ctx, msg.From)
	if err != nil {
		s.logger.Error("Chat", "failed to resolve subscriber", map[string]interface{}{
			"whatsapp_number": msg.From,
			"error":           err.Error(),
		})
		s.reply(ctx, msg.From, constant.ErrorReply)
		return
	}

	if s.handleCommand(ctx, msg.From, question) {
		return
	}

	access := s.subscriptions.CheckAccess(ctx, sub)
	if !access.Allowed {
		s.reply(ctx, msg.From, denialReply(access))
		return
	}

	started := time.Now()
	outcome := s.engine.Answer(ctx, question)
	latencyMs := int(time.Since(started).Milliseconds())

	response := s.renderOutcome(outcome)

	if outcome.Status == rag.StatusAnswered {
		if err := s.subscriptions.ConsumeCredit(ctx, sub); err != nil {
			s.logger.Error("Chat", "failed to consume credit", map[string]interface{}{
				"whatsapp_number": msg.From,
				"error":           err.Error(),
			})
		}
		if suffix := s.trialWarning(sub); suffix != "" {
			response += suffix
		}
	}

	s.reply(ctx, msg.From, response)
	s.publishInteraction(ctx, msg.From, question, response, outcome, latencyMs)
}

// markSeen reports whether this message id is being seen for the first
// time. The in-process cache short-circuits retries within minutes; the
// database insert guards across restarts and replicas.
func (s *chatService) markSeen(ctx context.Context, messageId string) bool {
	if messageId == "" {
		return true
	}
	if _, dup := s.seenCache.Get(messageId); dup {
		return false
	}
	s.seenCache.SetDefault(messageId, struct{}{})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	fresh, err := uow.ProcessedMessageRepository().MarkProcessed(ctx, messageId)
	if err != nil {
		s.logger.Warn("Chat", "dedupe store unavailable, processing anyway", map[string]interface{}{
			"message_id": messageId,
			"error":      err.Error(),
		})
		return true
	}
	return fresh
}

// denialReply picks the message for a denied question. Lapsed paid plans
// get a renewal prompt, not the trial pitch.
func denialReply(access AccessDecision) string {
	switch {
	case access.DailyLimitHit:
		return constant.DailyLimitReply
	case access.IsTrial:
		return constant.TrialExhaustedReply
	default:
		return constant.RenewalReply
	}
}

// handleCommand intercepts upsell keywords before they reach the engine.
// Returns true when the message was fully handled as a command.
func (s *chatService) handleCommand(ctx context.Context, from, text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))

	var planType string
	switch normalized {
	case "upgrade":
		prompt := fmt.Sprintf(constant.UpgradePrompt,
			s.paymentCfg.CreditPackSize,
			formatRupiah(s.paymentCfg.CreditPackPrice),
			formatRupiah(s.paymentCfg.MonthlyPrice),
		)
		s.reply(ctx, from, prompt)
		return true
	case "1":
		planType = entity.PlanTypeCreditPack
	case "2":
		planType = entity.PlanTypeMonthly
	default:
		return false
	}

	checkout, err := s.payments.CreateCheckout(ctx, &dto.CheckoutRequest{
		WhatsappNumber: from,
		PlanType:       planType,
	})
	if err != nil {
		s.logger.Error("Chat", "checkout creation failed", map[string]interface{}{
			"whatsapp_number": from,
			"plan_type":       planType,
			"error":           err.Error(),
		})
		s.reply(ctx, from, constant.ErrorReply)
		return true
	}

	s.reply(ctx, from, fmt.Sprintf(constant.PaymentLinkReply, checkout.RedirectUrl))
	return true
}

// renderOutcome turns the engine result into the user-facing reply.
// Answered text gets its citation list appended; refusals and errors map
// to fixed messages.
func (s *chatService) renderOutcome(outcome rag.Outcome) string {
	switch outcome.Status {
	case rag.StatusAnswered:
		response := outcome.Answer
		if len(outcome.Citations) > 0 {
			response += constant.CitationHeader + "\n" + rag.FormatCitationList(outcome.Citations)
		}
		return response
	case rag.StatusRefused:
		return constant.RefusalReply
	default:
		s.logger.Error("Chat", "engine failure", map[string]interface{}{
			"error": outcome.Cause.Error(),
		})
		return constant.ErrorReply
	}
}

func (s *chatService) trialWarning(sub *entity.Subscription) string {
	if !sub.IsTrial || sub.Credits <= 0 {
		return ""
	}
	warnFrom := s.bookCfg.TrialCredits - s.bookCfg.TrialWarningAt
	if sub.Credits <= warnFrom {
		return fmt.Sprintf(constant.TrialWarningSuffix, sub.Credits)
	}
	return ""
}

func (s *chatService) reply(ctx context.Context, to, body string) {
	if err := s.waClient.SendText(ctx, to, body); err != nil {
		s.logger.Error("Chat", "failed to send reply", map[string]interface{}{
			"whatsapp_number": to,
			"error":           err.Error(),
		})
	}
}

func (s *chatService) publishInteraction(ctx context.Context, from, question, response string, outcome rag.Outcome, latencyMs int) {
	if s.eventPublisher == nil {
		return
	}

	chunkIds := make([]string, len(outcome.ChunksUsed))
	for i, id := range outcome.ChunksUsed {
		chunkIds[i] = id.String()
	}

	evt := events.NewChatInteraction(from, question, response, string(outcome.Status), chunkIds, latencyMs)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Chat", "failed to publish interaction event", map[string]interface{}{
			"whatsapp_number": from,
			"error":           err.Error(),
		})
	}
}

// formatRupiah renders 50000 as "50.000".
func formatRupiah(amount int64) string {
	raw := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, digit := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	return b.String()
}
