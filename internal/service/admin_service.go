package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/specification"
	"ai-bookchat-be/internal/repository/unitofwork"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	ListChatLogs(ctx context.Context, req *dto.ChatLogListRequest) ([]*dto.ChatLogResponse, error)
	ListSystemLogs(ctx context.Context, req *dto.LogListRequest) ([]logger.LogEntry, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	ReloadCorpus(ctx context.Context) (*dto.CorpusReloadResponse, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	corpus        ICorpusService
	subscriptions ISubscriptionService
	cfg           config.AdminConfig
	logger        logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	corpus ICorpusService,
	subscriptions ISubscriptionService,
	cfg config.AdminConfig,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		corpus:        corpus,
		subscriptions: subscriptions,
		cfg:           cfg,
		logger:        log,
	}
}

func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if req.Email != s.cfg.Email {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"role":  "admin",
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin", "admin login", map[string]interface{}{"email": req.Email})

	return &dto.AdminLoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *adminService) ListChatLogs(ctx context.Context, req *dto.ChatLogListRequest) ([]*dto.ChatLogResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Paginate{Limit: limit, Offset: (page - 1) * limit},
	}
	if req.ResponseType != "" {
		specs = append(specs, specification.ByResponseType{ResponseType: req.ResponseType})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.ChatLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatLogResponse, len(logs))
	for i, l := range logs {
		res[i] = &dto.ChatLogResponse{
			Id:             l.Id,
			WhatsappNumber: l.WhatsappNumber,
			Question:       l.UserMessage,
			Answer:         l.BotResponse,
			ResponseType:   l.ResponseType,
			ChunksUsed:     l.ChunksUsed,
			LatencyMs:      l.LatencyMs,
			CreatedAt:      l.CreatedAt,
		}
	}
	return res, nil
}

func (s *adminService) ListSystemLogs(ctx context.Context, req *dto.LogListRequest) ([]logger.LogEntry, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.logger.GetLogs(req.Level, limit, (page-1)*limit)
}

func (s *adminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chatLogs := uow.ChatLogRepository()

	total, err := chatLogs.Count(ctx)
	if err != nil {
		return nil, err
	}
	answered, err := chatLogs.Count(ctx, specification.ByResponseType{ResponseType: "answered"})
	if err != nil {
		return nil, err
	}
	refused, err := chatLogs.Count(ctx, specification.ByResponseType{ResponseType: "refused"})
	if err != nil {
		return nil, err
	}
	errored, err := chatLogs.Count(ctx, specification.ByResponseType{ResponseType: "error"})
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.subscriptions.ActiveCount(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := s.corpus.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalChats:    total,
		AnsweredCount: answered,
		RefusedCount:  refused,
		ErrorCount:    errored,
		ActiveUsers:   activeUsers,
		CorpusChunks:  chunks,
	}, nil
}

func (s *adminService) ReloadCorpus(ctx context.Context) (*dto.CorpusReloadResponse, error) {
	return s.corpus.Reload(ctx)
}
