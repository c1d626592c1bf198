package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ChatLogListRequest struct {
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
	ResponseType string `query:"response_type"` // answered, refused, error
}

type ChatLogResponse struct {
	Id             uuid.UUID `json:"id"`
	WhatsappNumber string    `json:"whatsapp_number"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	ResponseType   string    `json:"response_type"`
	ChunksUsed     []string  `json:"chunks_used"`
	LatencyMs      int       `json:"latency_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

type LogListRequest struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Level string `query:"level"`
}

type StatsResponse struct {
	TotalChats    int64 `json:"total_chats"`
	AnsweredCount int64 `json:"answered_count"`
	RefusedCount  int64 `json:"refused_count"`
	ErrorCount    int64 `json:"error_count"`
	ActiveUsers   int64 `json:"active_users"`
	CorpusChunks  int64 `json:"corpus_chunks"`
}

type CorpusReloadResponse struct {
	ChunkCount int    `json:"chunk_count"`
	Dimension  int    `json:"dimension"`
	ReloadedAt string `json:"reloaded_at"`
}
