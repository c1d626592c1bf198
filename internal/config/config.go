package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	WhatsApp WhatsAppConfig
	Payment  PaymentConfig
	Admin    AdminConfig
	Ai       AIConfig
	Rag      RAGConfig
	Book     BookConfig
}

type AppConfig struct {
	Port        string
	BaseURL     string
	Environment string
	LogFilePath string
	NatsURL     string
}

type DatabaseConfig struct {
	Connection string
}

type WhatsAppConfig struct {
	ApiVersion    string
	PhoneNumberId string
	AccessToken   string
	VerifyToken   string
}

type PaymentConfig struct {
	MidtransServerKey string
	MidtransClientKey string
	Production        bool
	CreditPackPrice   int64
	CreditPackSize    int
	MonthlyPrice      int64
}

type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
	JwtSecret    string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string
	GeminiApiKey      string
}

type RAGConfig struct {
	EmbeddingDimension  int
	RetrievalTopK       int
	SimilarityThreshold float64
	ContextCharBudget   int
	CallTimeout         time.Duration
	MaxTokensResponse   int
	RefusalPhrases      []string // empty means defaults
}

type BookConfig struct {
	Title            string
	TrialCredits     int
	DailyLimit       int
	TrialWarningAt   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "3000"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "app.log"),
			NatsURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		WhatsApp: WhatsAppConfig{
			ApiVersion:    getEnv("WHATSAPP_API_VERSION", "v21.0"),
			PhoneNumberId: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
			AccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
			VerifyToken:   getEnv("WEBHOOK_VERIFY_TOKEN", ""),
		},
		Payment: PaymentConfig{
			MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransClientKey: getEnv("MIDTRANS_CLIENT_KEY", ""),
			Production:        getEnv("MIDTRANS_ENV", "sandbox") == "production",
			CreditPackPrice:   int64(getEnvAsInt("CREDIT_PACK_PRICE", 50000)),
			CreditPackSize:    getEnvAsInt("CREDIT_PACK_SIZE", 100),
			MonthlyPrice:      int64(getEnvAsInt("MONTHLY_PRICE", 99000)),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JwtSecret:    getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
			GeminiApiKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Rag: RAGConfig{
			EmbeddingDimension:  getEnvAsInt("EMBEDDING_DIMENSION", 768),
			RetrievalTopK:       getEnvAsInt("RETRIEVAL_TOP_K", 5),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.7),
			ContextCharBudget:   getEnvAsInt("CONTEXT_CHAR_BUDGET", 6000),
			CallTimeout:         time.Duration(getEnvAsInt("AI_CALL_TIMEOUT_SECONDS", 30)) * time.Second,
			MaxTokensResponse:   getEnvAsInt("MAX_TOKENS_RESPONSE", 500),
			RefusalPhrases:      getEnvAsList("REFUSAL_PHRASES"),
		},
		Book: BookConfig{
			Title:          getEnv("BOOK_TITLE", "Eat Like an Athlete"),
			TrialCredits:   getEnvAsInt("TRIAL_CREDITS", 15),
			DailyLimit:     getEnvAsInt("DAILY_MESSAGE_LIMIT", 50),
			TrialWarningAt: getEnvAsInt("TRIAL_WARNING_AT_QUESTION", 7),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return nil
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
