package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	GigaChat  GigaChatConfig
	Embedding EmbeddingConfig
	LocalLLM  LocalLLMConfig
	RAG       RAGConfig
	Quota     QuotaConfig
	Corpus    CorpusConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// EmbeddingConfig points at an OpenAI-compatible /embeddings endpoint.
// A locally hosted server works as well as the hosted API.
type EmbeddingConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// LocalLLMConfig points at the locally hosted fallback completion server.
type LocalLLMConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type RAGConfig struct {
	TopK int
}

type QuotaConfig struct {
	MonthlyTokenLimit int
}

// CorpusConfig selects where the knowledge base is loaded from at startup:
// "file" reads the JSON corpus at Path, "database" reads the knowledge_base
// table seeded by cmd/seed.
type CorpusConfig struct {
	Source string
	Path   string
}

const (
	CorpusSourceFile     = "file"
	CorpusSourceDatabase = "database"
)

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables are used directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	gigachatTimeout, _ := strconv.Atoi(getEnv("GIGACHAT_TIMEOUT", "60"))
	embeddingTimeout, _ := strconv.Atoi(getEnv("EMBEDDING_TIMEOUT", "30"))
	localLLMTimeout, _ := strconv.Atoi(getEnv("LOCAL_LLM_TIMEOUT", "120"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "5"))
	monthlyLimit, _ := strconv.Atoi(getEnv("QUOTA_MONTHLY_TOKEN_LIMIT", "100000"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5433"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "abit_advisor"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
			Timeout:            time.Duration(gigachatTimeout) * time.Second,
		},
		Embedding: EmbeddingConfig{
			BaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081/v1"),
			Model:   getEnv("EMBEDDING_MODEL", "paraphrase-multilingual-minilm-l12-v2"),
			APIKey:  getEnv("EMBEDDING_API_KEY", ""),
			Timeout: time.Duration(embeddingTimeout) * time.Second,
		},
		LocalLLM: LocalLLMConfig{
			BaseURL: getEnv("LOCAL_LLM_BASE_URL", "http://localhost:11434"),
			Model:   getEnv("LOCAL_LLM_MODEL", "llama2:7b-chat"),
			Timeout: time.Duration(localLLMTimeout) * time.Second,
		},
		RAG: RAGConfig{
			TopK: ragTopK,
		},
		Quota: QuotaConfig{
			MonthlyTokenLimit: monthlyLimit,
		},
		Corpus: CorpusConfig{
			Source: getEnv("CORPUS_SOURCE", CorpusSourceFile),
			Path:   getEnv("CORPUS_PATH", "data/knowledge_base.json"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
