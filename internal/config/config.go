package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageMinIO = "minio"
)

type DB struct {
	Driver     string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	SQLitePath string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Redis struct {
	Addr string
	DB   int
	TTL  time.Duration
}

type Storage struct {
	Backend      string
	UploadDir    string
	PublicPrefix string
}

type Config struct {
	ServerPort      int
	BasePath        string
	DB              DB
	MinIO           MinIO
	Redis           Redis
	Storage         Storage
	MaxUploadSize   int64
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 5 * 1024 * 1024
	}
	return size
}

func parseLogLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// normalizeBasePath turns "api", "/api/" and "/api" into "/api". An empty
// value or "/" mounts the API at the root.
func normalizeBasePath(value string) string {
	trimmed := strings.Trim(strings.TrimSpace(value), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func LoadDB() DB {
	return DB{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "postboard"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("DB_SQLITE_PATH", "data/postboard.db"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr: getEnv("REDIS_ADDR", ""),
		DB:   getEnvAsInt("REDIS_DB", 0),
		TTL:  parseDuration(getEnv("REDIS_TTL", "5m"), 5*time.Minute),
	}
}

func LoadStorage() Storage {
	return Storage{
		Backend:      strings.ToLower(getEnv("STORAGE_BACKEND", StorageLocal)),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		PublicPrefix: normalizeBasePath(getEnv("UPLOAD_PUBLIC_PREFIX", "/uploads")),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Warn(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		BasePath:        normalizeBasePath(getEnv("API_BASE_PATH", "/api")),
		DB:              LoadDB(),
		MinIO:           LoadMinIO(),
		Redis:           LoadRedis(),
		Storage:         LoadStorage(),
		MaxUploadSize:   parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "5242880")),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s"), 30*time.Second),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
}
