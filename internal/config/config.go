package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	BackendSQL   = "sql"
	BackendRedis = "redis"
	BackendMongo = "mongo"

	PolicyOpen   = "open"
	PolicyStrict = "strict"
)

// StoreConfig выбирает, где живёт снимок состояния.
type StoreConfig struct {
	Backend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// AdminConfig — учётные данные служебного администратора.
// Пустой список Emails отключает административный вход.
type AdminConfig struct {
	Emails       []string
	Password     string
	PasswordHash string // bcrypt, имеет приоритет над Password
	ID           string
	Name         string
}

type AdviceConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Config struct {
	GRPCAddr       string
	LogLevel       string
	LogFormat      string
	AccessPolicy   string
	ReportCron     string
	CommissionRate decimal.Decimal

	DB     *DBConfig
	Store  StoreConfig
	Admin  AdminConfig
	Advice AdviceConfig
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env not loaded, using process environment")
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(getEnv("COMMISSION_RATE", "0.15"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("invalid COMMISSION_RATE: %s out of [0, 1]", rate)
	}

	cfg := &Config{
		GRPCAddr:       getEnv("GRPC_ADDR", ":50051"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		AccessPolicy:   strings.ToLower(getEnv("ACCESS_POLICY", PolicyOpen)),
		ReportCron:     getEnv("REPORT_CRON", "@hourly"),
		CommissionRate: rate,
		DB:             dbCfg,
		Store: StoreConfig{
			Backend:         strings.ToLower(getEnv("STORE_BACKEND", BackendSQL)),
			RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:         getEnvInt("REDIS_DB", 0),
			RedisPrefix:     getEnv("REDIS_PREFIX", "myhaircut:"),
			MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:   getEnv("MONGO_DATABASE", "myhaircut"),
			MongoCollection: getEnv("MONGO_COLLECTION", "kv_entries"),
		},
		Admin: AdminConfig{
			Emails:       getEnvList("ADMIN_EMAILS"),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			ID:           getEnv("ADMIN_ID", "admin"),
			Name:         getEnv("ADMIN_NAME", "Administrateur"),
		},
		Advice: AdviceConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: time.Duration(getEnvInt("ADVICE_TIMEOUT_SEC", 20)) * time.Second,
		},
	}

	switch cfg.Store.Backend {
	case BackendSQL, BackendRedis, BackendMongo:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q", cfg.Store.Backend)
	}
	switch cfg.AccessPolicy {
	case PolicyOpen, PolicyStrict:
	default:
		return nil, fmt.Errorf("invalid ACCESS_POLICY %q", cfg.AccessPolicy)
	}

	return cfg, nil
}
