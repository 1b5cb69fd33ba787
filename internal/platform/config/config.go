package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Server struct {
	Addr string

	// AdminTokenHash is the bcrypt hash of the operator token guarding the
	// admin surface. AdminAccounts lists account IDs holding the admin
	// capability for service-level checks.
	AdminTokenHash string
	AdminAccounts  []string

	JWTSigningKey string

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// OracleURL is the initial identity oracle endpoint; the live value is
	// owned by the settings service and can be changed at runtime.
	OracleURL     string
	OracleTimeout time.Duration

	TreasuryURL     string
	TransferTimeout time.Duration

	// EpochFloorYear is the deployment-time floor for period years; SetYear
	// rejects anything not strictly greater.
	EpochFloorYear int

	DefaultFeeAmount    int64
	DefaultPayoutAmount int64
}

// RedisConfig captures Redis connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig captures event stream settings. Empty brokers disable Kafka.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func FromEnv() Server {
	return Server{
		Addr:           envOr("BURSAR_ADDR", ":8080"),
		AdminTokenHash: os.Getenv("BURSAR_ADMIN_TOKEN_HASH"),
		AdminAccounts:  splitList(os.Getenv("BURSAR_ADMIN_ACCOUNTS")),
		JWTSigningKey:  envOr("BURSAR_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PostgresDSN:    os.Getenv("BURSAR_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("BURSAR_REDIS_URL"),
			PoolSize:     envInt("BURSAR_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("BURSAR_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("BURSAR_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("BURSAR_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("BURSAR_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("BURSAR_KAFKA_BROKERS")),
			Topic:   envOr("BURSAR_KAFKA_TOPIC", "bursar.notifications"),
		},
		OracleURL:           os.Getenv("BURSAR_ORACLE_URL"),
		OracleTimeout:       envDuration("BURSAR_ORACLE_TIMEOUT", 5*time.Second),
		TreasuryURL:         os.Getenv("BURSAR_TREASURY_URL"),
		TransferTimeout:     envDuration("BURSAR_TRANSFER_TIMEOUT", 10*time.Second),
		EpochFloorYear:      envInt("BURSAR_EPOCH_FLOOR_YEAR", 2000),
		DefaultFeeAmount:    envInt64("BURSAR_DEFAULT_FEE_AMOUNT", 0),
		DefaultPayoutAmount: envInt64("BURSAR_DEFAULT_PAYOUT_AMOUNT", 0),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
