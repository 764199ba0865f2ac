package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// default ของ deployment; tenant override ได้ที่ Tenant.TaxRateBps
	DefaultTaxRateBps int

	RedisAddr string // ว่าง = ใช้ idempotency store ฝั่ง DB
}

func LoadConfig() *Config {
	// .env เป็น optional; บน prod ใช้ env จริง
	_ = godotenv.Load()

	return &Config{
		DBSource:          getEnv("DB_SOURCE", "ordering.db"),
		Port:              getEnv("PORT", "8000"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            time.Duration(24) * time.Hour,
		DefaultTaxRateBps: getEnvInt("DEFAULT_TAX_RATE_BPS", 1000),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("⚠️ invalid int for %s, using %d", key, fallback)
	}
	return fallback
}
