package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	ATSBaseURL         string
	CaptchaVerifyURL   string
	CaptchaSecret      string
	RedisAddr          string
	AssistantRulesPath string
	SessionTTL         time.Duration
	UpstreamTimeout    time.Duration
	RequestTimeout     time.Duration
	MaxResumeBytes     int64
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		ATSBaseURL:         getEnv("ATS_BASE_URL", ""),
		CaptchaVerifyURL:   getEnv("CAPTCHA_VERIFY_URL", ""),
		CaptchaSecret:      getEnv("CAPTCHA_SECRET", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		AssistantRulesPath: getEnv("ASSISTANT_RULES_PATH", ""),
		SessionTTL:         getDuration("SESSION_TTL", 30*time.Minute),
		UpstreamTimeout:    getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxResumeBytes:     getInt64("MAX_RESUME_BYTES", 10<<20),
	}

	if cfg.ATSBaseURL == "" {
		log.Fatal("ATS_BASE_URL is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
