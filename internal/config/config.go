package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL   string
	MigrationsDir string

	RedisAddr       string
	CatalogCacheTTL int // seconds

	JWTIssuer           string
	JWTAccessSecret     string
	JWTRefreshSecret    string
	AccessTokenTTLMin   int
	RefreshTokenTTLDays int
	OTPTTLMin           int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	AppBaseURL string

	GatewayBaseURL    string
	GatewaySecretKey  string
	GatewayPublicKey  string
	GatewayTimeoutSec int
	PaymentCurrency   string
	CallbackPath      string

	UploadDir      string
	UploadMaxBytes int64
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL:   get("DATABASE_URL", ""),
		MigrationsDir: get("MIGRATIONS_DIR", ""),

		RedisAddr:       get("REDIS_ADDR", ""),
		CatalogCacheTTL: getInt("CATALOG_CACHE_TTL_SEC", 60),

		JWTIssuer:           get("JWT_ISSUER", "storefront"),
		JWTAccessSecret:     get("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret:    get("JWT_REFRESH_SECRET", ""),
		AccessTokenTTLMin:   getInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTokenTTLDays: getInt("REFRESH_TOKEN_TTL_DAYS", 30),
		OTPTTLMin:           getInt("OTP_TTL_MIN", 10),

		SMTPHost: get("SMTP_HOST", ""),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: get("SMTP_USER", ""),
		SMTPPass: get("SMTP_PASS", ""),
		SMTPFrom: get("SMTP_FROM", ""),

		AppBaseURL: get("APP_BASE_URL", "http://localhost:8080"),

		GatewayBaseURL:    get("GATEWAY_BASE_URL", "https://api.paystack.co"),
		GatewaySecretKey:  get("GATEWAY_SECRET_KEY", ""),
		GatewayPublicKey:  get("GATEWAY_PUBLIC_KEY", ""),
		GatewayTimeoutSec: getInt("GATEWAY_TIMEOUT_SEC", 15),
		PaymentCurrency:   get("PAYMENT_CURRENCY", "GHS"),
		CallbackPath:      get("PAYMENT_CALLBACK_PATH", "/api/checkout/callback"),

		UploadDir:      get("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: getInt64("UPLOAD_MAX_BYTES", 5<<20),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return n
		}
	}
	return def
}
