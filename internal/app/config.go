package app

import (
	"strings"
	"time"

	"github.com/yungbote/coursecatalog-backend/internal/http/middleware"
	"github.com/yungbote/coursecatalog-backend/internal/platform/envutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"github.com/yungbote/coursecatalog-backend/internal/platform/pagination"
)

type Config struct {
	Port string

	RedisAddr    string
	CacheTTL     time.Duration
	CatalogPage  int
	JWTSecretKey string
	JWTIssuer    string
	AccessTTL    time.Duration
	MetricsAddr  string
	CORSOrigins  []string
	Environment  string
	Version      string
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.String("PORT", "8080", log)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	secret := envutil.String("JWT_SECRET_KEY", "", log)
	if secret == "" {
		log.Warn("JWT_SECRET_KEY is not set; every authenticated route will reject requests")
	}
	return Config{
		Port:         port,
		RedisAddr:    envutil.String("REDIS_ADDR", "", log),
		CacheTTL:     envutil.Seconds("CATALOG_CACHE_TTL_SECONDS", 60*time.Second, log),
		CatalogPage:  envutil.Int("CATALOG_PAGE_SIZE", pagination.DefaultPageSize, log),
		JWTSecretKey: secret,
		JWTIssuer:    envutil.String("JWT_ISSUER", "", log),
		AccessTTL:    envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour, log),
		MetricsAddr:  envutil.String("METRICS_ADDR", ":9090", log),
		CORSOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins, log),
		Environment:  envutil.String("LOG_MODE", "development", log),
		Version:      envutil.String("APP_VERSION", "dev", log),
	}
}
