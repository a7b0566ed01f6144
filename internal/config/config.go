package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sasazame/todo-app-backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	JWTSecret            string
	JWTExpiration        time.Duration
	JWTRefreshExpiration time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Requests per window, per client IP
	APIRateLimit  int
	APIRateWindow time.Duration

	// Stricter window for /auth endpoints
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Access tokens default to 24h, refresh tokens to 7 days
	jwtExpiration := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRATION_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			jwtExpiration = time.Duration(n) * time.Millisecond
		}
	}

	jwtRefreshExpiration := 7 * 24 * time.Hour
	if v := os.Getenv("JWT_REFRESH_EXPIRATION_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			jwtRefreshExpiration = time.Duration(n) * time.Millisecond
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	apiRateLimit := 100
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 10
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateLimit = n
		}
	}

	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:              port,
		DatabaseURL:          dbURL,
		JWTSecret:            jwtSecret,
		JWTExpiration:        jwtExpiration,
		JWTRefreshExpiration: jwtRefreshExpiration,
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		APIRateLimit:         apiRateLimit,
		APIRateWindow:        apiRateWindow,
		AuthRateLimit:        authRateLimit,
		AuthRateWindow:       authRateWindow,
		LogLevel:             logLevel,
		LogJSON:              os.Getenv("LOG_JSON") == "true",
	}
}
