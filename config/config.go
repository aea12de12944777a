package config

import (
	"sync"
	"time"
	"tratrouble_server/structs"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "Tratrouble_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8082"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowOrigins:     getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:8000"}),
				AllowMethods:     getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "OPTIONS"}),
				AllowHeaders:     getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Device-Id"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "tratrouble_db"),
				Insecure:     getEnvAsBool("DB_INSECURE", true),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 100*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 2*time.Second),
				StatusCacheTTL:  getEnvAsTimeDuration("REDIS_STATUS_CACHE_TTL", 10*time.Minute),
			},
			Email: &structs.EmailConfig{
				ApiKey:              getEnvAsString("EMAIL_API_KEY", ""),
				From:                getEnvAsString("EMAIL_FROM", "noreply@tratrouble.app"),
				SupportEmail:        getEnvAsString("EMAIL_SUPPORT", "support@tratrouble.app"),
				VerificationBaseURL: getEnvAsString("EMAIL_VERIFICATION_BASE_URL", "https://tratrouble.app/api"),
			},
			Verification: &structs.VerificationConfig{
				SecretKey:     getEnvAsString("VERIFICATION_SECRET_KEY", "insecure-dev-secret-change-me"),
				TokenTTL:      getEnvAsTimeDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
				UpsertByEmail: getEnvAsBool("VERIFICATION_UPSERT_BY_EMAIL", true),
				DeviceBinding: getEnvAsBool("VERIFICATION_DEVICE_BINDING", true),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
				GeneralLimit:      getEnvAsInt("RATE_LIMIT_GENERAL", 100),
				GeneralWindow:     getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
				SubmitEmailLimit:  getEnvAsInt("RATE_LIMIT_SUBMIT_EMAIL", 5),
				SubmitEmailWindow: getEnvAsTimeDuration("RATE_LIMIT_SUBMIT_EMAIL_WINDOW", time.Minute),
				AdminLimit:        getEnvAsInt("RATE_LIMIT_ADMIN", 30),
				AdminWindow:       getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
			},
			Admin: &structs.AdminConfig{
				PasswordHash: getEnvAsString("ADMIN_PASSWORD_HASH", ""),
				TokenSecret:  getEnvAsString("ADMIN_TOKEN_SECRET", "default_admin_secret"),
				TokenExpiry:  getEnvAsTimeDuration("ADMIN_TOKEN_EXPIRY", time.Hour),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
