package structs

import "time"

type Config struct {
	Server       *ServerConfig
	Cors         *CorsConfig
	Database     *DatabaseConfig
	Cache        *CacheConfig
	Email        *EmailConfig
	Verification *VerificationConfig
	RateLimit    *RateLimitConfig
	Admin        *AdminConfig
}

type ServerConfig struct {
	AppName        string        // Tratrouble
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	Insecure     bool
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	StatusCacheTTL  time.Duration
}

type EmailConfig struct {
	ApiKey              string
	From                string
	SupportEmail        string
	VerificationBaseURL string // public base for verification links
}

type VerificationConfig struct {
	// SecretKey signs verification tokens. Read once at startup.
	SecretKey     string
	TokenTTL      time.Duration
	UpsertByEmail bool // overwrite any prior record for the same email
	DeviceBinding bool // enforce device match at confirmation
}

type RateLimitConfig struct {
	Enabled           bool
	GeneralLimit      int
	GeneralWindow     time.Duration
	SubmitEmailLimit  int
	SubmitEmailWindow time.Duration
	AdminLimit        int
	AdminWindow       time.Duration
}

type AdminConfig struct {
	PasswordHash string // argon2id encoded
	TokenSecret  string
	TokenExpiry  time.Duration
}
