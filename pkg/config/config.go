package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is passed to envconfig; individual tags carry the full name.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "JOLLOFKITCHEN_APP_ENV"
	EnvPort                   = "JOLLOFKITCHEN_APP_PORT"
	EnvDBDSN                  = "JOLLOFKITCHEN_DB_DSN"
	EnvDBHost                 = "JOLLOFKITCHEN_DB_HOST"
	EnvDBUser                 = "JOLLOFKITCHEN_DB_USER"
	EnvDBName                 = "JOLLOFKITCHEN_DB_NAME"
	EnvRedisURL               = "JOLLOFKITCHEN_REDIS_URL"
	EnvJWTSecret              = "JOLLOFKITCHEN_JWT_SECRET"
	EnvJWTIssuer              = "JOLLOFKITCHEN_JWT_ISSUER"
	EnvJWTExpMins             = "JOLLOFKITCHEN_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "JOLLOFKITCHEN_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cart          CartConfig
	Sendgrid      SendgridConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JOLLOFKITCHEN_APP_ENV" required:"true"`
	Port         string `envconfig:"JOLLOFKITCHEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JOLLOFKITCHEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JOLLOFKITCHEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JOLLOFKITCHEN_DB_DSN"`
	Driver string `envconfig:"JOLLOFKITCHEN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JOLLOFKITCHEN_DB_HOST"`
	LegacyPort     int    `envconfig:"JOLLOFKITCHEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JOLLOFKITCHEN_DB_USER"`
	LegacyPassword string `envconfig:"JOLLOFKITCHEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"JOLLOFKITCHEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"JOLLOFKITCHEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JOLLOFKITCHEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JOLLOFKITCHEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JOLLOFKITCHEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JOLLOFKITCHEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JOLLOFKITCHEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JOLLOFKITCHEN_REDIS_ADDR"`
	Password     string        `envconfig:"JOLLOFKITCHEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"JOLLOFKITCHEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JOLLOFKITCHEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JOLLOFKITCHEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JOLLOFKITCHEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JOLLOFKITCHEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JOLLOFKITCHEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"JOLLOFKITCHEN_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"JOLLOFKITCHEN_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"JOLLOFKITCHEN_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"JOLLOFKITCHEN_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JOLLOFKITCHEN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JOLLOFKITCHEN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JOLLOFKITCHEN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JOLLOFKITCHEN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JOLLOFKITCHEN_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"JOLLOFKITCHEN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"JOLLOFKITCHEN_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"JOLLOFKITCHEN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"JOLLOFKITCHEN_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"JOLLOFKITCHEN_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"JOLLOFKITCHEN_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"JOLLOFKITCHEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"JOLLOFKITCHEN_AUTO_MIGRATE" default:"false"`
}

// CartConfig bounds the durable cart copies kept in Redis.
type CartConfig struct {
	GuestTTL       time.Duration `envconfig:"JOLLOFKITCHEN_CART_GUEST_TTL" default:"720h"`
	UserCacheTTL   time.Duration `envconfig:"JOLLOFKITCHEN_CART_USER_CACHE_TTL" default:"720h"`
	PersistTimeout time.Duration `envconfig:"JOLLOFKITCHEN_CART_PERSIST_TIMEOUT" default:"5s"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"JOLLOFKITCHEN_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"JOLLOFKITCHEN_SENDGRID_FROM_EMAIL"`
	ConfirmURL  string `envconfig:"JOLLOFKITCHEN_ACCOUNT_CONFIRM_URL" default:"https://jollofkitchen.com/confirm-account"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
