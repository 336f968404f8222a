package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env          string `env:"ENV" env-default:"local"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer   HttpServer
	Limiter      Limiter
	CORS         CORS
	Auth         AuthConfig
	Verification VerificationConfig
	Storage      Storage
	Database     Database
	Cache        Cache
	Queue        Queue
	SMTP         SMTPConfig
	Email        EmailConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"5500"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://127.0.0.1:3000"`
}

type AuthConfig struct {
	AdminAPIKey string `env:"AUTH_ADMIN_API_KEY" env-description:"key expected in X-Admin-Key, admin routes are closed when empty"`
	BcryptCost  int    `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

type VerificationConfig struct {
	SigningKey  string        `env:"VERIFICATION_SIGNING_KEY" env-required:"true"`
	TokenTTL    time.Duration `env:"VERIFICATION_TOKEN_TTL" env-default:"24h"`
	BaseURL     string        `env:"VERIFICATION_BASE_URL" env-default:"http://localhost:5500/api/v1"`
	ConfirmPath string        `env:"VERIFICATION_CONFIRM_PATH" env-default:"verif/confirm"`
	SuccessURL  string        `env:"VERIFICATION_SUCCESS_URL" env-description:"redirect target after a confirmation, status page when empty"`
	FailURL     string        `env:"VERIFICATION_FAIL_URL" env-description:"redirect target with ?error=<code>, status page when empty"`
}

type Storage struct {
	Type          string `env:"STORAGE_TYPE" env-default:"file" env-description:"one of file/mysql/redis"`
	Dir           string `env:"STORAGE_DIR" env-default:"./data"`
	Users         string `env:"STORAGE_USERS_DOCUMENT" env-default:"usuarios.json"`
	Verifications string `env:"STORAGE_VERIFICATIONS_DOCUMENT" env-default:"lista.json"`
	UsedTokens    string `env:"STORAGE_USED_TOKENS_DOCUMENT" env-default:"tokens_used.json"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER"`
	DBName             string        `env:"DB_NAME"`
	User               string        `env:"DB_USER"`
	Password           string        `env:"DB_PASSWORD"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"10"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"10"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type Queue struct {
	Enabled     bool `env:"QUEUE_ENABLED" env-default:"false" env-description:"send confirmation emails through asynq instead of inline"`
	Concurrency int  `env:"QUEUE_CONCURRENCY" env-default:"10"`
}

type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" env-default:"587"`
	Username string        `env:"SMTP_USERNAME"`
	Pass     string        `env:"SMTP_PASS"`
	From     string        `env:"SMTP_FROM"`
	FromName string        `env:"SMTP_FROM_NAME" env-default:"Aether Digital"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" env-default:"10s" env-description:"deadline for a whole smtp session"`
}

type EmailConfig struct {
	Enabled     bool          `env:"EMAIL_ENABLED" env-default:"true"`
	Subject     string        `env:"EMAIL_SUBJECT" env-default:"Confirme seu e-mail"`
	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" env-default:"10s"`
	Templates   EmailTemplates
}

type EmailTemplates struct {
	Dir          string `env:"EMAIL_TEMPLATES_DIR" env-description:"directory overriding the embedded templates"`
	Verification string `env:"EMAIL_TEMPLATE_VERIFICATION" env-default:"verification.html"`
}

// MustLoad reads an optional .env file and then the environment.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return cfg
}

func Load() (*Config, error) {
	// a missing .env is fine, real deployments use the environment
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
