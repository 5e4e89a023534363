package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the storefront and the prototype server.
type Config struct {
	AppPort string
	AppEnv  string

	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	JWTSecret     string
	TokenDuration time.Duration

	RedisAddr     string // empty means the in-memory key-value store is used
	RedisPassword string
	RedisDB       int

	RabbitMQURL string // empty disables checkout event publishing

	WhatsAppPhone string

	FeedLimit            int
	CatalogRetryAttempts int
	CatalogRetryInterval time.Duration

	LoginRatePerMinute int
	LoginBurst         int

	SessionIdleTimeout time.Duration

	ImageStore    string // "local" or "s3"
	ImageDir      string
	ImageURLBase  string
	AWSRegion     string
	AWSS3Bucket   string
	AWSS3Prefix   string
	AWSS3Endpoint string
	AWSAccessKey  string // empty uses the SDK default credential chain
	AWSSecretKey  string

	PrototypePort string
	PrototypeDB   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "deenha.sqlite")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_DURATION", "24h")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("WHATSAPP_PHONE", "6281919234222")
	v.SetDefault("FEED_LIMIT", 6)
	v.SetDefault("CATALOG_RETRY_ATTEMPTS", 3)
	v.SetDefault("CATALOG_RETRY_INTERVAL", "200ms")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("LOGIN_BURST", 5)
	v.SetDefault("SESSION_IDLE_TIMEOUT", "2h")
	v.SetDefault("IMAGE_STORE", "local")
	v.SetDefault("IMAGE_DIR", "./public/images")
	v.SetDefault("IMAGE_URL_BASE", "/images")
	v.SetDefault("AWS_REGION", "ap-southeast-1")
	v.SetDefault("AWS_S3_BUCKET", "deenha")
	v.SetDefault("AWS_S3_PREFIX", "products/")
	v.SetDefault("AWS_S3_ENDPOINT", "")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("PROTOTYPE_PORT", ":3001")
	v.SetDefault("PROTOTYPE_DB", "./database.sqlite")
}

// Load reads configuration from the environment on top of the defaults.
func Load() Config {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already configured viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		AppPort:              v.GetString("APP_PORT"),
		AppEnv:               v.GetString("APP_ENV"),
		DatabaseDriver:       v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		TokenDuration:        v.GetDuration("TOKEN_DURATION"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		WhatsAppPhone:        v.GetString("WHATSAPP_PHONE"),
		FeedLimit:            v.GetInt("FEED_LIMIT"),
		CatalogRetryAttempts: v.GetInt("CATALOG_RETRY_ATTEMPTS"),
		CatalogRetryInterval: v.GetDuration("CATALOG_RETRY_INTERVAL"),
		LoginRatePerMinute:   v.GetInt("LOGIN_RATE_PER_MINUTE"),
		LoginBurst:           v.GetInt("LOGIN_BURST"),
		SessionIdleTimeout:   v.GetDuration("SESSION_IDLE_TIMEOUT"),
		ImageStore:           v.GetString("IMAGE_STORE"),
		ImageDir:             v.GetString("IMAGE_DIR"),
		ImageURLBase:         v.GetString("IMAGE_URL_BASE"),
		AWSRegion:            v.GetString("AWS_REGION"),
		AWSS3Bucket:          v.GetString("AWS_S3_BUCKET"),
		AWSS3Prefix:          v.GetString("AWS_S3_PREFIX"),
		AWSS3Endpoint:        v.GetString("AWS_S3_ENDPOINT"),
		AWSAccessKey:         v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:         v.GetString("AWS_SECRET_ACCESS_KEY"),
		PrototypePort:        v.GetString("PROTOTYPE_PORT"),
		PrototypeDB:          v.GetString("PROTOTYPE_DB"),
	}
}
