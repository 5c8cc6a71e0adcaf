package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		Session struct {
			CookieName string `envconfig:"COOKIE_NAME" default:"bookingpay_session"`
			TTLSeconds int    `envconfig:"TTL_SECONDS" default:"604800"`
			Secure     bool   `envconfig:"SECURE"`
		} `envconfig:"SESSION"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Jobs struct {
		InvoiceCron       string `envconfig:"INVOICE_CRON" default:"0 1 * * *"`
		OverdueCron       string `envconfig:"OVERDUE_CRON" default:"0 2 * * *"`
		InvoiceLeadDays   int    `envconfig:"INVOICE_LEAD_DAYS" default:"2"`
		RunTimeoutSeconds int    `envconfig:"RUN_TIMEOUT_SECONDS" default:"600"`
	} `envconfig:"JOBS"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`

		PayAdvantage struct {
			BaseURL  string `envconfig:"BASE_URL" default:"https://api.payadvantage.com.au"`
			APIKey   string `envconfig:"API_KEY"`
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"PAYADVANTAGE"`

		Xero struct {
			ClientID        string   `envconfig:"CLIENT_ID"`
			ClientSecret    string   `envconfig:"CLIENT_SECRET"`
			RedirectURL     string   `envconfig:"REDIRECT_URL"`
			Scopes          []string `envconfig:"SCOPES" default:"offline_access,accounting.transactions,accounting.contacts"`
			AuthorizeURL    string   `envconfig:"AUTHORIZE_URL" default:"https://login.xero.com/identity/connect/authorize"`
			TokenURL        string   `envconfig:"TOKEN_URL" default:"https://identity.xero.com/connect/token"`
			ConnectionsURL  string   `envconfig:"CONNECTIONS_URL" default:"https://api.xero.com/connections"`
			APIBaseURL      string   `envconfig:"API_BASE_URL" default:"https://api.xero.com"`
			SalesAccount    string   `envconfig:"SALES_ACCOUNT_CODE" default:"200"`
			StateTTLSeconds int      `envconfig:"STATE_TTL_SECONDS" default:"600"`
		} `envconfig:"XERO"`

		S3 struct {
			Endpoint        string `envconfig:"ENDPOINT"`
			Region          string `envconfig:"REGION"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicURL       string `envconfig:"PUBLIC_URL"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		PaymentTopic string `envconfig:"PAYMENT_TOPIC" default:"bookingpay.payments"`
	} `envconfig:"KAFKA"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
