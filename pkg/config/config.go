package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	AuthServiceURL   string `env:"AUTH_SERVICE_URL"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	Report           Report
	Converter        Converter
	Storage          Storage
	Mailer           Mailer
	Kafka            Kafka
}

type Report struct {
	CompanyBranch          string        `env:"REPORT_COMPANY_BRANCH" envDefault:"Ing. Ramón Russo"`
	RetentionEnabled       bool          `env:"REPORT_RETENTION_ENABLED" envDefault:"false"`
	Retention              time.Duration `env:"REPORT_RETENTION" envDefault:"720h"`
	JobCleanupInterval     time.Duration `env:"JOB_CLEANUP_ATTACHMENTS_INTERVAL" envDefault:"1h"`
	AttachmentDownloadPath string        `env:"REPORT_DOWNLOAD_PATH" envDefault:"/web/content"`
}

type Converter struct {
	Binary   string        `env:"CONVERTER_BINARY" envDefault:"libreoffice"`
	Timeout  time.Duration `env:"CONVERTER_TIMEOUT" envDefault:"60s"`
	MaxProcs int64         `env:"CONVERTER_MAX_PROCS" envDefault:"2"`
}

type Storage struct {
	Timeout       time.Duration `env:"STORAGE_TIMEOUT" envDefault:"5s"`
	RetryAttempts int           `env:"STORAGE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryWaitMin  time.Duration `env:"STORAGE_RETRY_WAIT_MIN" envDefault:"1s"`
	RetryWaitMax  time.Duration `env:"STORAGE_RETRY_WAIT_MAX" envDefault:"5s"`
}

type Mailer struct {
	Host     string `env:"MAILER_HOST"`
	Port     int    `env:"MAILER_PORT" envDefault:"587"`
	Login    string `env:"MAILER_LOGIN"`
	Password string `env:"MAILER_PASSWORD"`
	From     string `env:"MAILER_FROM"`
	FromName string `env:"MAILER_FROM_NAME" envDefault:"Reportes"`
}

type Kafka struct {
	Brokers              []string `env:"KAFKA_BROKERS" envSeparator:","`
	ConsumerID           string   `env:"KAFKA_CONSUMER_ID" envDefault:"invoice-reports"`
	ReportRequestedTopic string   `env:"KAFKA_REPORT_REQUESTED_TOPIC"`
	ReportGeneratedTopic string   `env:"KAFKA_REPORT_GENERATED_TOPIC"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
