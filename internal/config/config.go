package config

import (
	"log"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"library-fees/internal/fees"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout int
	Timeout     int
	Prefix      string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
}

// StorageConfig selects where generated exports go: "local" or "s3".
type StorageConfig struct {
	Driver       string
	ExportDir    string
	PublicPrefix string
	ExternalURL  string
}

type FeesConfig struct {
	PerDiem                string
	LoyaltyDiscount        string
	SurchargeAmount        string
	SurchargeThresholdDays int
}

type AppConfig struct {
	Port      string
	PublicDir string
	Postgres  PostgresConfig
	Redis     RedisConfig
	S3        S3Config
	Storage   StorageConfig
	Fees      FeesConfig
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int value %q: %v", s, err)
	}
	return i
}

func mustBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("invalid bool value %q: %v", s, err)
	}
	return b
}

func Load() AppConfig {
	return AppConfig{
		Port:      getenv("APP_PORT", "7070"),
		PublicDir: getenv("PUBLIC_DIR", "./public"),
		Postgres: PostgresConfig{
			Host:     getenv("PG_HOST", "127.0.0.1"),
			Port:     mustAtoi(getenv("PG_PORT", "5432")),
			User:     getenv("PG_USER", "library"),
			Password: getenv("PG_PASSWORD", "library"),
			DBName:   getenv("PG_DB", "library"),
			SSLMode:  getenv("PG_SSLMODE", "disable"),

			MaxOpenConns:    mustAtoi(getenv("PG_MAX_OPEN_CONNS", "10")),
			MaxIdleConns:    mustAtoi(getenv("PG_MAX_IDLE_CONNS", "5")),
			ConnMaxLifetime: mustAtoi(getenv("PG_CONN_MAX_LIFETIME", "300")),
		},
		Redis: RedisConfig{
			Addr:        getenv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    getenv("REDIS_PASSWORD", ""),
			DB:          mustAtoi(getenv("REDIS_DB", "0")),
			MaxRetries:  mustAtoi(getenv("REDIS_MAX_RETRIES", "5")),
			DialTimeout: mustAtoi(getenv("REDIS_DIAL_TIMEOUT", "10")),
			Timeout:     mustAtoi(getenv("REDIS_TIMEOUT", "5")),
			Prefix:      getenv("REDIS_PREFIX", "library_"),
		},
		S3: S3Config{
			Endpoint:        getenv("S3_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getenv("S3_ACCESS_KEY", "minio"),
			SecretAccessKey: getenv("S3_SECRET_KEY", "minio123"),
			Bucket:          getenv("S3_BUCKET", "exports"),
			Region:          getenv("S3_REGION", "us-east-1"),
			UseSSL:          mustBool(getenv("S3_USE_SSL", "false")),
			Prefix:          getenv("S3_PREFIX", "inventory/"),
		},
		Storage: StorageConfig{
			Driver:       getenv("STORAGE_DRIVER", "local"),
			ExportDir:    getenv("EXPORT_DIR", "./exports"),
			PublicPrefix: getenv("FILES_PUBLIC_PREFIX", "/files"),
			ExternalURL:  getenv("EXTERNAL_URL", ""),
		},
		Fees: FeesConfig{
			PerDiem:                getenv("FEE_PER_DIEM", "100"),
			LoyaltyDiscount:        getenv("FEE_LOYALTY_DISCOUNT", "0.20"),
			SurchargeAmount:        getenv("FEE_SURCHARGE_AMOUNT", "200"),
			SurchargeThresholdDays: mustAtoi(getenv("FEE_SURCHARGE_THRESHOLD_DAYS", "3")),
		},
	}
}

// Policy turns the fee settings into an engine policy. The holiday weekday
// is not configurable.
func (c FeesConfig) Policy() (fees.Policy, error) {
	p := fees.DefaultPolicy()

	var err error
	if p.PerDiemRate, err = decimal.NewFromString(c.PerDiem); err != nil {
		return fees.Policy{}, err
	}
	if p.DiscountFraction, err = decimal.NewFromString(c.LoyaltyDiscount); err != nil {
		return fees.Policy{}, err
	}
	if p.SurchargeAmount, err = decimal.NewFromString(c.SurchargeAmount); err != nil {
		return fees.Policy{}, err
	}
	p.SurchargeThresholdDays = c.SurchargeThresholdDays

	return p, p.Validate()
}
