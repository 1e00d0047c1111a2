package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	MigrationsPath    string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Bootstrap operator, created on start when no user with this name exists.
	AdminUsername string
	AdminPassword string

	// bcrypt cost for operator passwords
	PasswordCost int

	// Business ceilings
	MaxPaymentAmount    decimal.Decimal
	MaxCreditLimit      decimal.Decimal
	DefaultPaymentTerms string
	PhoneRegion         string

	// Optional infrastructure. Empty values disable the feature.
	RedisAddr      string
	ReportCacheTTL time.Duration
	KafkaBrokers   []string
	KafkaTopic     string

	RateLimit   string
	CORSOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "shop-ledger")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("PASSWORD_COST", bcrypt.DefaultCost)
	v.SetDefault("MAX_PAYMENT_AMOUNT", "1000000")
	v.SetDefault("MAX_CREDIT_LIMIT", "10000000")
	v.SetDefault("DEFAULT_PAYMENT_TERMS", "Net 30")
	v.SetDefault("PHONE_REGION", "US")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REPORT_CACHE_TTL", "5m")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "shop-ledger-events")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		AdminUsername:       v.GetString("ADMIN_USERNAME"),
		AdminPassword:       v.GetString("ADMIN_PASSWORD"),
		PasswordCost:        v.GetInt("PASSWORD_COST"),
		DefaultPaymentTerms: v.GetString("DEFAULT_PAYMENT_TERMS"),
		PhoneRegion:         strings.ToUpper(v.GetString("PHONE_REGION")),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		KafkaTopic:          v.GetString("KAFKA_TOPIC"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		KafkaBrokers:        splitList(v.GetString("KAFKA_BROKERS")),
		CORSOrigins:         splitList(v.GetString("CORS_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.PasswordCost < bcrypt.MinCost || cfg.PasswordCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid value for PASSWORD_COST (%d): must be between %d and %d", cfg.PasswordCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION"); err != nil {
		return nil, err
	}
	if cfg.ReportCacheTTL, err = parseDuration(v, "REPORT_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.MaxPaymentAmount, err = parsePositiveDecimal(v, "MAX_PAYMENT_AMOUNT"); err != nil {
		return nil, err
	}
	if cfg.MaxCreditLimit, err = parsePositiveDecimal(v, "MAX_CREDIT_LIMIT"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid value for %s (%q): must be a positive duration", key, raw)
	}
	return d, nil
}

func parsePositiveDecimal(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid value for %s (%q): must be a positive amount", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
