package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	AppPort    string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
	RedisAddr  string
	RedisPass  string
	RedisDB    int
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPSender string
	StripeKey  string
	IsProd     bool

	Rent RentRules
}

// RentRules are the pricing knobs used by the booking and recalculation
// workflows. They are injected explicitly rather than read from globals.
type RentRules struct {
	ReferralPercent    float64 // discount per still-valid referral
	MaxReferrals       int     // referrals a tenant may redeem credit for
	FoodDeduction      float64 // flat monthly deduction when food is opted out
	RentCutoffDay      int     // check-in after this day of month is prorated
	ReferralCodeMinLen int     // shorter codes are ignored, not rejected
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load()
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	smtpPort := envInt("SMTP_PORT", 465)
	return &Config{
		AppPort:    envDefault("APP_PORT", "8080"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     envDefault("DB_HOST", "127.0.0.1"),
		DBPort:     envDefault("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RedisAddr:  envDefault("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    redisDB,
		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPPort:   smtpPort,
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		SMTPSender: os.Getenv("SMTP_SENDER"),
		StripeKey:  os.Getenv("STRIPE_SECRET_KEY"),
		IsProd:     os.Getenv("IS_PROD") == "true",
		Rent:       DefaultRentRules(),
	}
}

// DefaultRentRules returns the rules the system has always run with.
func DefaultRentRules() RentRules {
	return RentRules{
		ReferralPercent:    envFloat("REFERRAL_PERCENT", 0.05),
		MaxReferrals:       envInt("MAX_REFERRALS", 2),
		FoodDeduction:      envFloat("FOOD_DEDUCTION", 1000),
		RentCutoffDay:      envInt("RENT_CUTOFF_DAY", 5),
		ReferralCodeMinLen: envInt("REFERRAL_CODE_MIN_LEN", 5),
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
