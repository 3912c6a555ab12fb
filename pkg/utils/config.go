package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Redis    RedisConfig
	SMS      SMSConfig
	Email    EmailConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	AccessSecret       string
	AccessExpiryHours  int
	RefreshSecret      string
	RefreshExpiryDays  int
}

type OTPConfig struct {
	Length               int
	PhoneExpiryMinutes   int
	EmailExpiryMinutes   int
	MaxRequestsPerHour   int
	FailOnDeliveryError  bool
	AllowedEmailDomains  []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMSConfig struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

type StorageConfig struct {
	Region       string
	Bucket       string
	FolderPrefix string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_ACCESS_EXPIRY_HOURS", 1)
	viper.SetDefault("JWT_REFRESH_EXPIRY_DAYS", 7)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_PHONE_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_EMAIL_EXPIRY_MINUTES", 5)
	viper.SetDefault("OTP_MAX_REQUESTS_PER_HOUR", 5)
	viper.SetDefault("OTP_FAIL_ON_DELIVERY_ERROR", false)
	viper.SetDefault("OTP_ALLOWED_EMAIL_DOMAINS", "gmail.com,yahoo.com,outlook.com,hotmail.com")
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("S3_FOLDER_PREFIX", "advonex")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			AccessSecret:      viper.GetString("JWT_SECRET"),
			AccessExpiryHours: viper.GetInt("JWT_ACCESS_EXPIRY_HOURS"),
			RefreshSecret:     viper.GetString("JWT_REFRESH_SECRET"),
			RefreshExpiryDays: viper.GetInt("JWT_REFRESH_EXPIRY_DAYS"),
		},
		OTP: OTPConfig{
			Length:              viper.GetInt("OTP_LENGTH"),
			PhoneExpiryMinutes:  viper.GetInt("OTP_PHONE_EXPIRY_MINUTES"),
			EmailExpiryMinutes:  viper.GetInt("OTP_EMAIL_EXPIRY_MINUTES"),
			MaxRequestsPerHour:  viper.GetInt("OTP_MAX_REQUESTS_PER_HOUR"),
			FailOnDeliveryError: viper.GetBool("OTP_FAIL_ON_DELIVERY_ERROR"),
			AllowedEmailDomains: splitList(viper.GetString("OTP_ALLOWED_EMAIL_DOMAINS")),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		SMS: SMSConfig{
			TwilioAccountSID: viper.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  viper.GetString("TWILIO_AUTH_TOKEN"),
			TwilioFrom:       viper.GetString("TWILIO_FROM"),
		},
		Email: EmailConfig{
			ResendAPIKey: viper.GetString("RESEND_API_KEY"),
			From:         viper.GetString("RESEND_FROM_EMAIL"),
		},
		Storage: StorageConfig{
			Region:       viper.GetString("S3_REGION"),
			Bucket:       viper.GetString("S3_BUCKET"),
			FolderPrefix: viper.GetString("S3_FOLDER_PREFIX"),
		},
	}

	return config, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}
