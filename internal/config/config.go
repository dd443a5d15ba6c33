package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Store     StoreConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// PrinterConfig selects the receipt printer transport. Type is one of
// "usb", "network", or "null".
type PrinterConfig struct {
	Type          string
	USBPath       string
	Address       string
	CharWidth     int
	ReceiptFooter string
}

// StoreConfig seeds the store and default terminal on first run
type StoreConfig struct {
	Name          string
	AddressLine1  string
	Phone         string
	TaxID         string
	CurrencyCode  string
	Timezone      string
	TerminalName  string
	ReceiptPrefix string
	AdminUser     string
	AdminPassword string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "cafepos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "cafepos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "null")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("PRINTER_RECEIPT_FOOTER", "Thank you!")
	viper.SetDefault("STORE_NAME", "Cafe POS")
	viper.SetDefault("STORE_ADDRESS_LINE1", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_TAX_ID", "")
	viper.SetDefault("STORE_CURRENCY_CODE", "USD")
	viper.SetDefault("STORE_TIMEZONE", "UTC")
	viper.SetDefault("STORE_TERMINAL_NAME", "Terminal 1")
	viper.SetDefault("STORE_RECEIPT_PREFIX", "T1")
	viper.SetDefault("STORE_ADMIN_USER", "admin")
	viper.SetDefault("STORE_ADMIN_PASSWORD", "admin123")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:          viper.GetString("PRINTER_TYPE"),
			USBPath:       viper.GetString("PRINTER_USB_PATH"),
			Address:       viper.GetString("PRINTER_ADDRESS"),
			CharWidth:     viper.GetInt("PRINTER_CHAR_WIDTH"),
			ReceiptFooter: viper.GetString("PRINTER_RECEIPT_FOOTER"),
		},
		Store: StoreConfig{
			Name:          viper.GetString("STORE_NAME"),
			AddressLine1:  viper.GetString("STORE_ADDRESS_LINE1"),
			Phone:         viper.GetString("STORE_PHONE"),
			TaxID:         viper.GetString("STORE_TAX_ID"),
			CurrencyCode:  viper.GetString("STORE_CURRENCY_CODE"),
			Timezone:      viper.GetString("STORE_TIMEZONE"),
			TerminalName:  viper.GetString("STORE_TERMINAL_NAME"),
			ReceiptPrefix: viper.GetString("STORE_RECEIPT_PREFIX"),
			AdminUser:     viper.GetString("STORE_ADMIN_USER"),
			AdminPassword: viper.GetString("STORE_ADMIN_PASSWORD"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
