// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Sheets   SheetsConfig
	Cache    CacheConfig
	Report   ReportConfig
	Mail     MailConfig
	Storage  StorageConfig
	Database DatabaseConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	ScansSheet      string
	ItemsSheet      string
	CacheTTLSeconds int
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type ReportConfig struct {
	Enabled   bool
	Hour      int
	Minute    int
	Timezone  string
	OutputDir string
}

type MailConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	To           []string
	DashboardURL string
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type DatabaseConfig struct {
	DSN string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("SPREADSHEET_ID", "")
		viper.SetDefault("GOOGLE_CREDENTIALS_JSON", "")
		viper.SetDefault("SCANS_SHEET", "Scans")
		viper.SetDefault("ITEMS_SHEET", "Items")
		viper.SetDefault("SHEET_CACHE_TTL_SECONDS", 300)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
		viper.SetDefault("REPORT_ENABLED", false)
		viper.SetDefault("REPORT_HOUR", 9)
		viper.SetDefault("REPORT_MINUTE", 30)
		viper.SetDefault("REPORT_TIMEZONE", "Africa/Cairo")
		viper.SetDefault("REPORT_OUTPUT_DIR", "./data/reports")
		viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
		viper.SetDefault("SMTP_PORT", 587)
		viper.SetDefault("SMTP_USER", "")
		viper.SetDefault("SMTP_PASSWORD", "")
		viper.SetDefault("REPORT_EMAIL_TO", []string{})
		viper.SetDefault("DASHBOARD_URL", "")
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("DB_DSN", "")
		viper.SetDefault("LOG_LEVEL", "info")

		viper.AutomaticEnv()

		ensureDir(viper.GetString("REPORT_OUTPUT_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Sheets: SheetsConfig{
				SpreadsheetID:   viper.GetString("SPREADSHEET_ID"),
				CredentialsJSON: viper.GetString("GOOGLE_CREDENTIALS_JSON"),
				ScansSheet:      viper.GetString("SCANS_SHEET"),
				ItemsSheet:      viper.GetString("ITEMS_SHEET"),
				CacheTTLSeconds: viper.GetInt("SHEET_CACHE_TTL_SECONDS"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
			Report: ReportConfig{
				Enabled:   viper.GetBool("REPORT_ENABLED"),
				Hour:      viper.GetInt("REPORT_HOUR"),
				Minute:    viper.GetInt("REPORT_MINUTE"),
				Timezone:  viper.GetString("REPORT_TIMEZONE"),
				OutputDir: viper.GetString("REPORT_OUTPUT_DIR"),
			},
			Mail: MailConfig{
				Host:         viper.GetString("SMTP_HOST"),
				Port:         viper.GetInt("SMTP_PORT"),
				User:         viper.GetString("SMTP_USER"),
				Password:     viper.GetString("SMTP_PASSWORD"),
				To:           viper.GetStringSlice("REPORT_EMAIL_TO"),
				DashboardURL: viper.GetString("DASHBOARD_URL"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Database: DatabaseConfig{
				DSN: viper.GetString("DB_DSN"),
			},
			LogLevel: viper.GetString("LOG_LEVEL"),
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
