package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string   `mapstructure:"PORT"`
	DatabaseDriver                string   `mapstructure:"DATABASE_DRIVER"`
	DatabasePath                  string   `mapstructure:"DATABASE_PATH"`
	DatabaseURL                   string   `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns                int      `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns                int      `mapstructure:"DB_MAX_IDLE_CONNS"`
	APIPrefix                     string   `mapstructure:"API_PREFIX"`
	EnableCORS                    bool     `mapstructure:"ENABLE_CORS"`
	CORSAllowedOrigins            []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	AdminGateEnabled              bool     `mapstructure:"ADMIN_GATE_ENABLED"`
	AdminHeader                   string   `mapstructure:"ADMIN_HEADER"`
	SeedAdminEmail                string   `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminName                 string   `mapstructure:"SEED_ADMIN_NAME"`
	SeedAdminControlType          string   `mapstructure:"SEED_ADMIN_CONTROL_TYPE"`
	AtomicParticipantWrites       bool     `mapstructure:"ATOMIC_PARTICIPANT_WRITES"`
	DiscordBotToken               string   `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string   `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	ResendAPIKey                  string   `mapstructure:"RESEND_API_KEY"`
	EmailFrom                     string   `mapstructure:"EMAIL_FROM"`
	LogLevel                      string   `mapstructure:"LOG_LEVEL"`
	MetricsEnabled                bool     `mapstructure:"METRICS_ENABLED"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// AdminSeed is the allow-list entry inserted when the schema is set up.
type AdminSeed struct {
	Email       string
	Name        string
	ControlType string
}

func (c *Config) AdminSeed() AdminSeed {
	return AdminSeed{
		Email:       c.SeedAdminEmail,
		Name:        c.SeedAdminName,
		ControlType: c.SeedAdminControlType,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_PATH", "registrations.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("API_PREFIX", "")
	v.SetDefault("ENABLE_CORS", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("ADMIN_GATE_ENABLED", false)
	v.SetDefault("ADMIN_HEADER", "X-Admin-Email")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("SEED_ADMIN_NAME", "Event Admin")
	v.SetDefault("SEED_ADMIN_CONTROL_TYPE", "Q")
	v.SetDefault("ATOMIC_PARTICIPANT_WRITES", true)
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_NOTIFICATIONS_CHANNEL_ID", "")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)
}

// Load reads the configuration from the environment (and an optional .env
// file) on top of the defaults above.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("can't load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.BindEnv("DATABASE_URL")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	v.BindEnv("RESEND_API_KEY")
	v.BindEnv("EMAIL_FROM")
	v.BindEnv("CORS_ALLOWED_ORIGINS")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("unable to decode config", "error", err)
		os.Exit(1)
	}
	return cfg
}
