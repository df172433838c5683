package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Nacex     NacexConfig
	Scheduler SchedulerConfig
	MQTT      MQTTConfig
	Log       LogConfig
	Sequence  SequenceConfig
	Bootstrap BootstrapConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type NacexConfig struct {
	BaseURL string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

type SchedulerConfig struct {
	Enabled                 bool
	TrackingRefreshSchedule string
	SLAAlertSchedule        string
	SystemUserEmail         string
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

type LogConfig struct {
	Directory string
}

type SequenceConfig struct {
	ShipmentPrefix string
}

// BootstrapConfig names the administrator created on start when it does not exist yet.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type", "X-Request-ID"})
	viper.SetDefault("NACEX_BASE_URL", "http://gprs.nacex.com/nacex_ws/ws")
	viper.SetDefault("NACEX_TIMEOUT_SECONDS", 30)
	viper.SetDefault("NACEX_RPS", 5)
	viper.SetDefault("NACEX_BURST", 5)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("TRACKING_REFRESH_SCHEDULE", "*/30 * * * *")
	viper.SetDefault("SLA_ALERT_SCHEDULE", "0 7 * * *")
	viper.SetDefault("MQTT_CLIENT_ID", "shipping-management")
	viper.SetDefault("MQTT_TOPIC_PREFIX", "shipping")
	viper.SetDefault("MQTT_QOS", 1)
	viper.SetDefault("SHIPMENT_SEQUENCE_PREFIX", "SHP")
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Nacex: NacexConfig{
			BaseURL: viper.GetString("NACEX_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("NACEX_TIMEOUT_SECONDS")) * time.Second,
			RPS:     viper.GetFloat64("NACEX_RPS"),
			Burst:   viper.GetInt("NACEX_BURST"),
		},
		Scheduler: SchedulerConfig{
			Enabled:                 viper.GetBool("SCHEDULER_ENABLED"),
			TrackingRefreshSchedule: viper.GetString("TRACKING_REFRESH_SCHEDULE"),
			SLAAlertSchedule:        viper.GetString("SLA_ALERT_SCHEDULE"),
			SystemUserEmail:         viper.GetString("SYSTEM_USER_EMAIL"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			TopicPrefix: viper.GetString("MQTT_TOPIC_PREFIX"),
			QoS:         byte(viper.GetInt("MQTT_QOS")),
		},
		Log: LogConfig{
			Directory: viper.GetString("LOG_DIRECTORY"),
		},
		Sequence: SequenceConfig{
			ShipmentPrefix: viper.GetString("SHIPMENT_SEQUENCE_PREFIX"),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
