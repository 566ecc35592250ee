package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    int    `yaml:"port"`
	Host    string `yaml:"host"`
	BaseURL string `yaml:"base_url"` // used to build password reset links
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// StorageConfig holds object storage configuration. When Enabled is false
// the storage adapter runs in pass-through mode and never uploads.
type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// SMTPConfig holds outgoing mail configuration. When Host is empty the
// mailer logs reset links instead of sending them.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file and applies environment
// overrides for secrets and the storage switch.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	if cfg.Storage.Enabled {
		if cfg.Storage.Endpoint == "" || cfg.Storage.Region == "" ||
			cfg.Storage.Bucket == "" || cfg.Storage.AccessKey == "" ||
			cfg.Storage.SecretKey == "" {
			return nil, fmt.Errorf("storage is enabled but endpoint/region/bucket/credentials are incomplete")
		}
	}

	return &cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("STORAGE_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err == nil {
			c.Storage.Enabled = enabled
		}
	}
	envString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	envString(&c.Storage.Region, "STORAGE_REGION")
	envString(&c.Storage.Bucket, "STORAGE_BUCKET")
	envString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	envString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	envString(&c.Database.Password, "DATABASE_PASSWORD")
	envString(&c.JWT.Secret, "JWT_SECRET")
	envString(&c.SMTP.Password, "SMTP_PASSWORD")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
