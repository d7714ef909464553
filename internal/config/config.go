package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string   `yaml:"port" env:"SERVER_PORT"`
		Mode         string   `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigins  []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
		ReadTimeout  string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
		SigningMethod         string `yaml:"signing_method" env:"JWT_SIGNING_METHOD"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Admin AdminConfig `yaml:"admin"`

	Classifier struct {
		Mode      string `yaml:"mode" env:"CLASSIFIER_MODE"`
		ModelPath string `yaml:"model_path" env:"MODEL_PATH"`
		RemoteURL string `yaml:"remote_url" env:"CLASSIFIER_REMOTE_URL"`
		Timeout   string `yaml:"timeout" env:"CLASSIFIER_TIMEOUT"`
	} `yaml:"classifier"`

	Prediction struct {
		RequireAuthForStudent bool `yaml:"require_auth_for_student" env:"PREDICTION_REQUIRE_AUTH_FOR_STUDENT"`
		MaxBatchSize          int  `yaml:"max_batch_size" env:"PREDICTION_MAX_BATCH_SIZE"`
	} `yaml:"prediction"`
}

// AdminConfig is the account provisioned at startup
type AdminConfig struct {
	Username   string `yaml:"username" env:"ADMIN_USERNAME"`
	Password   string `yaml:"password" env:"ADMIN_PASSWORD"`
	ForceReset bool   `yaml:"force_reset" env:"ADMIN_FORCE_RESET"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8000"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "30s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "placement"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.AutoMigrate = true

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "placement-tracker"
	config.JWT.SigningMethod = "HS256"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Admin.Username = "admin"

	config.Classifier.Mode = "local"
	config.Classifier.ModelPath = "models/placement_model.yaml"
	config.Classifier.Timeout = "15s"

	config.Prediction.RequireAuthForStudent = true
	config.Prediction.MaxBatchSize = 1000
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if err := positiveDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration: %w", err)
	}

	switch strings.ToUpper(config.JWT.SigningMethod) {
	case "", "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT signing method %q", config.JWT.SigningMethod)
	}

	for name, value := range map[string]string{
		"server read timeout":  config.Server.ReadTimeout,
		"server write timeout": config.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if err := positiveDuration(config.Classifier.Timeout); err != nil {
		return fmt.Errorf("invalid classifier timeout: %w", err)
	}

	switch strings.ToLower(config.Classifier.Mode) {
	case "local":
		if config.Classifier.ModelPath == "" {
			return fmt.Errorf("classifier model_path is required in local mode")
		}
	case "remote":
		if config.Classifier.RemoteURL == "" {
			return fmt.Errorf("classifier remote_url is required in remote mode")
		}
	default:
		return fmt.Errorf("classifier mode must be local or remote, got %q", config.Classifier.Mode)
	}

	if config.Prediction.MaxBatchSize < 0 {
		return fmt.Errorf("prediction max_batch_size cannot be negative")
	}

	return nil
}

func positiveDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("%q must be positive", value)
	}
	return nil
}

// GetPostgresConnectionString returns postgres connection string. User and
// password are escaped, so they may contain URL delimiters.
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return dsn.String()
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
