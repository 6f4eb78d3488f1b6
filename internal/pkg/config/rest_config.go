package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys,
// e.g. SIGVAULT_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "SIGVAULT"

// RestConfig holds the settings of the REST API server
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	Logger   LoggerSettings   `mapstructure:"logger" validate:"-"`
	Database DatabaseSettings `mapstructure:"database" validate:"-"`
	Crypto   CryptoSettings   `mapstructure:"crypto" validate:"-"`
}

// Validate checks the port, then each section with its own Validate
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.Crypto.Validate()
}

// InitializeRestConfig loads the REST configuration from a YAML file and the environment.
// An empty path loads defaults and environment variables only.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CryptoSettingsFromEnv returns the crypto settings from defaults and environment variables.
func CryptoSettingsFromEnv() (*CryptoSettings, error) {
	v := newViper()

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Crypto.Validate(); err != nil {
		return nil, err
	}
	return &cfg.Crypto, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8000")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "file:sigvault.db")
	v.SetDefault("database.name", "")

	v.SetDefault("crypto.default_key_size", 1024)
	v.SetDefault("crypto.miller_rabin_rounds", 5)
	v.SetDefault("crypto.max_prime_attempts", 0)
	v.SetDefault("crypto.hash_algorithm", HashAlgorithmSHA256)
	v.SetDefault("crypto.key_gen_timeout", 30*time.Second)

	return v
}
