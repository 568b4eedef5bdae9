package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Storage drivers of the local durable store.
const (
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"
)

// Remote drivers of the remote mirror.
const (
	RemoteDriverNone     = "none"
	RemoteDriverMySQL    = "mysql"
	RemoteDriverPostgres = "postgres"
	RemoteDriverHTTP     = "http"
)

type Config struct {
	Curriculum CurriculumConfig `mapstructure:"curriculum"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Remote     RemoteConfig     `mapstructure:"remote"`
	Quiz       QuizConfig       `mapstructure:"quiz"`
	User       UserConfig       `mapstructure:"user"`
}

type CurriculumConfig struct {
	// Path is a directory of level YAML files or an .xlsx workbook.
	Path    string `mapstructure:"path" validate:"required,readable_path"`
	Version string `mapstructure:"version"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=file sqlite memory"`
	Directory  string `mapstructure:"directory" validate:"required_if=Driver file"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

type RemoteConfig struct {
	Driver         string         `mapstructure:"driver" validate:"oneof=none mysql postgres http"`
	TimeoutSeconds int            `mapstructure:"timeout_seconds" validate:"gte=0"`
	Database       DatabaseConfig `mapstructure:"database"`
	HTTP           HTTPConfig     `mapstructure:"http"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type HTTPConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
	Token            string `mapstructure:"token"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type QuizConfig struct {
	DefaultType string `mapstructure:"default_type" validate:"oneof=choice spelling matching"`
	// Seed fixes question shuffles. 0 seeds from the clock.
	Seed int64 `mapstructure:"seed"`
}

// UserConfig identifies the tenant rows written to the remote mirror.
type UserConfig struct {
	AcademyID string `mapstructure:"academy_id" validate:"required"`
	UserID    string `mapstructure:"user_id" validate:"required"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vocadays")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load is a shortcut of NewConfigLoader(configFile).Load().
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("curriculum.path", "curriculum")
	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.directory", filepath.Join("data", "local"))
	v.SetDefault("storage.sqlite_path", filepath.Join("data", "vocadays.db"))
	v.SetDefault("remote.driver", RemoteDriverNone)
	v.SetDefault("remote.timeout_seconds", 10)
	v.SetDefault("remote.database.host", "localhost")
	v.SetDefault("remote.database.port", 3306)
	v.SetDefault("remote.database.database", "vocadays")
	v.SetDefault("remote.database.username", "user")
	v.SetDefault("remote.http.max_retry_attempts", 3)
	v.SetDefault("quiz.default_type", "choice")
	v.SetDefault("user.academy_id", "default")
	v.SetDefault("user.user_id", "local")

	// Secrets and the user identity are only read from environment variables
	bindings := map[string]string{
		"remote.database.password": "VOCADAYS_REMOTE_PASSWORD",
		"remote.http.token":        "VOCADAYS_REMOTE_TOKEN",
		"user.user_id":             "VOCADAYS_USER_ID",
		"user.academy_id":          "VOCADAYS_ACADEMY_ID",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validate configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}
	if cfg.Remote.Driver == RemoteDriverHTTP && cfg.Remote.HTTP.BaseURL == "" {
		return nil, fmt.Errorf("invalid configuration: base_url is required for the http remote driver")
	}

	return &cfg, nil
}
