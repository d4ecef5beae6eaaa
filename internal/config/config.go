// Package config carga la configuración del servicio desde flags, variables
// de entorno (prefijo SHELTER_) y un archivo opcional, usando viper.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pet-adoption-shelter/internal/platform/logger"
)

const EnvPrefix = "SHELTER"

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	AuthDebug  = "debug"
	AuthJWT    = "jwt"
	AuthRemote = "remote"
)

type Config struct {
	App     AppConfig     `mapstructure:"app" yaml:"app"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Shelter ShelterConfig `mapstructure:"shelter" yaml:"shelter"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
}

type AppConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver" yaml:"driver"`
	DSN        string `mapstructure:"dsn" yaml:"dsn"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

type ShelterConfig struct {
	Owner           string `mapstructure:"owner" yaml:"owner"`
	DefaultCapacity int    `mapstructure:"default_capacity" yaml:"default_capacity"`
}

type AuthConfig struct {
	Mode      string           `mapstructure:"mode" yaml:"mode"`
	JWTSecret string           `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	Remote    RemoteAuthConfig `mapstructure:"remote" yaml:"remote"`
}

type RemoteAuthConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
}

// SetDefaults registra los valores por defecto en v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pet-adoption-shelter")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.sqlite_path", "data/shelter.db")
	v.SetDefault("shelter.owner", "")
	v.SetDefault("shelter.default_capacity", 5)
	v.SetDefault("auth.mode", AuthDebug)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.remote.base_url", "")
	v.SetDefault("auth.remote.api_key", "")
}

// BindEnv habilita SHELTER_HTTP_ADDR, SHELTER_STORAGE_SQLITE_PATH, etc.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// New arma un viper con defaults y entorno. Si file != "" lo lee.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return v, nil
}

// Load decodifica y valida.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Auth.Mode = strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	c.Shelter.Owner = strings.TrimSpace(c.Shelter.Owner)
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case string(logger.FormatText), string(logger.FormatJSON):
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("storage.sqlite_path is required for driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for driver %s", DriverPostgres)
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, sqlite, postgres (got %q)", c.Storage.Driver)
	}

	if c.Shelter.DefaultCapacity < 0 || c.Shelter.DefaultCapacity > math.MaxUint16 {
		return fmt.Errorf("shelter.default_capacity must be between 0 and %d", math.MaxUint16)
	}

	switch c.Auth.Mode {
	case AuthDebug:
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required for auth mode %s", AuthJWT)
		}
	case AuthRemote:
		if c.Auth.Remote.BaseURL == "" {
			return fmt.Errorf("auth.remote.base_url is required for auth mode %s", AuthRemote)
		}
	default:
		return fmt.Errorf("auth.mode must be one of debug, jwt, remote (got %q)", c.Auth.Mode)
	}
	return nil
}

// LoggerOptions traduce la sección log a opciones del logger.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    c.App.Name,
	}
}

// YAML devuelve la configuración efectiva con los secretos enmascarados.
func (c Config) YAML() ([]byte, error) {
	redacted := c
	if redacted.Auth.JWTSecret != "" {
		redacted.Auth.JWTSecret = "***"
	}
	if redacted.Auth.Remote.APIKey != "" {
		redacted.Auth.Remote.APIKey = "***"
	}
	if redacted.Storage.DSN != "" {
		redacted.Storage.DSN = "***"
	}
	return yaml.Marshal(redacted)
}
