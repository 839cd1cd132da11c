package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const configFileName = "config.yaml"

// Config holds application level configuration loaded from an optional YAML
// file and environment variables.
type Config struct {
	ServerPort         string        `koanf:"server_port"`
	MySQLDSN           string        `koanf:"mysql_dsn"`
	RedisAddr          string        `koanf:"redis_addr"`
	RedisDB            int           `koanf:"redis_db"`
	RedisPass          string        `koanf:"redis_password"`
	AccessTokenSecret  string        `koanf:"access_token_secret"`
	RefreshTokenSecret string        `koanf:"refresh_token_secret"`
	RefreshTokenTTL    time.Duration `koanf:"refresh_token_ttl"`
	BcryptCost         int           `koanf:"bcrypt_cost"`
	LogLevel           string        `koanf:"log_level"`
	LogPretty          bool          `koanf:"log_pretty"`
	SwaggerHost        string        `koanf:"swagger_host"`
	ResetDB            bool          `koanf:"reset_db"`
}

// Default returns the configuration used when nothing overrides a key.
func Default() *Config {
	return &Config{
		ServerPort:      "8080",
		MySQLDSN:        "user:password@tcp(localhost:3306)/webshop?charset=utf8mb4&parseTime=True&loc=Local",
		RedisAddr:       "localhost:6379",
		RefreshTokenTTL: 7 * 24 * time.Hour,
		BcryptCost:      10,
		LogLevel:        "info",
	}
}

// Load builds Config from config.yaml (when present) and the environment.
// Environment variables win over file values, file values win over defaults.
func Load() (*Config, error) {
	return LoadFrom(".", "config")
}

// LoadFrom is Load with an explicit list of directories searched for config.yaml.
func LoadFrom(searchPaths ...string) (*Config, error) {
	k := koanf.New(".")

	if path, ok := findConfigFile(searchPaths); ok {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(key), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	return cfg, nil
}

func findConfigFile(searchPaths []string) (string, bool) {
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
