package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"index-manager/core/database"
	"index-manager/core/index"
	"index-manager/core/logger"
	"index-manager/core/server"
	"index-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the index manager configuration, one section per package.
type Config struct {
	// Server is the HTTP API started by the start command.
	Server server.Config `mapstructure:"server"`
	// Storage is the optional run report archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log configures the zap logger.
	Log logger.Config `mapstructure:"log"`
	// Database is the PostgreSQL connection whose indexes are reconciled.
	Database database.Config `mapstructure:"database"`
	// Index holds the reconciliation settings and the manifest path.
	Index index.Config `mapstructure:"index"`
}

// LoadConfig reads the configuration from the environment. A .env file in dir is
// loaded first and overrides variables already set.
func LoadConfig(dir string) (*Config, error) {
	envPath := filepath.Join(dir, ".env")

	// Deployments without a .env file set the environment directly.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	setDefaults(v, Config{}, "")

	// INDEX_CONTINUE_ON_ERROR -> index.continue_on_error
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every mapstructure key of section under prefix with the
// value of its default tag. AutomaticEnv only resolves keys viper already knows,
// so keys without a default are registered with an empty value.
func setDefaults(v *viper.Viper, section any, prefix string) {
	t := reflect.TypeOf(section)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			setDefaults(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
