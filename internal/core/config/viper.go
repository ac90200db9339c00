package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"output-format": "output.format",
	"indent":        "output.indent",
	"cache-size":    "fields.cache_size",
	"keep-lists":    "flatten.keep_lists",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
// Only flags the user actually set take part; flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("output.format", def.OutputFormat)
	v.SetDefault("output.indent", def.OutputIndent)
	v.SetDefault("fields.cache_size", def.FieldsCacheSize)
	v.SetDefault("flatten.keep_lists", def.KeepLists)
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("log.format", def.LogFormat)

	// Bind environment variables with SLV_ prefix
	v.SetEnvPrefix("SLV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		OutputFormat:    strings.ToLower(v.GetString("output.format")),
		OutputIndent:    v.GetInt("output.indent"),
		FieldsCacheSize: v.GetInt("fields.cache_size"),
		KeepLists:       v.GetBool("flatten.keep_lists"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
		LogFormat:       strings.ToLower(v.GetString("log.format")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
