package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. LUMEN_OUTPUTDIR.
const EnvPrefix = "LUMEN"

// Config drives the generator itself. The blog's own metadata lives in Site.
type Config struct {
	OutputDir  string    `mapstructure:"outputDir"`
	ContentDir string    `mapstructure:"contentDir"`
	LayoutsDir string    `mapstructure:"layoutsDir"`
	StaticDir  string    `mapstructure:"staticDir"`
	SiteConfig string    `mapstructure:"siteConfig"`
	BaseURL    string    `mapstructure:"baseURL"`
	Drafts     bool      `mapstructure:"drafts"`
	ScrollNav  ScrollNav `mapstructure:"scrollnav"`
}

// ScrollNav points at prebuilt browser assets for the scroll navigation
// handler. Both must be set for the pages to load it.
type ScrollNav struct {
	WASM     string `mapstructure:"wasm"`
	WASMExec string `mapstructure:"wasmExec"`
}

// Enabled reports whether both assets are configured.
func (s ScrollNav) Enabled() bool {
	return s.WASM != "" && s.WASMExec != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("outputDir", "public")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("siteConfig", "site.yaml")
	v.SetDefault("baseURL", "")
	v.SetDefault("drafts", false)
	v.SetDefault("scrollnav.wasm", "")
	v.SetDefault("scrollnav.wasmExec", "")
}

// Default returns the tool configuration with no file or environment applied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults alone always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads the tool configuration. An empty cfgFile looks for
// ./lumen.yaml and silently falls back to defaults and environment when
// there is none; an explicit cfgFile must exist.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("lumen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			log.Debug().Msg("no lumen.yaml found, using defaults and environment")
		} else {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Info().Str("path", v.ConfigFileUsed()).Msg("using config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if cfg.OutputDir == "" {
		return Config{}, fmt.Errorf("outputDir must not be empty")
	}
	return cfg, nil
}
