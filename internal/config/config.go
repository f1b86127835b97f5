// Package config loads wallflower settings from defaults, an optional
// YAML file and WALLFLOWER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/teslashibe/go-wallflower/internal/log"
	"github.com/teslashibe/go-wallflower/pkg/audioio"
	"github.com/teslashibe/go-wallflower/pkg/behavior"
	"github.com/teslashibe/go-wallflower/pkg/face"
)

const (
	EnvPrefix       = "WALLFLOWER"
	DefaultFile     = "~/.wallflower.yaml"
	DefaultHost     = "127.0.0.1"
	DefaultWebPort  = 8080
	DefaultFPS      = 60
	DefaultLogLevel = "info"
)

// Web holds the browser host settings.
type Web struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

// Addr returns host:port.
func (w Web) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

// Config is the full application configuration.
type Config struct {
	Behavior behavior.Config `mapstructure:"behavior" json:"behavior"`
	Audio    audioio.Config  `mapstructure:"audio" json:"audio"`
	Face     face.Config     `mapstructure:"face" json:"face"`
	Web      Web             `mapstructure:"web" json:"web"`
	Log      log.Options     `mapstructure:"log" json:"log"`
	FPS      int             `mapstructure:"fps" json:"fps"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Behavior: behavior.DefaultConfig(),
		Audio:    audioio.DefaultConfig(),
		Face:     face.DefaultConfig(),
		Web:      Web{Host: DefaultHost, Port: Port(DefaultWebPort)},
		Log:      log.Options{Level: DefaultLogLevel},
		FPS:      DefaultFPS,
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Behavior.Validate(); err != nil {
		return err
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := c.Face.Validate(); err != nil {
		return err
	}
	if c.FPS < 1 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web port out of range: %d", c.Web.Port)
	}
	return nil
}

// New returns a viper instance with defaults and env binding applied.
func New() (*viper.Viper, error) {
	v := viper.New()
	if err := SetDefaults(v, Default()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// SetDefaults registers every leaf of def as a viper default, so each key
// can be overridden from the environment.
func SetDefaults(v *viper.Viper, def Config) error {
	data, err := jsoniter.Marshal(def)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	var tree map[string]any
	if err := jsoniter.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("decode defaults: %w", err)
	}
	setLeaves(v, "", tree)
	return nil
}

func setLeaves(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setLeaves(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// Load reads path, or DefaultFile when path is empty. A missing default
// file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v, err := New()
	if err != nil {
		return Config{}, err
	}
	if err := ReadFile(v, path); err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// ReadFile merges the YAML file at path into v.
func ReadFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand config path: %w", err)
	}

	if _, err := os.Stat(expanded); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("config file not found: %s", expanded)
		}
		return nil
	}

	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Decode unmarshals and validates v.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Port returns the PORT env var as an int, or def.
func Port(def int) int {
	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	return def
}
