package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. IRRADIANCE_LED_COUNT.
const EnvPrefix = "IRRADIANCE"

// PresetSetting declares an extra preset in the config file.
type PresetSetting struct {
	Name      string    `mapstructure:"name"`
	Label     string    `mapstructure:"label"`
	Intensity float64   `mapstructure:"intensity"`
	Angles    []float64 `mapstructure:"angles"`
	Factors   []float64 `mapstructure:"factors"`
}

// LEDSettings are the initial emitter parameters. Zero Intensity means "use
// the preset default".
type LEDSettings struct {
	Type      string  `mapstructure:"type"`
	Count     int     `mapstructure:"count"`
	Intensity float64 `mapstructure:"intensity"`
}

// AttenuationSettings are the initial attenuation inputs.
type AttenuationSettings struct {
	Environment float64 `mapstructure:"environment"`
	Windshield  float64 `mapstructure:"windshield"`
}

// ServeSettings configure the HTTP view.
type ServeSettings struct {
	Addr string `mapstructure:"addr"`
}

// Settings is the decoded configuration.
type Settings struct {
	LogLevel    string              `mapstructure:"logLevel"`
	LogFile     string              `mapstructure:"logFile"`
	LED         LEDSettings         `mapstructure:"led"`
	Attenuation AttenuationSettings `mapstructure:"attenuation"`
	Serve       ServeSettings       `mapstructure:"serve"`
	Presets     []PresetSetting     `mapstructure:"presets"`
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("led.type", DefaultType)
	v.SetDefault("led.count", DefaultCount)
	v.SetDefault("led.intensity", 0)

	v.SetDefault("attenuation.environment", DefaultEnvironmentInput)
	v.SetDefault("attenuation.windshield", DefaultWindshieldInput)

	v.SetDefault("serve.addr", DefaultAddr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes it. With an empty path the
// optional irradiance.{yaml,json,toml} is searched in the working directory
// and the user config directory; a missing file is not an error.
func Load(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("irradiance")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "irradiance-map"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}
