package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formpreview/pkg/typeset"
)

// EnvPrefix prefixes every environment override (FORMPREVIEW_LOG_LEVEL).
const EnvPrefix = "formpreview"

// Settings is the typed view of a loaded configuration.
type Settings struct {
	QuietInterval time.Duration
	Delimiters    typeset.Config
	Output        string
	Title         string
	MathJaxURL    string
	RawHTML       bool
	LogLevel      string
	LogDev        bool
	FormsDir      string
	RangeMin      float64
	RangeMax      float64
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env. When
// file is empty the standard locations are searched and a missing file is
// not an error; an explicit file must exist.
func Load(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// DefaultConfigDir resolves $XDG_CONFIG_HOME/formpreview or
// ~/.config/formpreview.
func DefaultConfigDir() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "formpreview")
}

// DefaultConfigPath is the config file written by "config init".
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// FromViper validates v and returns the typed settings.
func FromViper(v *viper.Viper) (Settings, error) {
	if err := CheckConfigValidity(v); err != nil {
		return Settings{}, err
	}
	s := Settings{
		QuietInterval: v.GetDuration(KeyQuietInterval),
		Delimiters: typeset.Config{
			Open:  v.GetString(KeyOpen),
			Close: v.GetString(KeyClose),
		}.Normalize(),
		Output:     v.GetString(KeyOutput),
		Title:      v.GetString(KeyTitle),
		MathJaxURL: v.GetString(KeyMathJaxURL),
		RawHTML:    v.GetBool(KeyRawHTML),
		LogLevel:   strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogDev:     v.GetBool(KeyLogDev),
		FormsDir:   expandHome(v.GetString(KeyFormsDir)),
		RangeMin:   v.GetFloat64(KeyRangeMin),
		RangeMax:   v.GetFloat64(KeyRangeMax),
	}
	return s, nil
}

// CheckConfigValidity reports every invalid value at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	if raw := strings.TrimSpace(v.GetString(KeyQuietInterval)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s is not a duration: %q", KeyQuietInterval, raw))
		} else if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be greater than 0", KeyQuietInterval))
		}
	}
	if strings.TrimSpace(v.GetString(KeyOpen)) == "" {
		problems = append(problems, KeyOpen+" is required")
	}
	if strings.TrimSpace(v.GetString(KeyClose)) == "" {
		problems = append(problems, KeyClose+" is required")
	}
	switch strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("%s must be one of debug, info, warn, error", KeyLogLevel))
	}
	if v.GetFloat64(KeyRangeMin) > v.GetFloat64(KeyRangeMax) {
		problems = append(problems, fmt.Sprintf("%s must not exceed %s", KeyRangeMin, KeyRangeMax))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("config: %s", strings.Join(problems, "; "))
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
