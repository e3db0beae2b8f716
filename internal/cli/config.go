package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formkit/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

// Config is the CLI configuration read from formkit.yaml and FORMKIT_*
// environment variables.
type Config struct {
	Defs         string      `mapstructure:"defs"`
	Orphans      string      `mapstructure:"orphans"`
	Namespaces   []string    `mapstructure:"namespaces"`
	Filter       string      `mapstructure:"filter"`
	AutoFieldset *bool       `mapstructure:"auto_fieldset"`
	LogLevel     string      `mapstructure:"log_level"`
	LogFormat    string      `mapstructure:"log_format"`
	Theme        ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig selects the CSS classes put on rendered markup.
type ThemeConfig struct {
	Name    string        `mapstructure:"name"`
	Variant string        `mapstructure:"variant"`
	Classes ClassesConfig `mapstructure:"classes"`
}

// ClassesConfig mirrors widgets.Classes.
type ClassesConfig struct {
	Form  string `mapstructure:"form"`
	Field string `mapstructure:"field"`
	Label string `mapstructure:"label"`
	Error string `mapstructure:"error"`
	Help  string `mapstructure:"help"`
}

// Selection returns the theme selection described by the config, or nil when
// no class is configured.
func (t ThemeConfig) Selection() *theme.Selection {
	tokens := make(map[string]string)
	for key, value := range map[string]string{
		widgets.TokenFormClass:  t.Classes.Form,
		widgets.TokenFieldClass: t.Classes.Field,
		widgets.TokenLabelClass: t.Classes.Label,
		widgets.TokenErrorClass: t.Classes.Error,
		widgets.TokenHelpClass:  t.Classes.Help,
	} {
		if value = strings.TrimSpace(value); value != "" {
			tokens[key] = value
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	name := t.Name
	if name == "" {
		name = "formkit"
	}
	return &theme.Selection{
		Theme:   name,
		Variant: t.Variant,
		Manifest: &theme.Manifest{
			Name:   name,
			Tokens: tokens,
		},
	}
}

// LoadConfig reads the config file at path, or formkit.yaml in the working
// directory when path is empty. A missing default file is not an error.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetDefault("orphans", "drop")
	v.SetDefault("filter", "escape")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("FORMKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
