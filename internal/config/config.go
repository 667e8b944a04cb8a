// Package config loads scrolltoolbar settings from an optional TOML
// file and SCROLLTOOLBAR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Toolbar  ToolbarConfig  `mapstructure:"toolbar"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// ToolbarConfig mirrors the toolbar's configuration properties.
type ToolbarConfig struct {
	SelectionEnabled    bool         `mapstructure:"selection_enabled"`
	ItemExchangeEnabled bool         `mapstructure:"item_exchange_enabled"`
	DismissOnSubitemTap bool         `mapstructure:"dismiss_on_subitem_tap"`
	BlurEnabled         bool         `mapstructure:"blur_enabled"`
	Style               string       `mapstructure:"style"`
	Custom              CustomConfig `mapstructure:"custom"`
	Items               []ItemConfig `mapstructure:"items"`
}

// CustomConfig holds the colors of the custom style as "#rrggbb[aa]".
type CustomConfig struct {
	Background     string `mapstructure:"background"`
	Blur           string `mapstructure:"blur"`
	Tint           string `mapstructure:"tint"`
	UnselectedTint string `mapstructure:"unselected_tint"`
	Indicator      string `mapstructure:"indicator"`
}

// ItemConfig describes one item and its subitems.
type ItemConfig struct {
	ID           string       `mapstructure:"id"`
	Icon         string       `mapstructure:"icon"`
	Title        string       `mapstructure:"title"`
	Tint         string       `mapstructure:"tint"`
	Exchangeable *bool        `mapstructure:"exchangeable"`
	Subitems     []ItemConfig `mapstructure:"subitems"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds log file settings. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Dir is the per-user data directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scrolltoolbar")
}

// Load reads configuration from file and env. Env var overrides use
// prefix SCROLLTOOLBAR_. A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("toolbar.selection_enabled", true)
	v.SetDefault("toolbar.item_exchange_enabled", true)
	v.SetDefault("toolbar.dismiss_on_subitem_tap", true)
	v.SetDefault("toolbar.blur_enabled", true)
	v.SetDefault("toolbar.style", "dark")
	v.SetDefault("database.path", filepath.Join(Dir(), "journal.db"))
	v.SetDefault("log.path", filepath.Join(Dir(), "scrolltoolbar.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("SCROLLTOOLBAR_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "scrolltoolbar"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SCROLLTOOLBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ParseStyle turns the configured style name into a toolbar style.
func (c ToolbarConfig) ParseStyle() (toolbar.Style, error) {
	switch strings.ToLower(strings.TrimSpace(c.Style)) {
	case "", "light":
		return toolbar.LightStyle, nil
	case "dark":
		return toolbar.DarkStyle, nil
	case "custom":
		return c.Custom.style()
	default:
		return toolbar.Style{}, fmt.Errorf("unknown style %q (want light, dark or custom)", c.Style)
	}
}

func (c CustomConfig) style() (toolbar.Style, error) {
	var s toolbar.CustomStyle
	colors := []struct {
		name string
		raw  string
		dst  *toolbar.Color
	}{
		{"background", c.Background, &s.BackgroundColor},
		{"tint", c.Tint, &s.TintColor},
		{"unselected_tint", c.UnselectedTint, &s.UnselectedTintColor},
		{"indicator", c.Indicator, &s.SelectionIndicator},
	}
	for _, col := range colors {
		parsed, err := toolbar.ParseColor(col.raw)
		if err != nil {
			return toolbar.Style{}, fmt.Errorf("custom style %s: %w", col.name, err)
		}
		*col.dst = parsed
	}
	switch strings.ToLower(c.Blur) {
	case "", "light":
		s.BlurEffect = toolbar.BlurLight
	case "dark":
		s.BlurEffect = toolbar.BlurDark
	case "extra-light", "extralight":
		s.BlurEffect = toolbar.BlurExtraLight
	default:
		return toolbar.Style{}, fmt.Errorf("custom style blur %q", c.Blur)
	}
	return toolbar.NewCustomStyle(s), nil
}

// BuildItems converts the configured items, falling back to the demo
// layout when none are configured.
func (c ToolbarConfig) BuildItems() ([]toolbar.ActionItem, error) {
	if len(c.Items) == 0 {
		return DemoItems(), nil
	}
	items := make([]toolbar.ActionItem, 0, len(c.Items))
	for i, ic := range c.Items {
		it, err := ic.item()
		if err != nil {
			return nil, fmt.Errorf("toolbar item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (ic ItemConfig) item() (toolbar.ActionItem, error) {
	if ic.ID == "" {
		return toolbar.ActionItem{}, errors.New("missing id")
	}
	icon := ic.Icon
	if icon == "" {
		icon = "•"
	}
	opts := []toolbar.ItemOption{toolbar.WithTitle(ic.Title)}
	if ic.Exchangeable != nil {
		opts = append(opts, toolbar.Exchangeable(*ic.Exchangeable))
	}
	if ic.Tint != "" {
		tint, err := toolbar.ParseColor(ic.Tint)
		if err != nil {
			return toolbar.ActionItem{}, fmt.Errorf("item %q: %w", ic.ID, err)
		}
		opts = append(opts, toolbar.WithTint(tint))
	}
	it := toolbar.NewItem(ic.ID, icon, opts...)
	for _, sc := range ic.Subitems {
		sub, err := sc.item()
		if err != nil {
			return toolbar.ActionItem{}, fmt.Errorf("subitem of %q: %w", ic.ID, err)
		}
		it.SubItems = append(it.SubItems, sub)
	}
	return it, nil
}

// Options converts the flags into toolbar options.
func (c ToolbarConfig) Options() ([]toolbar.Option, error) {
	style, err := c.ParseStyle()
	if err != nil {
		return nil, err
	}
	return []toolbar.Option{
		toolbar.WithSelectionEnabled(c.SelectionEnabled),
		toolbar.WithItemExchange(c.ItemExchangeEnabled),
		toolbar.WithDismissOnSubitemTap(c.DismissOnSubitemTap),
		toolbar.WithBlurEffect(c.BlurEnabled),
		toolbar.WithStyle(style),
	}, nil
}
