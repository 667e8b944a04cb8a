package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCROLLTOOLBAR_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Toolbar.SelectionEnabled)
	assert.True(t, cfg.Toolbar.ItemExchangeEnabled)
	assert.True(t, cfg.Toolbar.DismissOnSubitemTap)
	assert.Equal(t, "dark", cfg.Toolbar.Style)
	assert.Equal(t, filepath.Join(home, ".scrolltoolbar", "journal.db"), cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[toolbar]
selection_enabled = false
style = "custom"

[toolbar.custom]
background = "#101010"
tint = "#ffffff"
unselected_tint = "#808080"
indicator = "#1f6feb80"
blur = "dark"

[[toolbar.items]]
id = "share"
icon = "S"
title = "Share"

  [[toolbar.items.subitems]]
  id = "mail"
  exchangeable = false

[[toolbar.items]]
id = "camera"
tint = "#ff0000"
`), 0o644))
	t.Setenv("SCROLLTOOLBAR_CONFIG", path)
	t.Setenv("SCROLLTOOLBAR_DATABASE_PATH", "/tmp/x.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Toolbar.SelectionEnabled)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)

	style, err := cfg.Toolbar.ParseStyle()
	require.NoError(t, err)
	assert.Equal(t, toolbar.StyleCustom, style.Kind)
	assert.Equal(t, toolbar.BlurDark, style.Custom.BlurEffect)
	assert.Equal(t, uint8(0x80), style.Custom.SelectionIndicator.A)

	items, err := cfg.Toolbar.BuildItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Share", items[0].Title)
	require.Len(t, items[0].SubItems, 1)
	assert.False(t, items[0].SubItems[0].IsExchangeable)
	assert.Equal(t, "•", items[0].SubItems[0].Icon)
	require.NotNil(t, items[1].TintColor)
	assert.Equal(t, toolbar.RGB(255, 0, 0), *items[1].TintColor)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toolbar\n"), 0o644))
	t.Setenv("SCROLLTOOLBAR_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestParseStyleUnknown(t *testing.T) {
	_, err := ToolbarConfig{Style: "neon"}.ParseStyle()
	assert.Error(t, err)

	_, err = ToolbarConfig{Style: "custom", Custom: CustomConfig{Background: "nope"}}.ParseStyle()
	assert.Error(t, err)
}

func TestBuildItemsRequiresID(t *testing.T) {
	_, err := ToolbarConfig{Items: []ItemConfig{{Icon: "x"}}}.BuildItems()
	assert.Error(t, err)
}

func TestDemoItems(t *testing.T) {
	items := DemoItems()
	require.Len(t, items, 8)
	assert.False(t, items[0].IsExpandable())
	assert.Len(t, items[1].SubItems, 9)

	items[1].SubItems[0].Identifier = "changed"
	assert.Equal(t, "sub0", items[3].SubItems[0].Identifier)
}
