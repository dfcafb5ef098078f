package waypoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, []string{"myapp"}, cfg.Router.Schemes)
	require.Equal(t, []string{"shop.example.com"}, cfg.Router.UniversalLinkDomains)
	require.Equal(t, "en", cfg.Locale.Language)
	require.Equal(t, ":8080", cfg.Server.Address)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[router]
schemes = [" MyApp ", "shop", ""]
universal_link_domains = ["Shop.Example.com", "m.example.com"]

[log]
level = "debug"

[catalog]
path = "products.yaml"

[locale]
language = "es"

[server]
address = "127.0.0.1:9000"
app_ids = ["ABCDE12345.com.example.shop"]
`))
	require.NoError(t, err)
	require.Equal(t, []string{"myapp", "shop"}, cfg.Router.Schemes)
	require.Equal(t, []string{"shop.example.com", "m.example.com"}, cfg.Router.UniversalLinkDomains)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "products.yaml", cfg.Catalog.Path)
	require.Equal(t, "es", cfg.Locale.Language)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	require.Equal(t, []string{"ABCDE12345.com.example.shop"}, cfg.Server.AppIDs)
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("[log]\nlevel = \"warn\"\n"))
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, []string{"myapp"}, cfg.Router.Schemes)
	require.Equal(t, "en", cfg.Locale.Language)
}

func TestParseConfigErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":     "[router\nschemes = 1",
		"no schemes": "[router]\nschemes = []",
		"url scheme": "[router]\nschemes = [\"myapp://\"]",
		"bad domain": "[router]\nuniversal_link_domains = [\"https://shop.example.com\"]",
		"bad locale": "[locale]\nlanguage = \"not a tag\"",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data))
			require.Error(t, err)
			require.True(t, IsInfrastructureError(err))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waypoint.toml")
	require.NoError(t, os.WriteFile(path, []byte("[router]\nschemes = [\"shop\"]\n"), 0644))

	t.Setenv(constants.LogLevelEnvVar, "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"shop"}, cfg.Router.Schemes)
	require.Equal(t, "info", cfg.Log.Level)

	t.Setenv(constants.LogLevelEnvVar, "error")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Log.Level)

	t.Setenv(constants.ConfigPathEnvVar, path)
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, []string{"shop"}, cfg.Router.Schemes)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	require.True(t, IsInfrastructureError(err))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "waypoint.toml")

	require.NoError(t, WriteDefaultConfig(path))
	require.Error(t, WriteDefaultConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	require.Equal(t, def.Router, cfg.Router)
	require.Equal(t, def.Locale, cfg.Locale)
	require.Equal(t, def.Server.Address, cfg.Server.Address)
	require.Empty(t, cfg.Server.AppIDs)
}
