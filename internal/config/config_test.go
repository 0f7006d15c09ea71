package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, o *Options, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("DKY_WEB_LOG_LEVEL", "debug")
	t.Setenv("DKY_WEB_CMS_URL", "https://cms.example.com")
	t.Setenv("DKY_WEB_ADDR", ":9999")

	o := NewOptions()
	fs := newFlags(t, o, "--addr", ":7000")
	require.NoError(t, Apply(NewViper(), fs))

	require.Equal(t, "debug", o.LogLevel)
	require.Equal(t, "https://cms.example.com", o.CMSURL)
	require.Equal(t, ":7000", o.Addr, "explicit flags win over the environment")
	require.NoError(t, o.Validate())
}

func TestApplyConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "web.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out: dist\nworkers: 2\ndev: true\n"), 0o600))
	t.Setenv("DKY_WEB_CONFIG", path)

	o := NewOptions()
	fs := newFlags(t, o)
	require.NoError(t, Apply(NewViper(), fs))
	require.Equal(t, "dist", o.Out)
	require.Equal(t, 2, o.Workers)
	require.True(t, o.Dev)

	o.ApplyDevDefaults()
	require.Equal(t, "templates", o.TemplatesDir)
	require.Equal(t, "content", o.ContentDir)
}

func TestApplyMissingExplicitConfigFails(t *testing.T) {
	t.Setenv("DKY_WEB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	o := NewOptions()
	require.Error(t, Apply(NewViper(), newFlags(t, o)))
}

func TestValidate(t *testing.T) {
	o := NewOptions()
	o.PublicURL = "not-a-url"
	o.Workers = 0
	err := o.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "public-url")
	require.Contains(t, err.Error(), "workers")
}
