// Package config resolves command options from flags, DKY_WEB_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix     = "DKY_WEB"
	configFileEnv = "DKY_WEB_CONFIG"
)

// Options are the settings shared by the serve, build and check commands.
type Options struct {
	Addr         string
	Dev          bool
	LogLevel     string
	SiteConfig   string
	ContentDir   string
	TemplatesDir string
	PublicDir    string
	CMSURL       string
	PublicURL    string
	Out          string
	Workers      int
}

// NewOptions returns defaults; the listen port follows $PORT when set.
func NewOptions() *Options {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return &Options{
		Addr:     ":" + port,
		LogLevel: "info",
		Out:      "build",
		Workers:  8,
	}
}

// BindFlags registers the persistent flags.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "addr", o.Addr, "HTTP listen address")
	fs.BoolVar(&o.Dev, "dev", o.Dev, "Development mode: read templates, assets and content from disk and reload on change")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&o.SiteConfig, "site-config", o.SiteConfig, "YAML file overriding the embedded site configuration")
	fs.StringVar(&o.ContentDir, "content-dir", o.ContentDir, "Directory with docs/ and legal/ markdown (default: embedded)")
	fs.StringVar(&o.TemplatesDir, "templates-dir", o.TemplatesDir, "Templates directory (default: embedded)")
	fs.StringVar(&o.PublicDir, "public-dir", o.PublicDir, "Static assets directory (default: embedded)")
	fs.StringVar(&o.CMSURL, "cms-url", o.CMSURL, "Base URL of a remote CMS serving /content/{kind}/{slug}")
	fs.StringVar(&o.PublicURL, "public-url", o.PublicURL, "Public site URL used for canonical links (overrides site config url)")
	fs.StringVar(&o.Out, "out", o.Out, "Output directory of the static build")
	fs.IntVar(&o.Workers, "workers", o.Workers, "Concurrent page renders during the static build")
}

// ApplyDevDefaults points unset source directories at the working tree.
func (o *Options) ApplyDevDefaults() {
	if !o.Dev {
		return
	}
	if o.TemplatesDir == "" {
		o.TemplatesDir = "templates"
	}
	if o.PublicDir == "" {
		o.PublicDir = "public"
	}
	if o.ContentDir == "" {
		o.ContentDir = "content"
	}
}

// Validate checks option values that flags cannot.
func (o *Options) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	for name, raw := range map[string]string{"cms-url": o.CMSURL, "public-url": o.PublicURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", o.Workers))
	}
	return errors.Join(errs...)
}

// NewViper returns a viper instance reading DKY_WEB_* variables and the config
// file named by DKY_WEB_CONFIG, or config.yaml in the search directories.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	configureConfigFile(v, os.Getenv(configFileEnv))
	return v
}

// Apply fills every flag the user did not set from v. A missing config file is
// only an error when DKY_WEB_CONFIG names it explicitly.
func Apply(v *viper.Viper, flagSets ...*pflag.FlagSet) error {
	for _, fs := range flagSets {
		if err := v.BindPFlags(fs); err != nil {
			return err
		}
	}
	if err := readConfigFile(v, os.Getenv(configFileEnv) != ""); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var errs []error
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed || !v.IsSet(f.Name) {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if val == "" {
				return
			}
			if err := f.Value.Set(val); err != nil {
				errs = append(errs, fmt.Errorf("config: %s: %w", f.Name, err))
			}
		})
	}
	return errors.Join(errs...)
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "dky-web"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "dky-web"))
	}
	return dirs
}
