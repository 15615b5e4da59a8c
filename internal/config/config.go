package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kdudkov/cortran/internal/oracle"
	"github.com/kdudkov/cortran/pkg/coord"
)

const EnvPrefix = "CORTRAN"

type AppConfig struct {
	v *viper.Viper
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{v: viper.New()}

	setDefaults(c.v)

	return c
}

// Load merges the first readable of the files, returns false when none was found.
func (c *AppConfig) Load(filename ...string) bool {
	for _, name := range filename {
		if name == "" {
			continue
		}

		c.v.SetConfigFile(name)

		if err := c.v.MergeInConfig(); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			return true
		}
	}

	return false
}

// LoadEnv makes PREFIX_KEY_SUB override key.sub.
func (c *AppConfig) LoadEnv(prefix string) {
	c.v.SetEnvPrefix(prefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()
}

// BindFlags makes the changed command line flags override config values. Flag names use "-"
// where config keys use "_" or ".".
func (c *AppConfig) BindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("no flag %s", flag)
		}

		if err := c.v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	return nil
}

func (c *AppConfig) Bool(key string) bool {
	return c.v.GetBool(key)
}

func (c *AppConfig) String(key string) string {
	return c.v.GetString(key)
}

func (c *AppConfig) Float64(key string) float64 {
	return c.v.GetFloat64(key)
}

func (c *AppConfig) Int(key string) int {
	return c.v.GetInt(key)
}

func (c *AppConfig) Duration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *AppConfig) Set(key string, v any) {
	c.v.Set(key, v)
}

func (c *AppConfig) Profile() (coord.Profile, error) {
	return coord.LookupProfile(c.v.GetString("profile"))
}

// Converter builds the conversion chain from profile, legacy_series and strict_region.
func (c *AppConfig) Converter() (*coord.Converter, error) {
	p, err := c.Profile()
	if err != nil {
		return nil, err
	}

	g := &coord.GaussKruger{Legacy: c.v.GetBool("legacy_series")}

	return coord.NewConverter(g, coord.NewShifter(p, c.v.GetBool("strict_region"))), nil
}

func (c *AppConfig) OracleOptions() oracle.Options {
	return oracle.Options{
		Kind:     c.v.GetString("oracle.kind"),
		URL:      c.v.GetString("oracle.url"),
		Timeout:  c.v.GetDuration("oracle.timeout"),
		Attempts: c.v.GetInt("oracle.retries"),
	}
}

func (c *AppConfig) DB() string {
	return c.v.GetString("db")
}

func (c *AppConfig) PointsFile() string {
	return c.v.GetString("points_file")
}

// KeepRuns is the number of stored validation runs, 0 keeps all.
func (c *AppConfig) KeepRuns() int {
	return c.v.GetInt("keep_runs")
}

func (c *AppConfig) ValidateHeight() float64 {
	return c.v.GetFloat64("validate.height")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", coord.DefaultProfile)
	v.SetDefault("legacy_series", false)
	v.SetDefault("strict_region", true)

	v.SetDefault("api_addr", ":8080")
	v.SetDefault("local_addr", "localhost:8088")
	v.SetDefault("db", "cortran.sqlite")
	v.SetDefault("points_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("keep_runs", 100)

	v.SetDefault("validate.height", 1000.0)

	v.SetDefault("oracle.kind", oracle.KindEngine)
	v.SetDefault("oracle.url", oracle.DefaultEpsgURL)
	v.SetDefault("oracle.timeout", time.Second*10)
	v.SetDefault("oracle.retries", 3)
}
