package cli

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// Setting keys shared by flags, environment variables and the config file.
// SEATPLAN_PAGE_SIZE overrides page-size, and so on.
const (
	keyPageSize = "page-size"
	keyMargin   = "margin"
	keySource   = "source"
	keyCacheDir = "cache-dir"
	keyRedis    = "redis"
	keyNoCache  = "no-cache"
	keyMemory   = "memory-cache"
	keyAddr     = "addr"
	keyTimeout  = "timeout"
)

// viperForCmd binds a command's flags and environment to a fresh viper
// instance and reads the optional seatplan.{toml,yaml,json} config file.
// Precedence is flag, then environment, then config file, then flag default.
func viperForCmd(cmd *cobra.Command, logger *log.Logger) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(appName)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/" + appName)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warn("Error reading config file", "err", err)
		}
	} else {
		logger.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// addPageFlags registers the page layout flags shared by document commands.
func addPageFlags(fs *pflag.FlagSet) {
	fs.String(keyPageSize, pipeline.DefaultPageSize, "page size: A4, Letter")
	fs.Float64(keyMargin, 0, "page margin in points (default 40)")
	fs.String(keySource, pipeline.DefaultSource, "source name printed in page footers")
}

// addCacheFlags registers the artifact cache flags.
func addCacheFlags(fs *pflag.FlagSet) {
	fs.Bool(keyNoCache, false, "disable the artifact cache")
	fs.String(keyRedis, "", "redis URL for a shared artifact cache (e.g. redis://localhost:6379/0)")
	fs.String(keyCacheDir, "", "file cache directory (default ~/.cache/seatplan)")
}

// pageOptions reads the page layout settings into pipeline options.
func pageOptions(v *viper.Viper) pipeline.Options {
	return pipeline.Options{
		PageSize: v.GetString(keyPageSize),
		Margin:   v.GetFloat64(keyMargin),
		Source:   v.GetString(keySource),
	}
}

// cacheSettingsFrom reads the cache settings.
func cacheSettingsFrom(v *viper.Viper) cacheSettings {
	return cacheSettings{
		noCache:  v.GetBool(keyNoCache),
		memory:   v.GetBool(keyMemory),
		redisURL: v.GetString(keyRedis),
		dir:      v.GetString(keyCacheDir),
	}
}
