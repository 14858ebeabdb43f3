package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tealinux/teasite/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
	cfgErr  error
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "teasite",
	Short: "teasite: TeaLinuxOS documentation site and community CLI",
	Long: `teasite serves the TeaLinuxOS documentation with full-text search,
publishes documentation snapshots to S3 and Elasticsearch, imports pages
from existing docs sites, and talks to the community forum backend.

Commands:
  serve      Start the documentation HTTP server
  search     Search the documentation
  doc, nav   Read a page or list the sidebar
  mcp        Start the MCP server for AI assistants
  publish    Upload a documentation snapshot
  mirror     Index a snapshot into Elasticsearch
  import     Import pages from a docs website
  login      Sign in to the community backend
  forum      Browse and post to the forum
  downloads  Track and inspect ISO downloads`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfgErr
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// envKeys are the config keys overridable as TEASITE_<SECTION>_<KEY>.
var envKeys = []string{
	"server.addr",
	"server.cors_origins",
	"server.docs_prefix",
	"server.allow_reload",
	"server.site_name",
	"content.source",
	"content.dir",
	"content.prefix",
	"storage.endpoint",
	"storage.bucket",
	"storage.access_key_id",
	"storage.secret_access_key",
	"storage.use_ssl",
	"elasticsearch.addresses",
	"elasticsearch.index",
	"elasticsearch.username",
	"elasticsearch.password",
	"api.base_url",
	"api.timeout",
	"session.backend",
	"session.path",
	"session.redis_addr",
	"session.redis_password",
	"session.redis_db",
	"session.redis_key",
	"session.ttl",
	"importer.delay",
	"importer.max_depth",
	"importer.user_agent",
	"mcp.name",
	"mcp.version",
}

func initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	// Start with defaults
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/teasite")
		viper.AddConfigPath(".")
	}

	// TEASITE_CONTENT_SOURCE -> content.source
	viper.SetEnvPrefix("TEASITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for _, key := range envKeys {
		envVar := "TEASITE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		viper.BindEnv(key, envVar)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: config file error: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		cfgErr = fmt.Errorf("failed to parse config: %w", err)
		return
	}

	// Lists arrive from the environment as comma-separated strings.
	if addrs := os.Getenv("TEASITE_ELASTICSEARCH_ADDRESSES"); addrs != "" {
		cfg.Elasticsearch.Addresses = strings.Split(addrs, ",")
	}
	if origins := os.Getenv("TEASITE_SERVER_CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}

	if err := cfg.Validate(); err != nil {
		cfgErr = fmt.Errorf("invalid config: %w", err)
	}
}
