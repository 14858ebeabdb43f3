package config

import (
	"fmt"
	"strings"
	"time"
)

// Content sources.
const (
	SourceFS            = "fs"
	SourceS3            = "s3"
	SourceElasticsearch = "elasticsearch"
)

// Session backends.
const (
	SessionFile  = "file"
	SessionRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server        Server        `mapstructure:"server"`
	Content       Content       `mapstructure:"content"`
	Storage       Storage       `mapstructure:"storage"`
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	API           API           `mapstructure:"api"`
	Session       Session       `mapstructure:"session"`
	Importer      Importer      `mapstructure:"importer"`
	MCP           MCP           `mapstructure:"mcp"`
}

// Server holds HTTP server configuration.
type Server struct {
	Addr         string        `mapstructure:"addr"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	DocsPrefix   string        `mapstructure:"docs_prefix"`
	AllowReload  bool          `mapstructure:"allow_reload"`
	SiteName     string        `mapstructure:"site_name"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Content selects where documentation pages are loaded from.
type Content struct {
	Source string `mapstructure:"source"`
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// Storage holds S3/MinIO storage configuration.
type Storage struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Elasticsearch holds ES connection configuration.
type Elasticsearch struct {
	Addresses []string `mapstructure:"addresses"`
	Index     string   `mapstructure:"index"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// API holds community backend configuration.
type API struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Session holds login session persistence configuration.
type Session struct {
	Backend       string        `mapstructure:"backend"`
	Path          string        `mapstructure:"path"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisKey      string        `mapstructure:"redis_key"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// Importer holds docs site crawling configuration.
type Importer struct {
	Delay            time.Duration `mapstructure:"delay"`
	MaxDepth         int           `mapstructure:"max_depth"`
	FollowLinks      bool          `mapstructure:"follow_links"`
	Timeout          time.Duration `mapstructure:"timeout"`
	UserAgent        string        `mapstructure:"user_agent"`
	TryMarkdownFirst bool          `mapstructure:"try_markdown_first"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			CORSOrigins:  []string{"*"},
			DocsPrefix:   "/docs/",
			AllowReload:  false,
			SiteName:     "TeaLinuxOS Docs",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Content: Content{
			Source: SourceFS,
			Dir:    "./content",
			Prefix: "latest",
		},
		Storage: Storage{
			Endpoint:        "localhost:9002",
			Bucket:          "teasite",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			UseSSL:          false,
		},
		Elasticsearch: Elasticsearch{
			Addresses: []string{"http://localhost:9200"},
			Index:     "teasite-docs",
		},
		API: API{
			BaseURL: "http://localhost:8081",
			Timeout: 10 * time.Second,
		},
		Session: Session{
			Backend:  SessionFile,
			Path:     "", // resolved to the user config dir
			RedisKey: "teasite:session",
		},
		Importer: Importer{
			Delay:            1 * time.Second,
			MaxDepth:         3,
			FollowLinks:      true,
			Timeout:          30 * time.Second,
			UserAgent:        "teasite-importer/1.0",
			TryMarkdownFirst: true,
		},
		MCP: MCP{
			Name:    "teasite-docs",
			Version: "1.0.0",
		},
	}
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Content.Source {
	case SourceFS, SourceS3, SourceElasticsearch:
	default:
		return fmt.Errorf("unknown content source %q", c.Content.Source)
	}

	switch c.Session.Backend {
	case SessionFile, SessionRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	if !strings.HasPrefix(c.Server.DocsPrefix, "/") || !strings.HasSuffix(c.Server.DocsPrefix, "/") {
		return fmt.Errorf("docs prefix %q must start and end with /", c.Server.DocsPrefix)
	}
	return nil
}
