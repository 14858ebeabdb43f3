package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/tealinux/teasite/internal/api"
	"github.com/tealinux/teasite/internal/config"
	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/elasticsearch"
	"github.com/tealinux/teasite/internal/search"
	"github.com/tealinux/teasite/internal/session"
	"github.com/tealinux/teasite/internal/storage"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newStorage(cfg config.Config) (*storage.Client, error) {
	client, err := storage.New(storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		UseSSL:          cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

func newElasticsearch(cfg config.Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.New(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Index:     cfg.Elasticsearch.Index,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}
	return client, nil
}

// newLoader builds the content loader for the configured source.
func newLoader(ctx context.Context, cfg config.Config) (content.Loader, error) {
	switch cfg.Content.Source {
	case config.SourceS3:
		objects, err := newStorage(cfg)
		if err != nil {
			return nil, err
		}
		prefix, err := objects.ResolvePrefix(ctx, cfg.Content.Prefix)
		if err != nil {
			return nil, err
		}
		slog.Debug("loading content from snapshot", "bucket", objects.Bucket(), "prefix", prefix)
		return content.NewS3Loader(objects, prefix), nil

	case config.SourceElasticsearch:
		index, err := newElasticsearch(cfg)
		if err != nil {
			return nil, err
		}
		slog.Debug("loading content from index", "index", index.Index())
		return content.NewIndexLoader(index), nil

	default:
		slog.Debug("loading content from directory", "dir", cfg.Content.Dir)
		return content.NewDirLoader(cfg.Content.Dir)
	}
}

// newContent returns a store and search engine over the configured source.
func newContent(ctx context.Context, cfg config.Config) (*content.Store, *search.Engine, error) {
	loader, err := newLoader(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store := content.NewStore(loader)
	engine := search.New(store, search.Config{URLPrefix: cfg.Server.DocsPrefix})
	return store, engine, nil
}

func newSessionStore(cfg config.Config) (session.Store, error) {
	if cfg.Session.Backend == config.SessionRedis {
		return session.NewRedisStore(session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
			Key:      cfg.Session.RedisKey,
			TTL:      cfg.Session.TTL,
		})
	}
	return session.NewFileStore(cfg.Session.Path)
}

// newBackend returns the API client and the loaded session.
func newBackend(ctx context.Context, cfg config.Config) (*api.Client, *session.Manager, error) {
	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}

	manager := session.NewManager(store)
	if err := manager.Init(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	return client, manager, nil
}

// authedClient returns an API client for the logged-in user, refreshing an
// expired access token first.
func authedClient(ctx context.Context, cfg config.Config) (*api.Client, error) {
	client, manager, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	current := manager.Current()
	if !current.Authenticated() {
		return nil, fmt.Errorf("not logged in, run 'teasite login' first")
	}
	if current.Expired(time.Now()) {
		slog.Debug("access token expired, refreshing")
		if _, err := manager.Refresh(ctx, client); err != nil {
			return nil, fmt.Errorf("session expired, run 'teasite login' again: %w", err)
		}
	}
	return manager.Client(client), nil
}
