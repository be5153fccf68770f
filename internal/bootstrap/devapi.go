package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-usersession/config"
	"github.com/target/mmk-usersession/internal/adapters/memstore"
	redisstore "github.com/target/mmk-usersession/internal/adapters/redis"
	"github.com/target/mmk-usersession/internal/devseed"
	httpx "github.com/target/mmk-usersession/internal/http"
	"github.com/target/mmk-usersession/internal/ports"
	"github.com/target/mmk-usersession/internal/service"
)

const devAPIReadHeaderTimeout = 5 * time.Second

// DevAPI is the assembled development users API.
type DevAPI struct {
	Server *http.Server
	Tokens httpx.TokenTable
	Seeded []devseed.User
}

// DevAPIOptions groups dependencies for NewDevAPI.
type DevAPIOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Redis is required when Config.DevAPI.Store is redis.
	Redis redis.UniversalClient
}

// NewDevAPI builds the profile store, seeds it when configured, and returns an
// http.Server ready to ListenAndServe.
func NewDevAPI(ctx context.Context, opts DevAPIOptions) (*DevAPI, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.DevAPI.Validate(); err != nil {
		return nil, err
	}

	store, err := newProfileStore(cfg.DevAPI, opts.Redis)
	if err != nil {
		return nil, err
	}
	svc, err := service.NewProfileService(service.ProfileServiceOptions{
		Store:  store,
		Logger: logger.With("component", "profiles"),
	})
	if err != nil {
		return nil, fmt.Errorf("create profile service: %w", err)
	}

	api := &DevAPI{Tokens: httpx.TokenTable{}}
	for k, v := range cfg.DevAPI.Tokens {
		api.Tokens[k] = v
	}

	if cfg.DevAPI.Seed {
		api.Seeded, err = devseed.Seed(ctx, svc, cfg.Roles.RoleIDs(), logger)
		if err != nil {
			return nil, err
		}
		// Without configured tokens every seeded user gets a fresh one.
		if len(api.Tokens) == 0 {
			for _, u := range api.Seeded {
				token := uuid.NewString()
				api.Tokens[token] = u.ID
				logger.InfoContext(ctx, "issued development token", "user", u.Key, "token", token)
			}
		}
	}

	api.Server = &http.Server{
		Addr: cfg.DevAPI.Addr,
		Handler: httpx.NewRouter(httpx.RouterServices{
			Profiles:    svc,
			Tokens:      api.Tokens,
			ShareRoleID: cfg.DevAPI.ShareRoleID,
			Logger:      logger,
		}),
		ReadHeaderTimeout: devAPIReadHeaderTimeout,
	}
	return api, nil
}

//nolint:ireturn // store selection happens at runtime.
func newProfileStore(cfg config.DevAPIConfig, client redis.UniversalClient) (ports.ProfileStore, error) {
	switch cfg.Store {
	case config.DevStoreRedis:
		if client == nil {
			return nil, errors.New("redis client is required for the redis profile store")
		}
		if cfg.KeyPrefix != "" {
			return redisstore.NewProfileStoreWithPrefix(client, cfg.KeyPrefix), nil
		}
		return redisstore.NewProfileStore(client), nil
	case config.DevStoreMemory:
		return memstore.NewProfileStore(), nil
	default:
		return nil, fmt.Errorf("unsupported profile store %q", cfg.Store)
	}
}
