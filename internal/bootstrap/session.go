package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/mmk-usersession/config"
	"github.com/target/mmk-usersession/internal/adapters/authroles"
	"github.com/target/mmk-usersession/internal/adapters/restapi"
	"github.com/target/mmk-usersession/internal/observability/statsd"
	"github.com/target/mmk-usersession/internal/service"
)

// NewMetrics builds the StatsD client described by cfg. A disabled config
// yields a client that drops everything.
func NewMetrics(cfg config.AppConfig, logger *slog.Logger) (*statsd.Client, error) {
	m := cfg.Observability.Metrics
	client, err := statsd.NewClient(statsd.Config{
		Enabled: m.IsEnabled(),
		Address: m.StatsdAddress,
		Prefix:  m.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}
	return client, nil
}

// NewUserSession wires the REST client, the role table and metrics into a
// UserSession.
func NewUserSession(cfg config.AppConfig, metrics statsd.Sink, logger *slog.Logger) (*service.UserSession, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = statsd.Nop{}
	}

	client, err := restapi.NewClient(restapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Token:     cfg.API.Token,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Metrics:   metrics,
		Logger:    logger.With("component", "restapi"),
	})
	if err != nil {
		return nil, fmt.Errorf("create users api client: %w", err)
	}

	sess, err := service.NewUserSession(service.UserSessionOptions{
		API:     client,
		Roles:   authroles.NewStaticRoleMapper(cfg.Roles.RoleIDs()),
		Metrics: metrics,
		Logger:  logger.With("component", "usersession"),
	})
	if err != nil {
		return nil, fmt.Errorf("create user session: %w", err)
	}
	return sess, nil
}
