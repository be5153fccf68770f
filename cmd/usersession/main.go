package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/target/mmk-usersession/config"
	"github.com/target/mmk-usersession/internal/bootstrap"
	"github.com/target/mmk-usersession/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			slog.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if runErr := run(ctx, cmd, cfg, logger, os.Args[2:]); runErr != nil {
		stop()
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
	stop()
}

func run(ctx context.Context, cmd command, cfg config.AppConfig, logger *slog.Logger, args []string) (err error) {
	metrics, err := bootstrap.NewMetrics(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close metrics: %w", cerr))
		}
	}()

	sess, err := bootstrap.NewUserSession(cfg, metrics, logger)
	if err != nil {
		return err
	}

	cmdCtx := &commandContext{
		Ctx:    service.WithSession(ctx, sess),
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
	}
	return cmd.run(cmdCtx, args)
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: usersession <command> [args]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
