package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/applib/pkg/apiclient"
	"github.com/dmitrymomot/applib/pkg/config"
	"github.com/dmitrymomot/applib/pkg/datatable"
	"github.com/dmitrymomot/applib/pkg/httpserver"
	"github.com/dmitrymomot/applib/pkg/logger"
)

// Config is the environment of every tablectl command. Flags override it.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	API   apiclient.Config
	Table datatable.Config
	HTTP  httpserver.Config
}

type configKey struct{}

type loggerKey struct{}

func loadConfig(envFiles []string) (Config, error) {
	return config.Load[Config](config.WithEnvFiles(envFiles...))
}

func newLogger(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	format := logger.Format(strings.ToLower(cfg.LogFormat))
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be %q or %q", cfg.LogFormat, logger.FormatJSON, logger.FormatText)
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(logger.Component("tablectl")),
		logger.WithContextExtractors(httpserver.RequestIDExtractor),
	), nil
}

func withRuntime(ctx context.Context, cfg Config, log *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, log)
}

// configFrom returns the loaded config, or defaults when the command runs
// outside the root command.
func configFrom(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey{}).(Config); ok {
		return cfg
	}
	return Config{Table: datatable.Config{RowsPerPage: datatable.DefaultRowsPerPage}}
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return logger.Discard()
}
