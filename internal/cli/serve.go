package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/applib/pkg/datatable"
	"github.com/dmitrymomot/applib/pkg/httpserver"
	"github.com/dmitrymomot/applib/pkg/logger"
	"github.com/dmitrymomot/applib/pkg/tableview"
)

type serveFlags struct {
	sourceFlags
	addr  string
	title string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset as an interactive HTML table",
		Long: `Start an HTTP server with a browser view of the dataset. Searching,
sorting and paging are driven over server-sent events; /healthz reports
whether the API is reachable.`,
		Example: `  tablectl serve --url https://api.example.com/users --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().StringVar(&f.title, "title", "Records", "page title")

	return cmd
}

func runServe(cmd *cobra.Command, f serveFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configFrom(ctx)
	log := loggerFrom(ctx)

	c, source, err := f.newController(cfg, log, datatable.WithErrorReporter(func(err error) {
		log.Warn("table load failed", logger.Error(err))
	}))
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Load(ctx, 1, ""); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	opts := []httpserver.Option{
		httpserver.WithLogger(log),
		httpserver.WithOnStart(func(addr string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", f.title, addr)
		}),
	}
	if f.addr != "" {
		opts = append(opts, httpserver.WithAddr(f.addr))
	}
	srv := httpserver.NewFromConfig(cfg.HTTP, opts...)
	return srv.Run(ctx, newRouter(c, sourceCheck(source), f.title, log))
}

// sourceCheck fetches a single row to prove the API answers.
func sourceCheck(src datatable.Source) httpserver.Check {
	return func(ctx context.Context) error {
		_, err := src.Fetch(ctx, datatable.PageSpec{Page: 1, Limit: 1})
		return err
	}
}

// newRouter mounts the table view at / and the readiness probe at /healthz.
func newRouter(c *datatable.Controller, ready httpserver.Check, title string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(log, ready))

	view := tableview.NewHandler(c, tableview.WithTitle(title), tableview.WithLogger(log))
	view.Mount(r)
	return r
}
