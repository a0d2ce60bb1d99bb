// Package httpserver runs an http.Handler with configurable timeouts and
// graceful shutdown driven by a context.
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"), httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listening on port 0 binds a free port; Addr reports it and WithOnStart
// callbacks receive it. HealthHandler serves liveness and readiness probes.
package httpserver
