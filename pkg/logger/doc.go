// Package logger builds *slog.Logger instances for the applib components.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the chosen slog handler with
// NewContextHandler, which pulls request-scoped attributes out of the
// context on every Handle call without shadowing attributes set explicitly.
//
//	log := logger.New(
//		logger.WithTextFormatter(),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(logger.Component("datatable")),
//	)
//
// Attribute helpers (Page, SearchTerm, URL, Status, Duration, Error) keep
// attribute keys consistent across packages. Discard returns a logger that
// drops everything and is the default for every component that accepts a
// WithLogger option.
package logger
