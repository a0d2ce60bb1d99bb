// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag driven parsing and
// github.com/joho/godotenv for optional dotenv files. Load is generic and
// returns a fresh value on every call; there is no process-wide registry.
// Build the configuration in main and hand it to constructors such as
// datatable.NewFromConfig or apiclient.NewFromConfig.
//
//	type Config struct {
//		API   apiclient.Config
//		Table datatable.Config
//	}
//
//	cfg, err := config.Load[Config](config.WithEnvFiles(".env"))
//	if err != nil {
//		return err
//	}
//
// Parsing failures are joined with ErrParsingConfig so callers can match
// them with errors.Is.
package config
