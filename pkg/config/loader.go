package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option customises a single Load call.
type Option func(*options)

type options struct {
	files    []string
	prefix   string
	required bool
}

// WithEnvFiles loads the given dotenv files before parsing. Missing files are
// ignored; variables already present in the process environment win.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// WithPrefix prepends prefix to every `env` tag, e.g. "USERS_" turns
// TABLE_ROWS_PER_PAGE into USERS_TABLE_ROWS_PER_PAGE.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRequiredIfNoDefault treats every field without envDefault as required.
func WithRequiredIfNoDefault() Option {
	return func(o *options) { o.required = true }
}

// Load parses environment variables into a new T.
//
// Nothing is cached: every call re-reads the environment, so callers build
// their configuration once and pass it to the components that need it.
//
//	type TableConfig struct {
//		RowsPerPage int `env:"TABLE_ROWS_PER_PAGE" envDefault:"5"`
//	}
//
//	cfg, err := config.Load[TableConfig](config.WithEnvFiles(".env"))
func Load[T any](opts ...Option) (T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg T
	if len(o.files) > 0 {
		existing := make([]string, 0, len(o.files))
		for _, f := range o.files {
			if _, err := godotenv.Read(f); err == nil {
				existing = append(existing, f)
			}
		}
		if len(existing) > 0 {
			if err := godotenv.Load(existing...); err != nil {
				return cfg, errors.Join(ErrLoadingEnvFile, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:                o.prefix,
		RequiredIfNoDef:       o.required,
		UseFieldNameByDefault: false,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it in main packages
// where a broken environment should stop the process.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}
