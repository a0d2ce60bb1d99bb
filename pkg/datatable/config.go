package datatable

import "time"

// Config holds environment-driven table settings.
type Config struct {
	RowsPerPage    int           `env:"TABLE_ROWS_PER_PAGE" envDefault:"5"`
	ServerSide     bool          `env:"TABLE_SERVER_SIDE" envDefault:"false"`
	SearchDebounce time.Duration `env:"TABLE_SEARCH_DEBOUNCE" envDefault:"400ms"`
	RequestTimeout time.Duration `env:"TABLE_REQUEST_TIMEOUT" envDefault:"0s"`
}

// NewFromConfig creates a Controller from cfg. Only non-zero values are
// applied; extra options take precedence.
func NewFromConfig(source Source, cfg Config, opts ...Option) (*Controller, error) {
	configOpts := make([]Option, 0, 4+len(opts))
	if cfg.RowsPerPage > 0 {
		configOpts = append(configOpts, WithRowsPerPage(cfg.RowsPerPage))
	}
	if cfg.ServerSide {
		configOpts = append(configOpts, WithServerSide())
	}
	if cfg.SearchDebounce > 0 {
		configOpts = append(configOpts, WithSearchDebounce(cfg.SearchDebounce))
	}
	if cfg.RequestTimeout > 0 {
		configOpts = append(configOpts, WithRequestTimeout(cfg.RequestTimeout))
	}
	configOpts = append(configOpts, opts...)
	return New(source, configOpts...)
}
