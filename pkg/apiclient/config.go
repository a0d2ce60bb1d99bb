package apiclient

import "time"

// Config holds environment-driven client settings.
type Config struct {
	BaseURL   string        `env:"API_BASE_URL"`
	Token     string        `env:"API_TOKEN"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	CacheSize int           `env:"API_CACHE_SIZE" envDefault:"0"`
	CacheTTL  time.Duration `env:"API_CACHE_TTL" envDefault:"30s"`
}

// NewFromConfig creates a Client from cfg. Extra options are applied after
// the config-derived ones and take precedence.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	configOpts := make([]Option, 0, 3+len(opts))
	if cfg.Token != "" {
		configOpts = append(configOpts, WithToken(cfg.Token))
	}
	if cfg.Timeout > 0 {
		configOpts = append(configOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.CacheSize > 0 {
		configOpts = append(configOpts, WithCache(cfg.CacheSize, cfg.CacheTTL))
	}
	configOpts = append(configOpts, opts...)
	return New(cfg.BaseURL, configOpts...)
}
