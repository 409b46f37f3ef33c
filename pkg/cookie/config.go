package cookie

import "strings"

// Config holds cookie manager configuration loaded from the environment.
// Secrets is a comma-separated list; the first entry signs new cookies,
// the rest verify cookies issued before a key rotation.
type Config struct {
	Secrets string `env:"COOKIE_SECRETS,required"`
	Domain  string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure  bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

// NewFromConfig creates a Manager from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for _, s := range strings.Split(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	configOpts := make([]Option, 0, len(opts)+2)
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	configOpts = append(configOpts, WithSecure(cfg.Secure))
	configOpts = append(configOpts, opts...)

	return New(secrets, configOpts...)
}
