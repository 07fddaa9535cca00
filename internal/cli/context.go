package cli

import (
	"context"

	"github.com/mmynk/ridesplit/internal/config"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the loaded config, or the defaults outside a command run.
func configFrom(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}
