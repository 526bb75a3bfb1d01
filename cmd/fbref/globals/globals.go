package globals

import (
	"context"

	"fbref-transfers/cmd/fbref/config"
	"fbref-transfers/lib/telemetry"
)

type key struct{}

type Value struct {
	Config    config.Config
	Telemetry telemetry.Telemetry
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
