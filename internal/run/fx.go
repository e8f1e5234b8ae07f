package run

import "go.uber.org/fx"

var Module = fx.Module("run",
	fx.Provide(NewRunner),
)
