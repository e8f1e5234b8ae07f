package runmetrics

import "go.uber.org/fx"

var Module = fx.Module("runmetrics",
	fx.Provide(NewGauges),
	fx.Provide(NewPusher),
)
