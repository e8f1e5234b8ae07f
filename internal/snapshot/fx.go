package snapshot

import "go.uber.org/fx"

var Module = fx.Module("snapshot.store",
	fx.Provide(NewStore),
)
