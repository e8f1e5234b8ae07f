package usage

import (
	"github.com/smallbiznis/planshift/internal/usage/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.repository",
	fx.Provide(repository.Provide),
)
