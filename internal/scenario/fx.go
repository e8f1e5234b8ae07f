package scenario

import (
	"github.com/smallbiznis/planshift/internal/scenario/repository"
	"github.com/smallbiznis/planshift/internal/scenario/service"
	"go.uber.org/fx"
)

var Module = fx.Module("scenario.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
