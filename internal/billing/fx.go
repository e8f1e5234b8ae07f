package billing

import (
	"github.com/smallbiznis/planshift/internal/billing/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.repository",
	fx.Provide(repository.Provide),
)
