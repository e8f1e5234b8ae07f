package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/planshift/internal/billing"
	"github.com/smallbiznis/planshift/internal/clock"
	"github.com/smallbiznis/planshift/internal/config"
	"github.com/smallbiznis/planshift/internal/customer"
	"github.com/smallbiznis/planshift/internal/migration"
	"github.com/smallbiznis/planshift/internal/observability"
	"github.com/smallbiznis/planshift/internal/run"
	"github.com/smallbiznis/planshift/internal/runlock"
	"github.com/smallbiznis/planshift/internal/runmetrics"
	"github.com/smallbiznis/planshift/internal/scenario"
	"github.com/smallbiznis/planshift/internal/snapshot"
	"github.com/smallbiznis/planshift/internal/usage"
	"github.com/smallbiznis/planshift/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const startTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newApp composes the application. Database modules are only wired when the
// command touches the database.
func newApp(cfg config.Config, withDB bool, targets ...any) *fx.App {
	opts := []fx.Option{
		fx.Supply(cfg),
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		runlock.Module,
		runmetrics.Module,
		scenario.Module,
		run.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
	}
	if withDB {
		opts = append(opts,
			db.Module,
			migration.Module,
			customer.Module,
			usage.Module,
			billing.Module,
			snapshot.Module,
		)
	}
	opts = append(opts, fx.Populate(targets...))
	return fx.New(opts...)
}

// withApp starts the application, runs fn and stops the application again.
func withApp(ctx context.Context, cfg config.Config, withDB bool, fn func() error, targets ...any) error {
	app := newApp(cfg, withDB, targets...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := fn()

	stopCtx, cancelStop := context.WithTimeout(context.WithoutCancel(ctx), startTimeout)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
