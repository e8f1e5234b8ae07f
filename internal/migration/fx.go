package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
		if err := Apply(conn); err != nil {
			return err
		}
		log.Debug("schema up to date", zap.String("dialect", conn.Dialector.Name()))
		return nil
	}),
)
