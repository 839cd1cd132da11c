package db

import (
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"webshop/internal/model"
)

// Models lists every table owned by the application, in dependency order.
var Models = []interface{}{
	&model.User{},
	&model.RefreshToken{},
	&model.Product{},
	&model.Basket{},
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect mysql")
	}
	return db, nil
}

// Migrate creates or updates all application tables. When reset is true the
// tables are dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		for i := len(Models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(Models[i]); err != nil {
				return errors.Wrap(err, "drop table")
			}
		}
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return errors.Wrap(err, "auto-migrate")
	}
	return nil
}
