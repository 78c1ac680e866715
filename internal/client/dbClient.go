package client

import (
	"time"

	"parcel-delivery-api/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		// Duplicate-key errors must surface as gorm.ErrDuplicatedKey for the
		// payment-session idempotency guard.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("get underlying sql.DB")
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Parcel{},
		&model.Payment{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate")
	}

	return db
}
