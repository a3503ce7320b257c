package common

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectDb() *gorm.DB {
	envFile, _ := godotenv.Read()

	get := func(key string) string {
		if v, ok := envFile[key]; ok && v != "" {
			return v
		}
		return os.Getenv(key)
	}

	dbFile := get("sqlite_db")
	if dbFile == "" {
		log.Error().Msg("sqlite_db not set")
		return nil
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error opening sqlite db")
		return nil
	}
	log.Info().Str("file", dbFile).Msg("opened sqlite db")
	return db
}
