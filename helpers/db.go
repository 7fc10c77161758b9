package helpers

import (
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/ludobot/ludo/cache"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the database connection and caches the handle.
// The DATABASE_URL environment variable overrides $dsn. A postgres:// DSN
// selects the postgres driver, anything else opens sqlite (useful for local
// development).
func ConnectDB(dsn string) {
	log := cache.GetLogger()

	if env := os.Getenv("DATABASE_URL"); env != "" {
		dsn = env
	}

	var (
		db  *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		if dsn == "" {
			dsn = "file:ludo.db"
		}
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.WithField("module", "helpers").Error("Error connecting to the database: " + err.Error())
		panic(err)
	}

	cache.SetDB(db)
	log.WithField("module", "helpers").Info("Connected to the database")
}

// GetDB is a shortcut for cache.GetDB()
func GetDB() *gorm.DB {
	return cache.GetDB()
}

// CloseDB closes the underlying sql connection pool
func CloseDB() {
	sqlDB, err := cache.GetDB().DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
