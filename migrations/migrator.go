package migrations

import (
	"reflect"
	"runtime"

	"github.com/ludobot/ludo/cache"
	"github.com/ludobot/ludo/helpers"
)

var migrations = []helpers.Callback{
	m0_create_table_games,
	m1_create_table_aliases,
	m2_create_table_admins,
	m3_create_table_role_messages,
	m4_create_table_sub_games,
}

// Run executes all registered migrations
func Run() {
	log := cache.GetLogger()

	log.WithField("module", "migrations").Info("Running migrations...")
	for _, migration := range migrations {
		migrationName := runtime.FuncForPC(
			reflect.ValueOf(migration).Pointer(),
		).Name()

		log.WithField("module", "migrations").Info("Running " + migrationName)
		migration()
	}

	log.WithField("module", "migrations").Info("Migrations finished!")
}
