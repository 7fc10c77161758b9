package migrations

import (
	"github.com/ludobot/ludo/helpers"
)

// CreateTableIfNotExists (works like the mysql call)
func CreateTableIfNotExists(model interface{}) {
	migrator := helpers.GetDB().Migrator()

	if migrator.HasTable(model) {
		return
	}

	helpers.Relax(migrator.CreateTable(model))
}
