package migrations

import "github.com/ludobot/ludo/models"

func m0_create_table_games() {
	CreateTableIfNotExists(&models.Game{})
}
