package migrations

import "github.com/ludobot/ludo/models"

func m4_create_table_sub_games() {
	CreateTableIfNotExists(&models.SubGame{})
}
