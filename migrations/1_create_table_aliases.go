package migrations

import "github.com/ludobot/ludo/models"

func m1_create_table_aliases() {
	CreateTableIfNotExists(&models.Alias{})
}
