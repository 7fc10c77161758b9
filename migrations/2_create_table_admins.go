package migrations

import "github.com/ludobot/ludo/models"

func m2_create_table_admins() {
	CreateTableIfNotExists(&models.Admin{})
}
