package migrations

import "github.com/ludobot/ludo/models"

func m3_create_table_role_messages() {
	CreateTableIfNotExists(&models.RoleMessage{})
}
