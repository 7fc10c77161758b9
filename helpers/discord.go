package helpers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/ludobot/ludo/cache"
)

var botAdmins = []string{
	"116620585638821891",
}

// IsBotAdmin checks if $id is in $botAdmins
func IsBotAdmin(id string) bool {
	for _, s := range botAdmins {
		if s == id {
			return true
		}
	}

	return false
}

// IsCatalogAdmin checks the author against the catalog's admin set
func IsCatalogAdmin(msg *discordgo.Message) bool {
	if IsBotAdmin(msg.Author.ID) {
		return true
	}

	return cache.GetCatalog().IsAdmin(msg.Author.ID)
}

// RequireCatalogAdmin only calls $cb if the author is a catalog admin
func RequireCatalogAdmin(msg *discordgo.Message, cb Callback) {
	if !IsCatalogAdmin(msg) {
		cache.GetSession().ChannelMessageSend(msg.ChannelID, GetText("admin.no_permission"))
		return
	}

	cb()
}

// MemberHasRole checks whether $member carries $roleID
func MemberHasRole(member *discordgo.Member, roleID string) bool {
	for _, memberRole := range member.Roles {
		if memberRole == roleID {
			return true
		}
	}
	return false
}
