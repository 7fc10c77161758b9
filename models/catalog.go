package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

const (
	GamesTable        = "games"
	AliasesTable      = "aliases"
	AdminsTable       = "admins"
	RoleMessagesTable = "role_messages"
	SubGamesTable     = "sub_games"

	// MenuMessageRedisKey is the cache key for fetched menu messages,
	// format: message id
	MenuMessageRedisKey = "ludo:gameroles:menu-message:%s"
)

// Game is a role-granting catalog entry. Name is unique case-insensitively
// across games and aliases.
type Game struct {
	ID        uint   `gorm:"primaryKey"`
	DiscordID string `gorm:"size:20;not null"`
	Name      string `gorm:"size:50;not null"`
}

func (Game) TableName() string { return GamesTable }

// Alias is an alternate lookup name resolving to exactly one game.
type Alias struct {
	ID     uint   `gorm:"primaryKey"`
	Alias  string `gorm:"size:50;not null"`
	GameID uint
}

func (Alias) TableName() string { return AliasesTable }

type Admin struct {
	DiscordID string `gorm:"size:20;not null"`
}

func (Admin) TableName() string { return AdminsTable }

// RoleMessage binds a menu message to the ordered list of games it offers.
// The order defines the keypad index of each entry.
type RoleMessage struct {
	MessageID string         `gorm:"size:20;not null"`
	GameIDs   datatypes.JSON `gorm:"type:json"`
}

func (RoleMessage) TableName() string { return RoleMessagesTable }

func (m *RoleMessage) GetGameIDs() []uint {
	var ids []uint
	if len(m.GameIDs) == 0 {
		return ids
	}
	json.Unmarshal(m.GameIDs, &ids)
	return ids
}

func (m *RoleMessage) SetGameIDs(ids []uint) {
	b, _ := json.Marshal(ids)
	m.GameIDs = b
}

// SubGame links a game to its parent game. A game may have at most one parent.
type SubGame struct {
	SubID    uint `gorm:"uniqueIndex"`
	ParentID uint
}

func (SubGame) TableName() string { return SubGamesTable }

// MenuMessageRedisEntry is the redis-cached shape of a fetched menu message.
type MenuMessageRedisEntry struct {
	MessageID string
	ChannelID string
}
