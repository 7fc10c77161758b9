package plugins

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ludobot/ludo/cache"
	"github.com/ludobot/ludo/helpers"
)

type Ping struct{}

func (p *Ping) Commands() []string {
	return []string{
		"ping",
	}
}

func (p *Ping) Init(session *discordgo.Session) {
}

func (p *Ping) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	text := helpers.GetText("plugins.ping.message")

	started := time.Now()
	sqlDB, err := cache.GetDB().DB()
	if err == nil {
		sqlDB.Ping()
	}
	dbTaken := time.Since(started)
	text += "\nDatabase Latency: " + dbTaken.String()

	started = time.Now()
	cache.GetRedisClient().Ping()
	redisTaken := time.Since(started)
	text += "\nRedis Latency: " + redisTaken.String()

	_, err = session.ChannelMessageSend(msg.ChannelID, text)
	helpers.RelaxLog(err)
}
