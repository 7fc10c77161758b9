package plugins

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RichardKnop/machinery/v1/tasks"
	"github.com/bradfitz/slice"
	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	redisCache "github.com/go-redis/cache"
	"github.com/karrick/tparse/v2"
	"github.com/ludobot/ludo/cache"
	"github.com/ludobot/ludo/catalog"
	"github.com/ludobot/ludo/emojis"
	"github.com/ludobot/ludo/helpers"
	"github.com/ludobot/ludo/metrics"
	"github.com/ludobot/ludo/models"
	"github.com/ludobot/ludo/ratelimits"
	"github.com/ludobot/ludo/roles"
)

// GameRoles owns the game catalog: admin commands mutate it, member
// reactions on bound menu messages toggle roles through it.
type GameRoles struct{}

var (
	gameRolesGuildID      string
	gameRolesChannelID    string
	gameRolesStreamerRole string

	gameRolesToggler *roles.Toggler

	gameRolesCleanupQuit chan struct{}
)

func (g *GameRoles) Commands() []string {
	return []string{
		"admin",
		"purgecache",
		"registergame",
		"unregistergame",
		"registeralias",
		"unregisteralias",
		"registersubgame",
		"unregistersubgame",
		"games",
		"addgame",
		"removegame",
		"autogen",
		"rolemessage",
		"rolecleanup",
	}
}

func (g *GameRoles) Init(session *discordgo.Session) {
	config := helpers.GetConfig()
	gameRolesGuildID = config.Path("discord.guild").Data().(string)
	gameRolesChannelID = config.Path("discord.role_channel").Data().(string)
	gameRolesStreamerRole = config.Path("discord.streamer_role").Data().(string)

	store, err := catalog.NewStore(helpers.GetDB())
	helpers.Relax(err)
	cache.SetCatalog(store)

	gameRolesToggler = roles.NewToggler(
		store,
		&guildMembership{guildID: gameRolesGuildID},
		&channelNotifier{channelID: gameRolesChannelID},
	)

	ratelimits.Container.Init()

	interval := 10 * time.Minute
	if text, ok := config.Path("gameroles.cleanup_interval").Data().(string); ok && text != "" {
		parsed, err := time.ParseDuration(text)
		if err == nil {
			interval = parsed
		}
	}

	gameRolesCleanupQuit = make(chan struct{})
	go g.cleanupLoop(interval)
}

func (g *GameRoles) Uninit(session *discordgo.Session) {
	close(gameRolesCleanupQuit)
}

func (g *GameRoles) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	switch command {
	case "admin":
		g.actionAdmin(content, msg, session)
	case "purgecache":
		helpers.RequireCatalogAdmin(msg, func() {
			err := cache.GetCatalog().ReloadAll()
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
			session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
		})
	case "registergame":
		g.actionRegisterGame(content, msg, session)
	case "unregistergame":
		g.actionUnregisterGame(content, msg, session)
	case "registeralias":
		g.actionRegisterAlias(content, msg, session)
	case "unregisteralias":
		g.actionUnregisterAlias(content, msg, session)
	case "registersubgame":
		g.actionRegisterSubGame(content, msg, session)
	case "unregistersubgame":
		g.actionUnregisterSubGame(content, msg, session)
	case "games":
		g.actionListGames(msg, session)
	case "addgame":
		g.actionSetGames(content, msg, session, true)
	case "removegame":
		g.actionSetGames(content, msg, session, false)
	case "autogen":
		g.actionAutogen(content, msg, session)
	case "rolemessage":
		g.actionRoleMessage(content, msg, session)
	case "rolecleanup":
		g.actionCleanup(content, msg, session)
	}
}

func (g *GameRoles) actionAdmin(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		args := strings.Fields(content)
		if len(args) < 2 {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetText("bot.arguments.too-few"))
			return
		}

		userID := strings.Trim(args[1], "<@!>")

		var success bool
		var err error
		switch args[0] {
		case "add":
			success, err = cache.GetCatalog().AddAdmin(userID)
		case "remove":
			err = cache.GetCatalog().RemoveAdmin(userID)
			success = err == nil
		}
		if err != nil {
			helpers.SendError(msg, err)
			return
		}

		if success {
			session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
		}
	})
}

func (g *GameRoles) actionRegisterGame(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		args := strings.Fields(content)
		if len(args) < 2 {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetText("bot.arguments.too-few"))
			return
		}

		roleID := strings.Trim(args[0], "<@&>")
		name := strings.TrimSpace(strings.TrimPrefix(content, args[0]))

		_, err := cache.GetCatalog().AddGame(name, roleID)
		if err != nil {
			if _, ok := err.(*catalog.DuplicateNameError); ok {
				session.ChannelMessageSend(msg.ChannelID, err.Error())
				return
			}
			helpers.SendError(msg, err)
			return
		}

		session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
	})
}

func (g *GameRoles) actionUnregisterGame(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		name := strings.TrimSpace(content)
		game, ok := cache.GetCatalog().FindGame(name, true)
		if !ok {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetTextF("plugins.gameroles.unknown-games", name))
			return
		}

		removed, err := cache.GetCatalog().RemoveGame(game.ID)
		if err != nil {
			helpers.SendError(msg, err)
			return
		}
		if removed {
			session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
		}
	})
}

func (g *GameRoles) actionRegisterAlias(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		parts := strings.SplitN(content, ",", 2)
		if len(parts) < 2 {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetText("bot.arguments.too-few"))
			return
		}

		aliasName := strings.TrimSpace(parts[0])
		gameName := strings.TrimSpace(parts[1])

		_, err := cache.GetCatalog().AddAlias(gameName, aliasName)
		if err != nil {
			switch err.(type) {
			case *catalog.DuplicateNameError, *catalog.UnknownGameError:
				session.ChannelMessageSend(msg.ChannelID, err.Error())
			default:
				helpers.SendError(msg, err)
			}
			return
		}

		session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
	})
}

func (g *GameRoles) actionUnregisterAlias(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		name := strings.TrimSpace(content)
		alias, ok := cache.GetCatalog().FindAlias(name)
		if !ok {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetTextF("plugins.gameroles.unknown-games", name))
			return
		}

		removed, err := cache.GetCatalog().RemoveAlias(alias.ID)
		if err != nil {
			helpers.SendError(msg, err)
			return
		}
		if removed {
			session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
		}
	})
}

func (g *GameRoles) actionRegisterSubGame(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		parts := strings.SplitN(content, ",", 2)
		if len(parts) < 2 {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetText("bot.arguments.too-few"))
			return
		}

		subName := strings.TrimSpace(parts[0])
		parentName := strings.TrimSpace(parts[1])

		store := cache.GetCatalog()
		subGame, subOK := store.FindGame(subName, true)
		parentGame, parentOK := store.FindGame(parentName, true)
		if !subOK || !parentOK {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.invalid-sub-games", subName, parentName))
			return
		}

		linked, err := store.AddSubGame(subGame.ID, parentGame.ID)
		if err != nil {
			helpers.SendError(msg, err)
			return
		}
		if !linked {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.sub-game-taken", subName))
			return
		}

		session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
	})
}

func (g *GameRoles) actionUnregisterSubGame(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		name := strings.TrimSpace(content)
		store := cache.GetCatalog()
		game, ok := store.FindGame(name, true)
		if !ok {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetTextF("plugins.gameroles.unknown-games", name))
			return
		}

		removed, err := store.RemoveSubGame(game.ID)
		if err != nil {
			helpers.SendError(msg, err)
			return
		}
		if removed {
			session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
		}
	})
}

func (g *GameRoles) actionListGames(msg *discordgo.Message, session *discordgo.Session) {
	games := cache.GetCatalog().Games()
	if len(games) == 0 {
		session.ChannelMessageSend(msg.ChannelID, helpers.GetText("plugins.gameroles.no-games"))
		return
	}

	slice.Sort(games, func(i, j int) bool {
		return strings.ToLower(games[i].Name) < strings.ToLower(games[j].Name)
	})

	text := helpers.GetTextF("plugins.gameroles.games-list-header", humanize.Comma(int64(len(games))))
	for _, game := range games {
		text += "\n" + game.Name
	}

	session.ChannelMessageSend(msg.ChannelID, text)
}

// actionSetGames adds or removes the roles for a comma separated list of
// game names on the requesting member
func (g *GameRoles) actionSetGames(content string, msg *discordgo.Message, session *discordgo.Session, add bool) {
	store := cache.GetCatalog()

	var valid []models.Game
	var invalid []string
	for _, name := range strings.Split(content, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if game, ok := store.FindGame(name, true); ok {
			valid = append(valid, game)
		} else {
			invalid = append(invalid, name)
		}
	}

	if len(valid) > 0 {
		var names []string
		for _, game := range valid {
			var err error
			if add {
				err = session.GuildMemberRoleAdd(gameRolesGuildID, msg.Author.ID, game.DiscordID)
			} else {
				err = session.GuildMemberRoleRemove(gameRolesGuildID, msg.Author.ID, game.DiscordID)
			}
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
			names = append(names, game.Name)
		}

		textID := "plugins.gameroles.games-added"
		if !add {
			textID = "plugins.gameroles.games-removed"
		}
		session.ChannelMessageSend(msg.ChannelID,
			helpers.GetTextF(textID, strings.Join(names, ", "), msg.Author.ID))
	}

	if len(invalid) > 0 {
		session.ChannelMessageSend(msg.ChannelID,
			helpers.GetTextF("plugins.gameroles.unknown-games", strings.Join(invalid, ", ")))
	}
}

func (g *GameRoles) actionAutogen(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		store := cache.GetCatalog()

		var misc []models.Game
		var invalid []string
		for _, name := range strings.Split(content, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if game, ok := store.FindGame(name, true); ok {
				misc = append(misc, game)
			} else {
				invalid = append(invalid, name)
			}
		}

		// an unresolved exclusion aborts the whole generation
		if len(invalid) > 0 {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.unknown-games", strings.Join(invalid, ", ")))
			return
		}

		for _, page := range roles.BuildMenuPages(store.Games(), misc) {
			err := g.createRoleMessage(page.Category, page.Games, session)
			if err != nil {
				helpers.SendError(msg, err)
				return
			}
		}

		if msg.ChannelID != gameRolesChannelID {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.menus-generated", gameRolesChannelID))
		}
	})
}

func (g *GameRoles) actionRoleMessage(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		parts := strings.SplitN(content, "|", 2)
		if len(parts) < 2 {
			session.ChannelMessageSend(msg.ChannelID, helpers.GetText("bot.arguments.too-few"))
			return
		}

		category := strings.TrimSpace(parts[0])
		store := cache.GetCatalog()

		var games []models.Game
		var invalid []string
		for _, name := range strings.Split(parts[1], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if game, ok := store.FindGame(name, true); ok {
				games = append(games, game)
			} else {
				invalid = append(invalid, name)
			}
		}

		if len(games) > roles.MaxGamesPerMenu {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.too-many-games", len(games), roles.MaxGamesPerMenu))
			return
		}
		if len(invalid) > 0 {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.unknown-games", strings.Join(invalid, ", ")))
			return
		}

		err := g.createRoleMessage(category, games, session)
		if err != nil {
			helpers.SendError(msg, err)
			return
		}

		if msg.ChannelID != gameRolesChannelID {
			session.ChannelMessageSend(msg.ChannelID,
				helpers.GetTextF("plugins.gameroles.menus-generated", gameRolesChannelID))
		}
	})
}

func (g *GameRoles) actionCleanup(content string, msg *discordgo.Message, session *discordgo.Session) {
	helpers.RequireCatalogAdmin(msg, func() {
		args := strings.Fields(content)

		// "rolecleanup in <duration>" schedules a delayed run
		if len(args) >= 2 && args[0] == "in" {
			runAt, err := tparse.AddDuration(time.Now(), args[1])
			if err != nil {
				session.ChannelMessageSend(msg.ChannelID, helpers.GetText("bot.arguments.invalid"))
				return
			}

			signature := &tasks.Signature{Name: "cleanup_role_channel"}
			signature.ETA = &runAt
			signature.OnError = []*tasks.Signature{{Name: "log_error"}}

			_, err = cache.GetMachineryServer().SendTask(signature)
			if err != nil {
				helpers.SendError(msg, err)
				return
			}

			session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
			return
		}

		err := GameRolesCleanup()
		if err != nil {
			helpers.SendError(msg, err)
			return
		}
		session.MessageReactionAdd(msg.ChannelID, msg.ID, "✅")
	})
}

// createRoleMessage renders one menu page, registers the binding and seeds
// the keypad reactions
func (g *GameRoles) createRoleMessage(category string, games []models.Game, session *discordgo.Session) error {
	embed := &discordgo.MessageEmbed{
		Title:       helpers.GetTextF("plugins.gameroles.menu-title", category),
		Description: helpers.GetText("plugins.gameroles.menu-description"),
		Color:       0x3498DB,
	}
	for i, game := range games {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   emojis.FromNumber(i) + " " + game.Name,
			Value:  "​",
			Inline: true,
		})
	}

	msg, err := session.ChannelMessageSendEmbed(gameRolesChannelID, embed)
	if err != nil {
		return err
	}

	gameIDs := make([]uint, len(games))
	for i, game := range games {
		gameIDs[i] = game.ID
	}

	if _, err = cache.GetCatalog().AddMenuBinding(msg.ID, gameIDs); err != nil {
		return err
	}
	metrics.MenusGenerated.Add(1)

	for i := range games {
		session.MessageReactionAdd(gameRolesChannelID, msg.ID, emojis.FromNumber(i))
	}

	return nil
}

func (g *GameRoles) OnMessage(content string, msg *discordgo.Message, session *discordgo.Session) {
}

// OnReactionAdd toggles roles for reactions on bound menu messages. Member
// facing failures stay silent, invalid reactions are simply cleared.
func (g *GameRoles) OnReactionAdd(reaction *discordgo.MessageReactionAdd, session *discordgo.Session) {
	if !cache.HasCatalog() {
		return
	}
	if reaction.UserID == session.State.User.ID {
		return
	}

	store := cache.GetCatalog()
	gameIDs, bound := store.MenuBinding(reaction.MessageID)
	if !bound {
		return
	}

	metrics.ReactionsReceived.Add(1)

	if !ratelimits.Container.Allow(reaction.UserID) {
		return
	}

	if !g.menuMessageAlive(reaction.ChannelID, reaction.MessageID, session) {
		return
	}

	num := emojis.ToNumber(reaction.Emoji.Name)
	if num < 0 || num >= len(gameIDs) {
		clearReaction(session, reaction.ChannelID, reaction.MessageID, reaction.Emoji.Name)
		return
	}

	_, _, err := gameRolesToggler.Toggle(reaction.UserID, gameIDs[num])
	if err != nil {
		helpers.RelaxLog(err)
		return
	}
	metrics.RolesToggled.Add(1)

	session.MessageReactionRemove(reaction.ChannelID, reaction.MessageID, reaction.Emoji.Name, reaction.UserID)
}

func (g *GameRoles) OnReactionRemove(reaction *discordgo.MessageReactionRemove, session *discordgo.Session) {
}

// OnGuildMemberAdd greets new members with a pointer to the role channel
func (g *GameRoles) OnGuildMemberAdd(member *discordgo.Member, session *discordgo.Session) {
	channel, err := session.UserChannelCreate(member.User.ID)
	if err != nil {
		helpers.RelaxLog(err)
		return
	}

	_, err = session.ChannelMessageSend(channel.ID,
		helpers.GetTextF("plugins.gameroles.greeting", member.User.ID, gameRolesChannelID))
	helpers.RelaxLog(err)
}

func (g *GameRoles) OnGuildMemberRemove(member *discordgo.Member, session *discordgo.Session) {
}

// OnPresenceUpdate tracks the streamer role: members streaming get it,
// members who stopped streaming lose it
func (g *GameRoles) OnPresenceUpdate(presence *discordgo.PresenceUpdate, session *discordgo.Session) {
	if gameRolesStreamerRole == "" || presence.GuildID != gameRolesGuildID {
		return
	}

	streaming := presence.Game != nil && presence.Game.Type == discordgo.GameTypeStreaming

	member, err := session.State.Member(gameRolesGuildID, presence.User.ID)
	if err != nil {
		member, err = session.GuildMember(gameRolesGuildID, presence.User.ID)
		if err != nil {
			return
		}
	}

	holds := helpers.MemberHasRole(member, gameRolesStreamerRole)

	if streaming && !holds {
		err = session.GuildMemberRoleAdd(gameRolesGuildID, presence.User.ID, gameRolesStreamerRole)
		helpers.RelaxLog(err)
	}
	if !streaming && holds {
		err = session.GuildMemberRoleRemove(gameRolesGuildID, presence.User.ID, gameRolesStreamerRole)
		helpers.RelaxLog(err)
	}
}

// menuMessageAlive confirms the bound menu message still exists. Confirmed
// missing messages heal silently: the binding is dropped. Live messages are
// cached in redis to spare the repeated fetch.
func (g *GameRoles) menuMessageAlive(channelID string, messageID string, session *discordgo.Session) bool {
	cacheCodec := cache.GetRedisCacheCodec()
	key := fmt.Sprintf(models.MenuMessageRedisKey, messageID)

	var entry models.MenuMessageRedisEntry
	if err := cacheCodec.Get(key, &entry); err == nil {
		return true
	}

	_, err := session.ChannelMessage(channelID, messageID)
	if err != nil {
		if errD, ok := err.(*discordgo.RESTError); ok && errD.Message != nil &&
			errD.Message.Code == discordgo.ErrCodeUnknownMessage {
			_, removeErr := cache.GetCatalog().RemoveMenuBinding(messageID)
			helpers.RelaxLog(removeErr)
			return false
		}
		helpers.RelaxLog(err)
		return false
	}

	err = cacheCodec.Set(&redisCache.Item{
		Key:        key,
		Object:     models.MenuMessageRedisEntry{MessageID: messageID, ChannelID: channelID},
		Expiration: time.Hour * 1,
	})
	helpers.RelaxLog(err)

	return true
}

func (g *GameRoles) cleanupLoop(interval time.Duration) {
	defer helpers.Recover()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// a failed tick must not stop the loop
			err := GameRolesCleanup()
			helpers.RelaxLog(err)
		case <-gameRolesCleanupQuit:
			return
		}
	}
}

// GameRolesCleanup purges lingering chat after the most recent menu message
// and strips reactions that do not belong to the bot. Registered as the
// machinery cleanup_role_channel task.
func GameRolesCleanup() error {
	defer helpers.Recover()

	if !cache.HasCatalog() {
		return nil
	}

	metrics.CleanupTicks.Add(1)

	session := cache.GetSession()
	store := cache.GetCatalog()

	messageIDs := store.MenuMessageIDs()
	if len(messageIDs) == 0 {
		return nil
	}

	// whether to purge after the globally newest binding or the newest one
	// per channel is configurable, the role channel layout decides
	scope := "global"
	if text, ok := helpers.GetConfig().Path("gameroles.cleanup_scope").Data().(string); ok && text != "" {
		scope = text
	}

	newestByChannel := make(map[string]string)
	var newestOverall string
	for _, messageID := range messageIDs {
		msg, err := session.ChannelMessage(gameRolesChannelID, messageID)
		if err != nil {
			if errD, ok := err.(*discordgo.RESTError); ok && errD.Message != nil &&
				errD.Message.Code == discordgo.ErrCodeUnknownMessage {
				store.RemoveMenuBinding(messageID)
			}
			continue
		}

		if snowflakeNewer(msg.ID, newestByChannel[msg.ChannelID]) {
			newestByChannel[msg.ChannelID] = msg.ID
		}
		if snowflakeNewer(msg.ID, newestOverall) {
			newestOverall = msg.ID
		}

		cleanupReactions(session, msg.ChannelID, msg.ID)
	}

	if scope == "channel" {
		for channelID, afterID := range newestByChannel {
			purgeChannelAfter(session, channelID, afterID)
		}
		return nil
	}

	if newestOverall != "" {
		purgeChannelAfter(session, gameRolesChannelID, newestOverall)
	}
	return nil
}

// purgeChannelAfter deletes every message sent after $afterID
func purgeChannelAfter(session *discordgo.Session, channelID string, afterID string) {
	messages, err := session.ChannelMessages(channelID, 100, "", afterID, "")
	if err != nil {
		helpers.RelaxLog(err)
		return
	}

	for _, message := range messages {
		err = session.ChannelMessageDelete(channelID, message.ID)
		helpers.RelaxLog(err)
	}
}

// cleanupReactions restores the bot's own keypad reactions and removes
// everyone else's leftovers
func cleanupReactions(session *discordgo.Session, channelID string, messageID string) {
	msg, err := session.ChannelMessage(channelID, messageID)
	if err != nil {
		return
	}

	for _, reaction := range msg.Reactions {
		if reaction.Count == 1 && reaction.Me {
			continue
		}

		if !reaction.Me {
			session.MessageReactionAdd(channelID, messageID, reaction.Emoji.Name)
		}

		users, err := session.MessageReactions(channelID, messageID, reaction.Emoji.Name, 100)
		if err != nil {
			continue
		}
		for _, user := range users {
			if user.ID == session.State.User.ID {
				continue
			}
			session.MessageReactionRemove(channelID, messageID, reaction.Emoji.Name, user.ID)
		}
	}
}

// clearReaction strips $emojiName from the message for every reactor, not
// just the one who triggered the event. The bot's own seeded keypad
// reactions are left alone.
func clearReaction(session *discordgo.Session, channelID string, messageID string, emojiName string) {
	users, err := session.MessageReactions(channelID, messageID, emojiName, 100)
	if err != nil {
		helpers.RelaxLog(err)
		return
	}

	for _, user := range users {
		if user.ID == session.State.User.ID {
			continue
		}
		session.MessageReactionRemove(channelID, messageID, emojiName, user.ID)
	}
}

// snowflakeNewer compares two discord ids by creation order
func snowflakeNewer(a string, b string) bool {
	if b == "" {
		return a != ""
	}
	aID, errA := strconv.ParseUint(a, 10, 64)
	bID, errB := strconv.ParseUint(b, 10, 64)
	if errA != nil || errB != nil {
		return a > b
	}
	return aID > bID
}

// guildMembership adapts the discord guild to the role membership interface
type guildMembership struct {
	guildID string
}

func (m *guildMembership) HasRole(memberID string, roleID string) (bool, error) {
	session := cache.GetSession()

	member, err := session.State.Member(m.guildID, memberID)
	if err != nil {
		member, err = session.GuildMember(m.guildID, memberID)
		if err != nil {
			return false, err
		}
	}

	return helpers.MemberHasRole(member, roleID), nil
}

func (m *guildMembership) AddRole(memberID string, roleID string) error {
	return cache.GetSession().GuildMemberRoleAdd(m.guildID, memberID, roleID)
}

func (m *guildMembership) RemoveRole(memberID string, roleID string) error {
	return cache.GetSession().GuildMemberRoleRemove(m.guildID, memberID, roleID)
}

// channelNotifier posts the toggle feedback in the role channel and deletes
// it again after a few seconds
type channelNotifier struct {
	channelID string
}

func (n *channelNotifier) RolesChanged(memberID string, added bool, gameNames []string) {
	textID := "plugins.gameroles.roles-assigned"
	if !added {
		textID = "plugins.gameroles.roles-removed"
	}

	msg, err := cache.GetSession().ChannelMessageSend(n.channelID,
		helpers.GetTextF(textID, memberID, strings.Join(gameNames, ", ")))
	if err != nil {
		return
	}

	go func() {
		defer helpers.Recover()

		time.Sleep(3 * time.Second)
		cache.GetSession().ChannelMessageDelete(n.channelID, msg.ID)
	}()
}
