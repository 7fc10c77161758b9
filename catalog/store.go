package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/ludobot/ludo/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store is the single source of truth for the game catalog. It keeps a full
// in-memory mirror of the games, aliases, admins, hierarchy links and menu
// bindings and writes through to the database before touching the mirror, so
// a failed statement never leaves the cache ahead of the persistent rows.
//
// Reads never hit the database. discordgo dispatches handlers on goroutines,
// so all access goes through the RWMutex.
type Store struct {
	sync.RWMutex

	db *gorm.DB

	games   map[uint]models.Game
	aliases map[uint]models.Alias
	admins  map[string]struct{}
	menus   map[string][]uint

	// parents maps sub game id -> parent game id. children is the reverse
	// index, co-maintained with parents on every mutation.
	parents  map[uint]uint
	children map[uint][]uint
}

// NewStore performs the initial full load from $db.
func NewStore(db *gorm.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.ReloadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReloadAll discards the whole mirror and rebuilds it from the database.
// Fresh maps are built first and swapped in under the write lock, so no
// reader ever observes a partially rebuilt state.
func (s *Store) ReloadAll() error {
	var (
		gameRows    []models.Game
		aliasRows   []models.Alias
		adminRows   []models.Admin
		messageRows []models.RoleMessage
		subRows     []models.SubGame
	)

	if err := s.db.Find(&gameRows).Error; err != nil {
		return errors.Wrap(err, "loading games")
	}
	if err := s.db.Find(&aliasRows).Error; err != nil {
		return errors.Wrap(err, "loading aliases")
	}
	if err := s.db.Find(&adminRows).Error; err != nil {
		return errors.Wrap(err, "loading admins")
	}
	if err := s.db.Find(&messageRows).Error; err != nil {
		return errors.Wrap(err, "loading role messages")
	}
	if err := s.db.Find(&subRows).Error; err != nil {
		return errors.Wrap(err, "loading sub games")
	}

	games := make(map[uint]models.Game, len(gameRows))
	for _, game := range gameRows {
		games[game.ID] = game
	}
	aliases := make(map[uint]models.Alias, len(aliasRows))
	for _, alias := range aliasRows {
		aliases[alias.ID] = alias
	}
	admins := make(map[string]struct{}, len(adminRows))
	for _, admin := range adminRows {
		admins[admin.DiscordID] = struct{}{}
	}
	menus := make(map[string][]uint, len(messageRows))
	for i := range messageRows {
		menus[messageRows[i].MessageID] = messageRows[i].GetGameIDs()
	}
	parents := make(map[uint]uint, len(subRows))
	children := make(map[uint][]uint)
	for _, link := range subRows {
		parents[link.SubID] = link.ParentID
		children[link.ParentID] = append(children[link.ParentID], link.SubID)
	}

	s.Lock()
	s.games = games
	s.aliases = aliases
	s.admins = admins
	s.menus = menus
	s.parents = parents
	s.children = children
	s.Unlock()

	return nil
}

// FindGame resolves $name against the game names, case-insensitively. With
// $includeAliases it falls back to alias resolution when no game matches.
func (s *Store) FindGame(name string, includeAliases bool) (models.Game, bool) {
	s.RLock()
	defer s.RUnlock()

	if game, ok := s.findGameByName(name); ok {
		return game, true
	}

	if !includeAliases {
		return models.Game{}, false
	}

	alias, ok := s.findAliasByName(name)
	if !ok {
		return models.Game{}, false
	}
	game, ok := s.games[alias.GameID]
	return game, ok
}

// FindAlias resolves $name against the alias names, case-insensitively.
func (s *Store) FindAlias(name string) (models.Alias, bool) {
	s.RLock()
	defer s.RUnlock()

	return s.findAliasByName(name)
}

func (s *Store) findGameByName(name string) (models.Game, bool) {
	for _, game := range s.games {
		if strings.EqualFold(game.Name, name) {
			return game, true
		}
	}
	return models.Game{}, false
}

func (s *Store) findAliasByName(name string) (models.Alias, bool) {
	for _, alias := range s.aliases {
		if strings.EqualFold(alias.Alias, name) {
			return alias, true
		}
	}
	return models.Alias{}, false
}

// Game returns the game for $id.
func (s *Store) Game(id uint) (models.Game, bool) {
	s.RLock()
	defer s.RUnlock()

	game, ok := s.games[id]
	return game, ok
}

// Games returns a copy of all games.
func (s *Store) Games() []models.Game {
	s.RLock()
	defer s.RUnlock()

	games := make([]models.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	return games
}

// ChildGames returns the ids of the sub games of $parentID.
func (s *Store) ChildGames(parentID uint) []uint {
	s.RLock()
	defer s.RUnlock()

	ids := make([]uint, len(s.children[parentID]))
	copy(ids, s.children[parentID])
	return ids
}

// ParentGame returns the parent game id of $subID, if it has one.
func (s *Store) ParentGame(subID uint) (uint, bool) {
	s.RLock()
	defer s.RUnlock()

	parent, ok := s.parents[subID]
	return parent, ok
}

// IsAdmin checks whether $userID is a catalog admin.
func (s *Store) IsAdmin(userID string) bool {
	s.RLock()
	defer s.RUnlock()

	_, ok := s.admins[userID]
	return ok
}

// MenuBinding returns the ordered game ids bound to $messageID.
func (s *Store) MenuBinding(messageID string) ([]uint, bool) {
	s.RLock()
	defer s.RUnlock()

	ids, ok := s.menus[messageID]
	if !ok {
		return nil, false
	}
	bound := make([]uint, len(ids))
	copy(bound, ids)
	return bound, true
}

// MenuMessageIDs returns the ids of all bound menu messages.
func (s *Store) MenuMessageIDs() []string {
	s.RLock()
	defer s.RUnlock()

	ids := make([]string, 0, len(s.menus))
	for id := range s.menus {
		ids = append(ids, id)
	}
	return ids
}

// AddAdmin stores $userID as a catalog admin. Returns false if the user
// already is one.
func (s *Store) AddAdmin(userID string) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.admins[userID]; ok {
		return false, nil
	}

	if err := s.db.Create(&models.Admin{DiscordID: userID}).Error; err != nil {
		return false, errors.Wrap(err, "inserting admin")
	}
	s.admins[userID] = struct{}{}
	return true, nil
}

// RemoveAdmin removes $userID from the admins. The DELETE is issued even when
// the id is not cached, to heal any drift between cache and database.
func (s *Store) RemoveAdmin(userID string) error {
	s.Lock()
	defer s.Unlock()

	if err := s.db.Where("discord_id = ?", userID).Delete(&models.Admin{}).Error; err != nil {
		return errors.Wrap(err, "deleting admin")
	}
	delete(s.admins, userID)
	return nil
}

// AddGame registers a new game. The name may not collide case-insensitively
// with any existing game or alias name.
func (s *Store) AddGame(name string, roleID string) (models.Game, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.findGameByName(name); ok {
		return models.Game{}, &DuplicateNameError{Name: name}
	}
	if _, ok := s.findAliasByName(name); ok {
		return models.Game{}, &DuplicateNameError{Name: name}
	}

	game := models.Game{Name: name, DiscordID: roleID}
	if err := s.db.Create(&game).Error; err != nil {
		return models.Game{}, errors.Wrap(err, "inserting game")
	}
	s.games[game.ID] = game
	return game, nil
}

// RemoveGame removes the game and cascades: every alias referencing it, and
// any hierarchy link where it is sub or parent. All statements run in one
// transaction and the cache mutations are staged until the transaction
// committed, so a mid-cascade failure never tears the mirror.
func (s *Store) RemoveGame(gameID uint) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return false, nil
	}

	var staleAliases []uint
	for id, alias := range s.aliases {
		if alias.GameID == gameID {
			staleAliases = append(staleAliases, id)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", gameID).Delete(&models.Alias{}).Error; err != nil {
			return errors.Wrap(err, "deleting aliases")
		}
		if err := tx.Where("sub_id = ? OR parent_id = ?", gameID, gameID).Delete(&models.SubGame{}).Error; err != nil {
			return errors.Wrap(err, "deleting hierarchy links")
		}
		if err := tx.Where("id = ?", gameID).Delete(&models.Game{}).Error; err != nil {
			return errors.Wrap(err, "deleting game")
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	for _, id := range staleAliases {
		delete(s.aliases, id)
	}

	// detach from its own parent
	if parent, ok := s.parents[gameID]; ok {
		delete(s.parents, gameID)
		s.children[parent] = removeID(s.children[parent], gameID)
		if len(s.children[parent]) == 0 {
			delete(s.children, parent)
		}
	}
	// detach all of its children
	for _, child := range s.children[gameID] {
		delete(s.parents, child)
	}
	delete(s.children, gameID)

	delete(s.games, gameID)
	return true, nil
}

// AddAlias registers $aliasName as an alias for the game named $gameName.
// The game is matched by its own name only, alias resolution does not apply.
func (s *Store) AddAlias(gameName string, aliasName string) (models.Alias, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.findGameByName(aliasName); ok {
		return models.Alias{}, &DuplicateNameError{Name: aliasName}
	}
	if _, ok := s.findAliasByName(aliasName); ok {
		return models.Alias{}, &DuplicateNameError{Name: aliasName}
	}

	game, ok := s.findGameByName(gameName)
	if !ok {
		return models.Alias{}, &UnknownGameError{Name: gameName}
	}

	alias := models.Alias{Alias: aliasName, GameID: game.ID}
	if err := s.db.Create(&alias).Error; err != nil {
		return models.Alias{}, errors.Wrap(err, "inserting alias")
	}
	s.aliases[alias.ID] = alias
	return alias, nil
}

// RemoveAlias removes the alias for $aliasID. Returns false on unknown ids.
func (s *Store) RemoveAlias(aliasID uint) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.aliases[aliasID]; !ok {
		return false, nil
	}

	if err := s.db.Where("id = ?", aliasID).Delete(&models.Alias{}).Error; err != nil {
		return false, errors.Wrap(err, "deleting alias")
	}
	delete(s.aliases, aliasID)
	return true, nil
}

// AddSubGame links $subID below $parentID. Returns false if the sub already
// has a parent.
func (s *Store) AddSubGame(subID uint, parentID uint) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.parents[subID]; ok {
		return false, nil
	}

	if err := s.db.Create(&models.SubGame{SubID: subID, ParentID: parentID}).Error; err != nil {
		return false, errors.Wrap(err, "inserting hierarchy link")
	}
	s.parents[subID] = parentID
	s.children[parentID] = append(s.children[parentID], subID)
	return true, nil
}

// RemoveSubGame detaches $subID from its parent. Returns false if there is no
// link.
func (s *Store) RemoveSubGame(subID uint) (bool, error) {
	s.Lock()
	defer s.Unlock()

	parent, ok := s.parents[subID]
	if !ok {
		return false, nil
	}

	if err := s.db.Where("sub_id = ?", subID).Delete(&models.SubGame{}).Error; err != nil {
		return false, errors.Wrap(err, "deleting hierarchy link")
	}
	delete(s.parents, subID)
	s.children[parent] = removeID(s.children[parent], subID)
	if len(s.children[parent]) == 0 {
		delete(s.children, parent)
	}
	return true, nil
}

// MaxMenuGames caps how many games one menu binding may carry. Bindings are
// addressed through the keypad emojis, which only reach indexes 0-9.
const MaxMenuGames = 10

// AddMenuBinding binds $messageID to the ordered $gameIDs. Returns false if a
// binding for the message already exists. Bindings longer than MaxMenuGames
// are rejected, their tail would be unreachable.
func (s *Store) AddMenuBinding(messageID string, gameIDs []uint) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if len(gameIDs) > MaxMenuGames {
		return false, errors.Errorf("menu binding carries %d games, the keypad addresses at most %d", len(gameIDs), MaxMenuGames)
	}

	if _, ok := s.menus[messageID]; ok {
		return false, nil
	}

	row := models.RoleMessage{MessageID: messageID}
	row.SetGameIDs(gameIDs)
	if err := s.db.Create(&row).Error; err != nil {
		return false, errors.Wrap(err, "inserting role message")
	}

	bound := make([]uint, len(gameIDs))
	copy(bound, gameIDs)
	s.menus[messageID] = bound
	return true, nil
}

// RemoveMenuBinding removes the binding for $messageID.
func (s *Store) RemoveMenuBinding(messageID string) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.menus[messageID]; !ok {
		return false, nil
	}

	if err := s.db.Where("message_id = ?", messageID).Delete(&models.RoleMessage{}).Error; err != nil {
		return false, errors.Wrap(err, "deleting role message")
	}
	delete(s.menus, messageID)
	return true, nil
}

func removeID(ids []uint, id uint) []uint {
	for i := range ids {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// GameName resolves $id to the game name, falling back to the raw id for
// log output about games that already left the catalog.
func (s *Store) GameName(id uint) string {
	if game, ok := s.Game(id); ok {
		return game.Name
	}
	return "#" + strconv.FormatUint(uint64(id), 10)
}
